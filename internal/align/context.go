package align

// frame is the alignment context of one body.
type frame struct {
	depth int
	table WidthTable
}

// contextStack is owned by a single traversal and never shared.
type contextStack struct {
	frames []frame
}

func (s *contextStack) push(f frame) { s.frames = append(s.frames, f) }

func (s *contextStack) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// top returns the innermost frame; an empty stack yields depth 0 and no table.
func (s *contextStack) top() frame {
	if len(s.frames) == 0 {
		return frame{}
	}
	return s.frames[len(s.frames)-1]
}
