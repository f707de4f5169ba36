package lexer

import "rftidy/internal/source"

// Cursor представляет собой позицию в строке файла
type Cursor struct {
	line []byte
	Off  int
}

func newCursor(line []byte) Cursor {
	return Cursor{line: line}
}

// EOL reports whether the cursor reached the end of the current line.
func (c *Cursor) EOL() bool { return c.Off >= len(c.line) }

// Peek returns the current byte or 0 at the end of the line.
func (c *Cursor) Peek() byte {
	if c.EOL() {
		return 0
	}
	return c.line[c.Off]
}

// Peek2 returns the current and the next byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.line) {
		return 0, 0, false
	}
	return c.line[c.Off], c.line[c.Off+1], true
}

// Bump advances over one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOL() {
		return 0
	}
	b := c.line[c.Off]
	c.Off++
	return b
}

// Text returns line[from:Off].
func (c *Cursor) Text(from int) string { return string(c.line[from:c.Off]) }

// atSeparator reports whether a cell separator starts at the cursor:
// a tab, two spaces, or a space followed by a tab.
func (c *Cursor) atSeparator() bool {
	b := c.Peek()
	if b == '\t' {
		return true
	}
	if b != ' ' {
		return false
	}
	_, b1, ok := c.Peek2()
	return ok && (b1 == ' ' || b1 == '\t')
}

// onlySpaceLeft reports whether the rest of the line is whitespace.
func (c *Cursor) onlySpaceLeft() bool {
	for i := c.Off; i < len(c.line); i++ {
		if !isSpace(c.line[i]) {
			return false
		}
	}
	return true
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// lines splits normalized content into physical lines; the newline stays with its line.
func lines(f *source.File) [][]byte {
	content := f.Content
	out := make([][]byte, 0, len(f.LineIdx)+1)
	start := 0
	for _, idx := range f.LineIdx {
		end := int(idx) + 1
		out = append(out, content[start:end])
		start = end
	}
	if start < len(content) {
		out = append(out, content[start:])
	}
	return out
}
