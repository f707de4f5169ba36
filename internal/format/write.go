package format

import (
	"github.com/mattn/go-runewidth"

	"rftidy/internal/token"
)

// Writer accumulates rendered rows and records lines wider than the
// configured limit.
type Writer struct {
	buf     []byte
	limit   int
	line    int
	width   int
	long    []int
	atStart bool
}

// NewWriter creates a writer. sizeHint preallocates the buffer; limit <= 0
// disables line length tracking.
func NewWriter(sizeHint, limit int) *Writer {
	return &Writer{
		buf:     make([]byte, 0, sizeHint),
		limit:   limit,
		line:    1,
		atStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// LongLines returns the 1-based output lines wider than the limit.
func (w *Writer) LongLines() []int {
	return w.long
}

// WriteRow renders every token of r.
func (w *Writer) WriteRow(r token.Row) {
	for _, t := range r {
		w.WriteString(t.Text)
	}
}

// WriteString writes s, tracking line widths.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' {
			continue
		}
		w.width += runewidth.StringWidth(s[start:i])
		w.endLine()
		start = i + 1
	}
	w.width += runewidth.StringWidth(s[start:])
	w.atStart = start == len(s)
}

func (w *Writer) endLine() {
	if w.limit > 0 && w.width > w.limit {
		w.long = append(w.long, w.line)
	}
	w.line++
	w.width = 0
}

// Flush closes a final line that has no newline.
func (w *Writer) Flush() {
	if !w.atStart {
		w.endLine()
		w.atStart = true
	}
}
