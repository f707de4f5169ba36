package align

import (
	"strings"

	"rftidy/internal/token"
)

// commentSeparator precedes trailing comments; comments never take part in column arithmetic.
const commentSeparator = 2

type stepOutcome uint8

const (
	stepFits stepOutcome = iota
	// stepFlat: the rest of the row uses minimal separators.
	stepFlat
	// stepDrop: the statement must be left untouched.
	stepDrop
)

// step is the result of placing one cell: the separator after it, the column
// the next cell starts in and the carry handed to that column.
type step struct {
	sep     int
	next    int
	carry   int
	outcome stepOutcome
}

// columnStep places a cell of width cw that starts in column col, given the
// carry left by previous compact overflows. It is a pure function.
func (p Policy) columnStep(table WidthTable, col, cw, carry int) step {
	minSep := p.MinSeparator
	w := table.At(col)
	if w.IsUnlimited() {
		return step{sep: roundUp4(cw+minSep) - cw, next: col + 1}
	}

	avail := w.n - carry
	if sep := avail - cw; sep >= minSep {
		return step{sep: sep, next: col + 1}
	}

	switch p.Overflow {
	case OverflowIgnoreLine:
		return step{outcome: stepDrop}
	case OverflowIgnoreRest:
		return step{sep: minSep, next: col + 1, outcome: stepFlat}
	case OverflowCompact:
		required := roundUp4(cw + minSep)
		return step{sep: required - cw, next: col + 1, carry: required - w.n}
	default:
		next := col
		for avail-cw < minSep {
			next++
			nw := table.At(next)
			if nw.IsUnlimited() {
				avail += DefaultWidth
			} else {
				avail += nw.n
			}
		}
		return step{sep: avail - cw, next: next + 1}
	}
}

// AlignRows realigns the rows of one statement at the given depth.
// It returns the new rows and true, or rows itself and false when the
// statement has to stay untouched (ignore_line overflow).
// With skipAssign, assignment cells get a minimal separator and do not
// occupy a column.
func AlignRows(rows []token.Row, depth int, table WidthTable, p Policy, fc FormattingConfig, skipAssign bool) ([]token.Row, bool) {
	fc = fc.withDefaults()
	out := make([]token.Row, 0, len(rows))
	for _, r := range rows {
		aligned, ok := p.alignRow(r, depth, table, fc, skipAssign)
		if !ok {
			return rows, false
		}
		out = append(out, aligned)
	}
	return out, true
}

func (p Policy) alignRow(r token.Row, depth int, table WidthTable, fc FormattingConfig, skipAssign bool) (token.Row, bool) {
	data, comments, eol := r.Split()
	if len(data) == 0 || r.IsBlankContinuation() {
		return r, true
	}

	out := make(token.Row, 0, 2*len(data)+2*len(comments)+2)
	out = append(out, token.Sep(depth*fc.Indent, data[0]))

	col, carry, flat := 0, 0, false
	for _, cell := range data[:len(data)-1] {
		out = append(out, cell)
		cw := cellWidth(cell.Text)
		if flat || (skipAssign && cell.Kind == token.Assign) {
			out = append(out, token.Sep(p.MinSeparator, cell))
			continue
		}
		st := p.columnStep(table, col, cw, carry)
		switch st.outcome {
		case stepDrop:
			return r, false
		case stepFlat:
			flat = true
		}
		out = append(out, token.Sep(st.sep, cell))
		col, carry = st.next, st.carry
	}

	last := data[len(data)-1]
	last.Text = strings.TrimSpace(last.Text)
	out = append(out, last)
	return finishRow(out, comments, eol), true
}

// finishRow appends trailing comments and the EOL with its whitespace trimmed.
func finishRow(out token.Row, comments []token.Token, eol token.Token) token.Row {
	for _, c := range comments {
		out = append(out, token.Sep(commentSeparator, c), c)
	}
	eol.Text = strings.TrimLeft(eol.Text, " \t")
	return append(out, eol)
}

// AlignDocumentation aligns a documentation statement: only the separator
// after the header cell (and after "..." on continuation rows) follows the
// column 0 width, and the documentation text is kept verbatim. Overflow
// handling does not apply here; a cell that does not fit gets the minimal
// separator.
func AlignDocumentation(rows []token.Row, depth int, table WidthTable, p Policy, fc FormattingConfig) []token.Row {
	fc = fc.withDefaults()
	out := make([]token.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, p.alignDocRow(r, depth, table, fc))
	}
	return out
}

func (p Policy) alignDocRow(r token.Row, depth int, table WidthTable, fc FormattingConfig) token.Row {
	data, comments, eol := r.Split()
	if len(data) == 0 || r.IsBlankContinuation() {
		return r
	}

	first := -1
	for i, t := range r {
		if t.Kind.IsData() {
			first = i
			break
		}
	}
	head := r[first]
	out := token.Row{token.Sep(depth*fc.Indent, head), head}

	rest := r[first+1:]
	// drop the original separator after the head cell
	if len(rest) > 0 && rest[0].Kind == token.Separator {
		rest = rest[1:]
	}
	if len(data) == 1 {
		return finishRow(out, comments, eol)
	}

	cw := cellWidth(head.Text)
	w := table.At(0)
	sep := roundUp4(cw+p.MinSeparator) - cw
	if !w.IsUnlimited() {
		sep = max(w.n-cw, p.MinSeparator)
	}
	out = append(out, token.Sep(sep, head))
	for _, t := range rest {
		if t.Kind == token.EOL {
			t.Text = strings.TrimLeft(t.Text, " \t")
		}
		out = append(out, t)
	}
	return out
}

// reindent replaces the leading indent of every row that holds data or a comment.
func reindent(rows []token.Row, depth int, fc FormattingConfig) []token.Row {
	fc = fc.withDefaults()
	out := make([]token.Row, 0, len(rows))
	for _, r := range rows {
		if r.IsBlank() {
			out = append(out, r)
			continue
		}
		body := r
		if body[0].Kind == token.Separator {
			body = body[1:]
		}
		nr := make(token.Row, 0, len(body)+1)
		nr = append(nr, token.Sep(depth*fc.Indent, body[0]))
		nr = append(nr, body...)
		out = append(out, nr)
	}
	return out
}
