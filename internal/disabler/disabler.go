// Package disabler finds the parts of a file that must not be reformatted:
// regions fenced by "# rftidy: off" / "# rftidy: on" comments, statements
// with a trailing "# rftidy: off" and lines outside the requested window.
package disabler

import (
	"strings"

	"rftidy/internal/ast"
	"rftidy/internal/token"
)

// Window limits formatting to a 1-based inclusive line range. Zero bounds are open.
type Window struct {
	Start int
	End   int
}

// Contains reports whether [first, last] lies completely inside the window.
func (w Window) Contains(first, last int) bool {
	if w.Start > 0 && first < w.Start {
		return false
	}
	if w.End > 0 && last > w.End {
		return false
	}
	return true
}

// LineRange is a 1-based inclusive range of disabled lines.
type LineRange struct {
	First int
	Last  int
}

// Set is the disabled part of one file. A nil *Set disables nothing.
type Set struct {
	window Window
	all    bool
	ranges []LineRange
}

// IsNodeDisabled reports whether anything in [first, last] is disabled.
func (s *Set) IsNodeDisabled(first, last int) bool {
	if s == nil {
		return false
	}
	if s.all || !s.window.Contains(first, last) {
		return true
	}
	for _, r := range s.ranges {
		if first <= r.Last && last >= r.First {
			return true
		}
	}
	return false
}

// AllDisabled reports whether the file opted out as a whole.
func (s *Set) AllDisabled() bool { return s != nil && s.all }

// Ranges returns the directive ranges in source order.
func (s *Set) Ranges() []LineRange {
	if s == nil {
		return nil
	}
	return append([]LineRange(nil), s.ranges...)
}

type directive uint8

const (
	dirNone directive = iota
	dirOff
	dirOn
)

const directivePrefix = "rftidy:"

// parseDirective recognizes "# rftidy: off" and "# rftidy: on" (case-insensitive value).
func parseDirective(comments []token.Token) directive {
	for _, c := range comments {
		body := strings.TrimSpace(strings.TrimLeft(c.Text, "#"))
		rest, ok := strings.CutPrefix(body, directivePrefix)
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(rest)) {
		case "off":
			return dirOff
		case "on":
			return dirOn
		}
	}
	return dirNone
}

// Scan collects the disabled ranges of f.
func Scan(f *ast.File, w Window) *Set {
	s := &Set{window: w}
	if f == nil {
		return s
	}
	rows := f.Rows()
	if len(rows) == 0 {
		return s
	}
	if first := rows[0]; first.IsCommentOnly() {
		_, comments, _ := first.Split()
		if parseDirective(comments) == dirOff {
			s.all = true
			return s
		}
	}

	sc := scanner{set: s}
	for _, sec := range f.Sections {
		if sec.Header != nil {
			sc.statement(sec.Header)
		}
		for _, n := range sec.Body {
			if def, ok := n.(*ast.Definition); ok {
				sc.definition(def)
				continue
			}
			sc.node(n)
		}
	}
	sc.close(rows[len(rows)-1].Line())
	return s
}

// scanner tracks the currently open "off" region while walking the file in order.
type scanner struct {
	set  *Set
	open int // line of the pending "off", 0 when none
}

func (sc *scanner) add(first, last int) {
	sc.set.ranges = append(sc.set.ranges, LineRange{First: first, Last: last})
}

func (sc *scanner) close(last int) {
	if sc.open > 0 {
		sc.add(sc.open, last)
		sc.open = 0
	}
}

// definition scans one test case or keyword. A region opened inside it ends with it;
// a trailing "off" on the name row disables the whole definition.
func (sc *scanner) definition(d *ast.Definition) {
	if trailingOff(d.Name) {
		sc.add(d.FirstLine(), d.LastLine())
	}
	outer := sc.open > 0
	for _, n := range d.Body {
		sc.node(n)
	}
	if !outer {
		sc.close(d.LastLine())
	}
}

func (sc *scanner) node(n ast.Node) {
	switch n := n.(type) {
	case *ast.Statement:
		sc.statement(n)
	case *ast.Block:
		sc.block(n)
	}
}

// block: a trailing "off" on the header covers the whole compound statement.
func (sc *scanner) block(b *ast.Block) {
	if trailingOff(b.Header) {
		sc.add(b.FirstLine(), b.LastLine())
	}
	sc.statement(b.Header)
	for _, n := range b.Body {
		sc.node(n)
	}
	for _, br := range b.Branches {
		sc.block(br)
	}
	if b.End != nil {
		sc.statement(b.End)
	}
}

func (sc *scanner) statement(st *ast.Statement) {
	for _, r := range st.Rows {
		data, comments, _ := r.Split()
		if len(comments) == 0 {
			continue
		}
		switch d := parseDirective(comments); {
		case len(data) > 0 && d == dirOff:
			sc.add(st.FirstLine(), st.LastLine())
		case len(data) > 0:
		case d == dirOff && sc.open == 0:
			sc.open = r.Line()
		case d == dirOn:
			sc.close(r.Line())
		}
	}
}

// trailingOff reports whether a data row of st carries a trailing "off".
func trailingOff(st *ast.Statement) bool {
	if st == nil {
		return false
	}
	for _, r := range st.Rows {
		data, comments, _ := r.Split()
		if len(data) > 0 && parseDirective(comments) == dirOff {
			return true
		}
	}
	return false
}
