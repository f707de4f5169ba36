package ast

import "rftidy/internal/token"

// DefinitionKind tells test cases (and tasks) apart from user keywords.
type DefinitionKind uint8

const (
	DefTestCase DefinitionKind = iota
	DefKeyword
)

// Definition is a test case, task or user keyword.
type Definition struct {
	Kind DefinitionKind
	Name *Statement
	Body []Node
}

func (d *Definition) FirstLine() int { return d.Name.FirstLine() }

func (d *Definition) LastLine() int {
	if n := len(d.Body); n > 0 {
		return d.Body[n-1].LastLine()
	}
	return d.Name.LastLine()
}

func (d *Definition) AppendRows(dst []token.Row) []token.Row {
	dst = d.Name.AppendRows(dst)
	for _, n := range d.Body {
		dst = n.AppendRows(dst)
	}
	return dst
}

// Templated reports whether the definition uses a [Template] setting.
func (d *Definition) Templated() bool {
	for _, n := range d.Body {
		if st, ok := n.(*Statement); ok && st.Kind == StmtTemplate {
			return true
		}
	}
	return false
}
