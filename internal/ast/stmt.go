package ast

import "rftidy/internal/token"

// StmtKind classifies a statement.
type StmtKind uint8

const (
	StmtKeywordCall StmtKind = iota
	StmtSetting
	StmtDocumentation
	StmtTemplate
	StmtComment
	StmtEmpty
	StmtReturn
	StmtBreak
	StmtContinue
	StmtVar
	StmtInlineIf
	// StmtHeader is a block header, branch header or END row.
	StmtHeader
	// StmtName is the name row of a definition.
	StmtName
	// StmtSection is a "*** Name ***" row.
	StmtSection
	// StmtData is any other row (settings/variables sections, pipe files).
	StmtData
)

// Statement is one logical statement spanning one or more physical rows.
type Statement struct {
	Kind StmtKind
	Rows []token.Row
}

func (s *Statement) FirstLine() int { return firstLineOf(s.Rows) }
func (s *Statement) LastLine() int  { return lastLineOf(s.Rows) }

func (s *Statement) AppendRows(dst []token.Row) []token.Row {
	return append(dst, s.Rows...)
}

// KeywordName returns the called keyword of a keyword call statement, or "".
func (s *Statement) KeywordName() string {
	for _, r := range s.Rows {
		for _, t := range r {
			if t.Kind == token.Keyword {
				return t.Text
			}
		}
	}
	return ""
}

// HasAssign reports whether the statement assigns return values.
func (s *Statement) HasAssign() bool {
	for _, r := range s.Rows {
		for _, t := range r {
			if t.Kind == token.Assign {
				return true
			}
		}
	}
	return false
}
