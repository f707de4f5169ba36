package ast

import "rftidy/internal/token"

// SectionKind classifies a "*** Name ***" section.
type SectionKind uint8

const (
	// SectionImplicit holds rows before the first section header.
	SectionImplicit SectionKind = iota
	SectionSettings
	SectionVariables
	SectionTestCases
	SectionTasks
	SectionKeywords
	SectionComments
	SectionUnknown
)

var sectionNames = [...]string{
	SectionImplicit:  "implicit",
	SectionSettings:  "settings",
	SectionVariables: "variables",
	SectionTestCases: "test_cases",
	SectionTasks:     "tasks",
	SectionKeywords:  "keywords",
	SectionComments:  "comments",
	SectionUnknown:   "unknown",
}

func (k SectionKind) String() string {
	if int(k) < len(sectionNames) {
		return sectionNames[k]
	}
	return "unknown"
}

// ParseSectionKind maps a configuration name ("test_cases", "keywords", ...) to a kind.
func ParseSectionKind(name string) (SectionKind, bool) {
	for k, n := range sectionNames {
		if n == name && SectionKind(k) != SectionImplicit && SectionKind(k) != SectionUnknown {
			return SectionKind(k), true
		}
	}
	return SectionUnknown, false
}

// File is a parsed test data file.
type File struct {
	Path     string
	Sections []*Section
	// Pipe is set for pipe-separated files; they carry a single implicit
	// section with every row as a plain statement.
	Pipe bool
}

// Section is a header statement followed by its body.
// Body holds *Definition nodes in test case, task and keyword sections and
// plain statements everywhere else.
type Section struct {
	Kind   SectionKind
	Header *Statement // nil for the implicit section
	Body   []Node
}

// Setting returns the first statement of a settings section whose first cell
// matches name case-insensitively (spaces ignored), or nil.
func (s *Section) Setting(name string) *Statement {
	if s.Kind != SectionSettings {
		return nil
	}
	for _, n := range s.Body {
		st, ok := n.(*Statement)
		if !ok || len(st.Rows) == 0 {
			continue
		}
		data := st.Rows[0].Data()
		if len(data) > 0 && normalizeName(data[0].Text) == normalizeName(name) {
			return st
		}
	}
	return nil
}

// Rows returns every row of the file in source order.
func (f *File) Rows() []token.Row {
	var out []token.Row
	for _, sec := range f.Sections {
		if sec.Header != nil {
			out = append(out, sec.Header.Rows...)
		}
		for _, n := range sec.Body {
			out = n.AppendRows(out)
		}
	}
	return out
}
