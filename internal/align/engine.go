package align

import (
	"rftidy/internal/ast"
)

// Options configures an Aligner.
type Options struct {
	Formatting FormattingConfig
	Skip       SkipPolicy
	// Sections lists the sections to align; empty means test cases, tasks and keywords.
	Sections []ast.SectionKind
}

func (o Options) withDefaults() Options {
	o.Formatting = o.Formatting.withDefaults()
	if o.Skip == nil {
		o.Skip = defaultSkip{}
	}
	if len(o.Sections) == 0 {
		o.Sections = []ast.SectionKind{ast.SectionTestCases, ast.SectionTasks, ast.SectionKeywords}
	}
	return o
}

// Stats counts what happened to the statements of one file.
type Stats struct {
	Aligned  int // statements rewritten
	Dropped  int // statements left untouched by ignore_line
	Skipped  int // statements and definitions excluded by the skip policy
	Disabled int // statements inside disabled ranges
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Aligned += other.Aligned
	s.Dropped += other.Dropped
	s.Skipped += other.Skipped
	s.Disabled += other.Disabled
}

// Aligner applies a Policy to parsed files. It holds no per-file state and is
// safe for concurrent use.
type Aligner struct {
	policy   Policy
	opt      Options
	sections map[ast.SectionKind]bool
}

// New creates an Aligner for a validated policy.
func New(p Policy, opt Options) *Aligner {
	opt = opt.withDefaults()
	if p.MinSeparator == 0 {
		p.MinSeparator = DefaultMinSeparator
	}
	sections := make(map[ast.SectionKind]bool, len(opt.Sections))
	for _, k := range opt.Sections {
		sections[k] = true
	}
	return &Aligner{policy: p, opt: opt, sections: sections}
}

// Policy returns the policy the aligner was built with.
func (a *Aligner) Policy() Policy { return a.policy }

// Formatting returns the layout settings with defaults applied.
func (a *Aligner) Formatting() FormattingConfig { return a.opt.Formatting }

// traversal is the per-file state of one File call.
type traversal struct {
	*Aligner
	dis   Disabler
	stack contextStack
	stats Stats
}

// File aligns the configured sections of f in place. A nil dis disables nothing.
// Pipe-separated files are never touched.
func (a *Aligner) File(f *ast.File, dis Disabler) Stats {
	if f == nil || f.Pipe {
		return Stats{}
	}
	if dis == nil {
		dis = nopDisabler{}
	}
	t := &traversal{Aligner: a, dis: dis}
	suiteTemplate := hasSuiteTemplate(f)
	for _, sec := range f.Sections {
		if !a.sections[sec.Kind] {
			continue
		}
		for _, n := range sec.Body {
			def, ok := n.(*ast.Definition)
			if !ok {
				continue
			}
			if def.Kind == ast.DefTestCase && (suiteTemplate || def.Templated()) {
				t.stats.Skipped++
				continue
			}
			t.definition(def)
		}
	}
	return t.stats
}

func hasSuiteTemplate(f *ast.File) bool {
	for _, sec := range f.Sections {
		for _, name := range []string{"Test Template", "Task Template"} {
			st := sec.Setting(name)
			if st == nil {
				continue
			}
			data := st.Rows[0].Data()
			if len(data) > 1 && data[1].Text != "NONE" {
				return true
			}
		}
	}
	return false
}

func (t *traversal) definition(d *ast.Definition) {
	t.body(d.Body, 1)
}

// body pushes the context of a body, counting it first in auto mode, aligns
// its nodes and pops the context.
func (t *traversal) body(nodes []ast.Node, depth int) {
	table := t.policy.Widths
	if t.policy.Mode == ModeAuto {
		table = CountWidths(nodes, t.policy, t.opt.Skip, t.dis)
	}
	t.stack.push(frame{depth: depth, table: table})
	for _, n := range nodes {
		switch n := n.(type) {
		case *ast.Statement:
			t.statement(n)
		case *ast.Block:
			t.block(n)
		}
	}
	t.stack.pop()
}

// block aligns a compound statement. Its body and every branch body sit one
// level deeper than the enclosing body; headers and END stay at the outer level.
func (t *traversal) block(b *ast.Block) {
	outer := t.stack.top().depth
	t.header(b.Header, outer)
	t.body(b.Body, outer+1)
	for _, br := range b.Branches {
		t.header(br.Header, outer)
		t.body(br.Body, outer+1)
	}
	if b.End != nil {
		t.header(b.End, outer)
	}
}

func (t *traversal) header(st *ast.Statement, depth int) {
	if t.disabled(st) {
		return
	}
	st.Rows = reindent(st.Rows, depth, t.opt.Formatting)
}

func (t *traversal) disabled(st *ast.Statement) bool {
	if t.dis.IsNodeDisabled(st.FirstLine(), st.LastLine()) {
		t.stats.Disabled++
		return true
	}
	return false
}

func (t *traversal) statement(st *ast.Statement) {
	switch st.Kind {
	case ast.StmtEmpty, ast.StmtComment, ast.StmtData, ast.StmtName, ast.StmtSection:
		return
	}
	if t.disabled(st) {
		return
	}
	top := t.stack.top()

	switch st.Kind {
	case ast.StmtInlineIf:
		st.Rows = reindent(st.Rows, top.depth, t.opt.Formatting)
		return
	case ast.StmtDocumentation:
		if t.opt.Skip.Documentation() {
			t.stats.Skipped++
			return
		}
		st.Rows = AlignDocumentation(st.Rows, top.depth, top.table, t.policy, t.opt.Formatting)
		t.stats.Aligned++
		return
	case ast.StmtKeywordCall:
		if t.opt.Skip.KeywordCall(st.KeywordName()) {
			t.stats.Skipped++
			return
		}
	}

	skipAssign := t.opt.Skip.ReturnValues() && st.HasAssign()
	rows, ok := AlignRows(st.Rows, top.depth, top.table, t.policy, t.opt.Formatting, skipAssign)
	if !ok {
		t.stats.Dropped++
		return
	}
	st.Rows = rows
	t.stats.Aligned++
}
