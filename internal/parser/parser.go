package parser

import (
	"strings"

	"rftidy/internal/ast"
	"rftidy/internal/lexer"
	"rftidy/internal/source"
	"rftidy/internal/token"
)

// openBlock tracks a block whose END has not been seen yet.
// cur is the block itself or its latest branch; new nodes go to cur.Body.
type openBlock struct {
	root *ast.Block
	cur  *ast.Block
}

// Parser хранит состояние разбора одного файла
type Parser struct {
	file    *ast.File
	section *ast.Section
	def     *ast.Definition
	blocks  []openBlock
	// last is the statement a "..." row may continue; reset whenever another
	// node is appended so that rows never change order.
	last *ast.Statement
}

// ParseFile lexes and parses one normalized source file.
// It never fails: rows it cannot classify become plain statements.
func ParseFile(sf *source.File) *ast.File {
	rows, pipe := lexer.Tokenize(sf)
	return Parse(sf.Path, rows, pipe)
}

// Parse builds the model from already lexed rows.
func Parse(path string, rows []token.Row, pipe bool) *ast.File {
	p := Parser{file: &ast.File{Path: path, Pipe: pipe}}
	p.section = &ast.Section{Kind: ast.SectionImplicit}
	p.file.Sections = append(p.file.Sections, p.section)

	if pipe {
		for _, r := range rows {
			p.section.Body = append(p.section.Body, &ast.Statement{Kind: ast.StmtData, Rows: []token.Row{r}})
		}
		return p.file
	}
	for _, r := range rows {
		p.parseRow(r)
	}
	return p.file
}

func (p *Parser) parseRow(r token.Row) {
	data := r.Data()

	if len(data) > 0 && data[0].Kind == token.SectionHeader {
		p.startSection(r, data[0].Text)
		return
	}

	switch {
	case r.IsBlank():
		p.appendNode(&ast.Statement{Kind: ast.StmtEmpty, Rows: []token.Row{r}})
		return
	case len(data) == 0:
		p.appendNode(&ast.Statement{Kind: ast.StmtComment, Rows: []token.Row{r}})
		return
	case data[0].Kind == token.Continuation && p.last != nil:
		markContinuation(r, p.last)
		p.last.Rows = append(p.last.Rows, r)
		return
	}

	if !p.inDefinitionSection() {
		p.appendStatement(&ast.Statement{Kind: ast.StmtData, Rows: []token.Row{r}})
		return
	}

	if r.Indent() == "" && data[0].Kind != token.Continuation {
		p.startDefinition(r)
		return
	}
	if p.def == nil {
		p.appendStatement(&ast.Statement{Kind: ast.StmtData, Rows: []token.Row{r}})
		return
	}
	p.parseBodyRow(r, data[0].Text)
}

func (p *Parser) inDefinitionSection() bool {
	switch p.section.Kind {
	case ast.SectionTestCases, ast.SectionTasks, ast.SectionKeywords:
		return true
	default:
		return false
	}
}

func (p *Parser) startSection(r token.Row, header string) {
	p.def = nil
	p.blocks = nil
	p.section = &ast.Section{
		Kind:   sectionKind(header),
		Header: &ast.Statement{Kind: ast.StmtSection, Rows: []token.Row{r}},
	}
	p.file.Sections = append(p.file.Sections, p.section)
	p.last = nil
}

func sectionKind(header string) ast.SectionKind {
	name := strings.ToLower(strings.Trim(header, "* \t"))
	name = strings.ReplaceAll(name, " ", "")
	switch strings.TrimSuffix(name, "s") {
	case "setting":
		return ast.SectionSettings
	case "variable":
		return ast.SectionVariables
	case "testcase":
		return ast.SectionTestCases
	case "task":
		return ast.SectionTasks
	case "keyword", "userkeyword":
		return ast.SectionKeywords
	case "comment":
		return ast.SectionComments
	default:
		return ast.SectionUnknown
	}
}

func (p *Parser) startDefinition(r token.Row) {
	p.blocks = nil
	kind := ast.DefTestCase
	if p.section.Kind == ast.SectionKeywords {
		kind = ast.DefKeyword
	}
	markFirst(r, token.DefinitionName)
	p.def = &ast.Definition{Kind: kind, Name: &ast.Statement{Kind: ast.StmtName, Rows: []token.Row{r}}}
	p.section.Body = append(p.section.Body, p.def)
	p.last = p.def.Name
}

// appendNode adds n to the innermost open container.
func (p *Parser) appendNode(n ast.Node) {
	p.last = nil
	switch {
	case len(p.blocks) > 0:
		top := p.blocks[len(p.blocks)-1].cur
		top.Body = append(top.Body, n)
	case p.def != nil:
		p.def.Body = append(p.def.Body, n)
	default:
		p.section.Body = append(p.section.Body, n)
	}
}

func (p *Parser) appendStatement(st *ast.Statement) {
	p.appendNode(st)
	p.last = st
}

func markFirst(r token.Row, k token.Kind) {
	for i := range r {
		if r[i].Kind.IsData() {
			r[i].Kind = k
			return
		}
	}
}

// markContinuation classifies the cells of a "..." row after the statement it continues.
func markContinuation(r token.Row, st *ast.Statement) {
	if st.Kind != ast.StmtKeywordCall || st.KeywordName() != "" {
		return
	}
	// The keyword name itself may only appear on a continuation row when the
	// first row held nothing but assignments.
	seenCont := false
	for i := range r {
		if !r[i].Kind.IsData() {
			continue
		}
		if !seenCont && r[i].Kind == token.Continuation {
			seenCont = true
			continue
		}
		if token.IsVariableAssign(r[i].Text) {
			r[i].Kind = token.Assign
			continue
		}
		r[i].Kind = token.Keyword
		return
	}
}
