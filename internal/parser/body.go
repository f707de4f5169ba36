package parser

import (
	"rftidy/internal/ast"
	"rftidy/internal/token"
)

var blockKinds = map[token.Kind]ast.BlockKind{
	token.For:   ast.BlockFor,
	token.If:    ast.BlockIf,
	token.While: ast.BlockWhile,
	token.Try:   ast.BlockTry,
}

var branchKinds = map[token.Kind]ast.BlockKind{
	token.ElseIf:  ast.BlockElseIf,
	token.Else:    ast.BlockElse,
	token.Except:  ast.BlockExcept,
	token.Finally: ast.BlockFinally,
}

var simpleKinds = map[token.Kind]ast.StmtKind{
	token.Return:   ast.StmtReturn,
	token.Break:    ast.StmtBreak,
	token.Continue: ast.StmtContinue,
	token.Var:      ast.StmtVar,
}

// parseBodyRow classifies an indented row inside a test case, task or keyword.
func (p *Parser) parseBodyRow(r token.Row, first string) {
	marker, isMarker := token.LookupMarker(first)
	if isMarker {
		if p.parseMarkerRow(r, marker) {
			return
		}
	}

	if token.IsSetting(first) {
		p.appendStatement(settingStatement(r))
		return
	}
	p.appendStatement(callStatement(r))
}

// parseMarkerRow handles rows starting with a control marker. It reports
// false when the marker is out of place (END without a block, stray ELSE)
// and the row should be parsed as a keyword call instead.
func (p *Parser) parseMarkerRow(r token.Row, marker token.Kind) bool {
	switch {
	case marker == token.If && len(r.Data()) > 2:
		markInlineIf(r)
		p.appendStatement(&ast.Statement{Kind: ast.StmtInlineIf, Rows: []token.Row{r}})
		return true

	case marker == token.For || marker == token.If || marker == token.While || marker == token.Try:
		markHeader(r, marker)
		header := &ast.Statement{Kind: ast.StmtHeader, Rows: []token.Row{r}}
		blk := &ast.Block{Kind: blockKinds[marker], Header: header}
		p.appendNode(blk)
		p.blocks = append(p.blocks, openBlock{root: blk, cur: blk})
		p.last = header
		return true

	case marker == token.ElseIf || marker == token.Else || marker == token.Except || marker == token.Finally:
		if len(p.blocks) == 0 || !branchAllowed(p.blocks[len(p.blocks)-1].root.Kind, marker) {
			return false
		}
		markHeader(r, marker)
		header := &ast.Statement{Kind: ast.StmtHeader, Rows: []token.Row{r}}
		top := &p.blocks[len(p.blocks)-1]
		br := &ast.Block{Kind: branchKinds[marker], Header: header}
		top.root.Branches = append(top.root.Branches, br)
		top.cur = br
		p.last = header
		return true

	case marker == token.End:
		if len(p.blocks) == 0 {
			return false
		}
		markHeader(r, marker)
		end := &ast.Statement{Kind: ast.StmtHeader, Rows: []token.Row{r}}
		p.blocks[len(p.blocks)-1].root.End = end
		p.blocks = p.blocks[:len(p.blocks)-1]
		p.last = end
		return true
	}

	if kind, ok := simpleKinds[marker]; ok {
		markFirst(r, marker)
		p.appendStatement(&ast.Statement{Kind: kind, Rows: []token.Row{r}})
		return true
	}
	return false
}

func branchAllowed(root ast.BlockKind, marker token.Kind) bool {
	switch root {
	case ast.BlockIf:
		return marker == token.ElseIf || marker == token.Else
	case ast.BlockTry:
		return marker == token.Except || marker == token.Else || marker == token.Finally
	default:
		return false
	}
}

func markHeader(r token.Row, marker token.Kind) {
	first := true
	for i := range r {
		if !r[i].Kind.IsData() {
			continue
		}
		if first {
			r[i].Kind = marker
			first = false
			continue
		}
		if marker == token.For {
			if k, ok := token.LookupMarker(r[i].Text); ok && k == token.ForSeparator {
				r[i].Kind = token.ForSeparator
			}
		}
	}
}

func markInlineIf(r token.Row) {
	first := true
	for i := range r {
		if !r[i].Kind.IsData() {
			continue
		}
		if first {
			r[i].Kind = token.InlineIf
			first = false
			continue
		}
		if k, ok := token.LookupMarker(r[i].Text); ok && (k == token.ElseIf || k == token.Else) {
			r[i].Kind = k
		}
	}
}

func settingStatement(r token.Row) *ast.Statement {
	data := r.Data()
	switch token.SettingName(data[0].Text) {
	case "documentation":
		markFirst(r, token.Documentation)
		return &ast.Statement{Kind: ast.StmtDocumentation, Rows: []token.Row{r}}
	case "template":
		markFirst(r, token.Setting)
		if len(data) > 1 && data[1].Text != "NONE" {
			return &ast.Statement{Kind: ast.StmtTemplate, Rows: []token.Row{r}}
		}
	default:
		markFirst(r, token.Setting)
	}
	return &ast.Statement{Kind: ast.StmtSetting, Rows: []token.Row{r}}
}

// callStatement marks leading assignment targets, the keyword name and its arguments.
// "${x}=  IF  ..." is an inline IF with assignment.
func callStatement(r token.Row) *ast.Statement {
	for i := range r {
		if !r[i].Kind.IsData() || r[i].Kind == token.Continuation {
			continue
		}
		if token.IsVariableAssign(r[i].Text) {
			r[i].Kind = token.Assign
			continue
		}
		if r[i].Text == "IF" {
			markInlineIf(r[i:])
			return &ast.Statement{Kind: ast.StmtInlineIf, Rows: []token.Row{r}}
		}
		r[i].Kind = token.Keyword
		break
	}
	return &ast.Statement{Kind: ast.StmtKeywordCall, Rows: []token.Row{r}}
}
