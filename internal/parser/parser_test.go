package parser_test

import (
	"strings"
	"testing"

	"rftidy/internal/ast"
	"rftidy/internal/parser"
	"rftidy/internal/source"
	"rftidy/internal/token"
)

func parseSource(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("suite.robot", []byte(src)))
	return parser.ParseFile(sf)
}

func render(f *ast.File) string {
	var b strings.Builder
	for _, r := range f.Rows() {
		b.WriteString(r.Text())
	}
	return b.String()
}

const suite = `*** Settings ***
Library    Collections

*** Test Cases ***
First Case
    [Documentation]    Does things
    ...    over two lines
    ${a}    ${b}=    Get Pair    x
    FOR    ${item}    IN    @{LIST}
        Log    ${item}
        IF    $item == 1
            Log    one
        ELSE IF    $item == 2
            Log    two
        ELSE
            Log    many
        END
    END
    IF    $a    Log    inline    ELSE    Log    other
# column zero comment

Second Case
    TRY
        Fail    boom
    EXCEPT    boom
        Log    caught
    FINALLY
        Log    done
    END

*** Keywords ***
My Keyword
    [Arguments]    ${x}
    WHILE    $x > 0
        ${x}=    Evaluate    $x - 1
    END
    RETURN    ${x}
`

func TestParseRoundTrip(t *testing.T) {
	f := parseSource(t, suite)
	if got := render(f); got != suite {
		t.Fatalf("round trip mismatch:\nwant %q\ngot  %q", suite, got)
	}
}

func TestParseStructure(t *testing.T) {
	f := parseSource(t, suite)
	if len(f.Sections) != 4 {
		t.Fatalf("expected implicit + 3 sections, got %d", len(f.Sections))
	}
	tests := f.Sections[2]
	if tests.Kind != ast.SectionTestCases {
		t.Fatalf("section 2 kind = %v", tests.Kind)
	}
	var defs []*ast.Definition
	for _, n := range tests.Body {
		if d, ok := n.(*ast.Definition); ok {
			defs = append(defs, d)
		}
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 test cases, got %d", len(defs))
	}

	first := defs[0]
	doc, ok := first.Body[0].(*ast.Statement)
	if !ok || doc.Kind != ast.StmtDocumentation || len(doc.Rows) != 2 {
		t.Fatalf("documentation with continuation not parsed: %#v", first.Body[0])
	}
	call := first.Body[1].(*ast.Statement)
	if call.Kind != ast.StmtKeywordCall || call.KeywordName() != "Get Pair" || !call.HasAssign() {
		t.Fatalf("assignment call misparsed: kind=%v name=%q", call.Kind, call.KeywordName())
	}

	loop, ok := first.Body[2].(*ast.Block)
	if !ok || loop.Kind != ast.BlockFor || loop.End == nil {
		t.Fatalf("FOR block misparsed: %#v", first.Body[2])
	}
	header := loop.Header.Rows[0].Data()
	if header[0].Kind != token.For || header[2].Kind != token.ForSeparator {
		t.Fatalf("FOR header kinds: %v %v", header[0].Kind, header[2].Kind)
	}
	ifBlock, ok := loop.Body[1].(*ast.Block)
	if !ok || ifBlock.Kind != ast.BlockIf || len(ifBlock.Branches) != 2 {
		t.Fatalf("IF block misparsed: %#v", loop.Body[1])
	}
	if ifBlock.Branches[0].Kind != ast.BlockElseIf || ifBlock.Branches[1].Kind != ast.BlockElse {
		t.Fatal("branch kinds misparsed")
	}
	if len(ifBlock.Branches[1].Body) != 1 {
		t.Fatalf("ELSE body has %d nodes", len(ifBlock.Branches[1].Body))
	}

	inline, ok := first.Body[3].(*ast.Statement)
	if !ok || inline.Kind != ast.StmtInlineIf {
		t.Fatalf("inline IF misparsed: %#v", first.Body[3])
	}
	if c, ok := first.Body[4].(*ast.Statement); !ok || c.Kind != ast.StmtComment {
		t.Fatalf("column zero comment should stay in the definition body: %#v", first.Body[4])
	}

	try := defs[1].Body[0].(*ast.Block)
	if try.Kind != ast.BlockTry || len(try.Branches) != 2 || try.Branches[0].Kind != ast.BlockExcept {
		t.Fatalf("TRY misparsed: %#v", try)
	}

	kws := f.Sections[3]
	kw := kws.Body[0].(*ast.Definition)
	if kw.Kind != ast.DefKeyword {
		t.Fatal("keyword definition kind")
	}
	if ret := kw.Body[2].(*ast.Statement); ret.Kind != ast.StmtReturn {
		t.Fatalf("RETURN misparsed: %v", ret.Kind)
	}
}

func TestParseStrayMarkersAreCalls(t *testing.T) {
	f := parseSource(t, "*** Keywords ***\nKw\n    END\n    ELSE\n")
	kw := f.Sections[1].Body[0].(*ast.Definition)
	for i, n := range kw.Body {
		st, ok := n.(*ast.Statement)
		if !ok || st.Kind != ast.StmtKeywordCall {
			t.Fatalf("node %d should be a keyword call, got %#v", i, n)
		}
	}
}

func TestParseUnterminatedBlock(t *testing.T) {
	src := "*** Test Cases ***\nCase\n    FOR    ${i}    IN RANGE    3\n        Log    ${i}\nNext\n    Log    x\n"
	f := parseSource(t, src)
	body := f.Sections[1].Body
	if len(body) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(body))
	}
	loop := body[0].(*ast.Definition).Body[0].(*ast.Block)
	if loop.End != nil || len(loop.Body) != 1 {
		t.Fatalf("unterminated block misparsed: %#v", loop)
	}
	if render(f) != src {
		t.Fatal("round trip mismatch for unterminated block")
	}
}

func TestParseTemplate(t *testing.T) {
	f := parseSource(t, "*** Test Cases ***\nA\n    [Template]    Kw\n    1    2\nB\n    [Template]    NONE\n")
	a := f.Sections[1].Body[0].(*ast.Definition)
	b := f.Sections[1].Body[1].(*ast.Definition)
	if !a.Templated() || b.Templated() {
		t.Fatalf("Templated: a=%v b=%v", a.Templated(), b.Templated())
	}
}

func TestParsePipeFormat(t *testing.T) {
	src := "| *** Test Cases *** |\n| Case | Log | x |\n"
	f := parseSource(t, src)
	if !f.Pipe || len(f.Sections) != 1 {
		t.Fatalf("pipe file: pipe=%v sections=%d", f.Pipe, len(f.Sections))
	}
	if render(f) != src {
		t.Fatal("pipe file must round trip")
	}
}
