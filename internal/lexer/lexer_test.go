package lexer_test

import (
	"strings"
	"testing"

	"rftidy/internal/lexer"
	"rftidy/internal/source"
	"rftidy/internal/token"
)

// makeFile создаёт виртуальный файл для тестовой строки
func makeFile(t *testing.T, src string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.robot", []byte(src)))
}

func kinds(r token.Row) []token.Kind {
	out := make([]token.Kind, 0, len(r))
	for _, tok := range r {
		out = append(out, tok.Kind)
	}
	return out
}

func texts(r token.Row) []string {
	out := make([]string, 0, len(r))
	for _, tok := range r {
		out = append(out, tok.Text)
	}
	return out
}

func TestTokenizeRoundTrip(t *testing.T) {
	src := strings.Join([]string{
		"*** Test Cases ***",
		"Simple Case",
		"    Log    hello world  ",
		"    ${x}=\tGet Value    # trailing  comment",
		"    ...    more",
		"",
		"   ",
		"Escaped\\  Cell    x",
		"no newline at end",
	}, "\n")
	rows, pipe := lexer.Tokenize(makeFile(t, src))
	if pipe {
		t.Fatal("unexpected pipe format")
	}
	if len(rows) != 9 {
		t.Fatalf("expected 9 rows, got %d", len(rows))
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r.Text())
	}
	if b.String() != src {
		t.Fatalf("round trip mismatch:\nwant %q\ngot  %q", src, b.String())
	}
}

func TestTokenizeCells(t *testing.T) {
	rows, _ := lexer.Tokenize(makeFile(t, "    Log    hello world  \n"))
	r := rows[0]
	wantKinds := []token.Kind{token.Separator, token.Argument, token.Separator, token.Argument, token.EOL}
	if got := kinds(r); !equalKinds(got, wantKinds) {
		t.Fatalf("kinds mismatch: want %v got %v", wantKinds, got)
	}
	wantTexts := []string{"    ", "Log", "    ", "hello world", "  \n"}
	for i, w := range wantTexts {
		if r[i].Text != w {
			t.Fatalf("token %d: want %q got %q", i, w, r[i].Text)
		}
	}
	if r[3].Col != 12 || r[3].Line != 1 {
		t.Fatalf("position of 'hello world' = %d:%d", r[3].Line, r[3].Col)
	}
}

func TestTokenizeSpecialCells(t *testing.T) {
	src := "*** Keywords ***\n    ...    x    # c  d\n\t\n"
	rows, _ := lexer.Tokenize(makeFile(t, src))
	if rows[0][0].Kind != token.SectionHeader || rows[0][0].Text != "*** Keywords ***" {
		t.Fatalf("section header not recognized: %+v", rows[0])
	}
	cont := rows[1]
	if cont[1].Kind != token.Continuation {
		t.Fatalf("continuation not recognized: %v", kinds(cont))
	}
	last := cont[len(cont)-2]
	if last.Kind != token.Comment || last.Text != "# c  d" {
		t.Fatalf("comment not kept whole: %q", texts(cont))
	}
	if len(rows[2]) != 1 || rows[2][0].Kind != token.EOL || rows[2][0].Text != "\t\n" {
		t.Fatalf("blank row must be a single EOL token: %q", texts(rows[2]))
	}
}

func TestTokenizeSingleSpaceIsPartOfCell(t *testing.T) {
	rows, _ := lexer.Tokenize(makeFile(t, "Should Be Equal \t${a}\n"))
	got := texts(rows[0])
	want := []string{"Should Be Equal", " \t", "${a}", "\n"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestTokenizeDetectsPipeFormat(t *testing.T) {
	_, pipe := lexer.Tokenize(makeFile(t, "| *** Test Cases *** |\n| Case | Log | x |\n"))
	if !pipe {
		t.Fatal("pipe-separated file not detected")
	}
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
