package align

import (
	"fmt"
	"strings"
	"testing"

	"rftidy/internal/ast"
	"rftidy/internal/parser"
	"rftidy/internal/source"
	"rftidy/internal/testkit"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	return parser.ParseFile(fs.Get(fs.AddVirtual("suite.robot", []byte(src))))
}

func renderFile(f *ast.File) string {
	return render(f.Rows())
}

func alignSource(t *testing.T, src string, cfg PolicyConfig, opt Options, dis Disabler) (string, Stats) {
	t.Helper()
	p, err := NewPolicy(cfg)
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	f := parse(t, src)
	stats := New(p, opt).File(f, dis)
	return renderFile(f), stats
}

func TestAlignerFixedMode(t *testing.T) {
	src := "*** Test Cases ***\n" +
		"Case\n" +
		"  Log  hello\n" +
		"  ${x}=  Set Variable  1\n" +
		"  FOR  ${i}  IN  @{L}\n" +
		"     Log  ${i}  # c\n" +
		"  END\n"
	want := "*** Test Cases ***\n" +
		"Case\n" +
		"    " + pad("Log", 24) + "hello\n" +
		"    " + pad("${x}=", 24) + pad("Set Variable", 24) + "1\n" +
		"    FOR  ${i}  IN  @{L}\n" +
		"        " + pad("Log", 24) + "${i}  # c\n" +
		"    END\n"

	got, stats := alignSource(t, src, PolicyConfig{}, Options{}, nil)
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if stats.Aligned != 3 {
		t.Fatalf("Aligned = %d, want 3", stats.Aligned)
	}
}

func TestAlignerAutoMode(t *testing.T) {
	src := "*** Keywords ***\n" +
		"Kw\n" +
		"    A    1\n" +
		"    BB    22\n" +
		"    IF    $c\n" +
		"        Longer    x\n" +
		"    ELSE\n" +
		"        No Operation\n" +
		"    END\n"
	want := "*** Keywords ***\n" +
		"Kw\n" +
		"    " + pad("A", 8) + "1\n" +
		"    " + pad("BB", 8) + "22\n" +
		"    IF    $c\n" +
		"        " + pad("Longer", 12) + "x\n" +
		"    ELSE\n" +
		"        No Operation\n" +
		"    END\n"

	got, _ := alignSource(t, src, PolicyConfig{AlignmentType: "auto"}, Options{}, nil)
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAlignerLeavesOtherSectionsAlone(t *testing.T) {
	src := "*** Settings ***\n" +
		"Library  Collections\n" +
		"\n" +
		"*** Variables ***\n" +
		"${X}  1\n" +
		"\n" +
		"*** Comments ***\n" +
		"  free  text\n"
	got, stats := alignSource(t, src, PolicyConfig{}, Options{}, nil)
	if got != src || stats != (Stats{}) {
		t.Fatalf("unexpected change: %q %+v", got, stats)
	}
}

func TestAlignerSectionSelection(t *testing.T) {
	src := "*** Test Cases ***\n" +
		"Case\n" +
		"  Log  x\n" +
		"*** Keywords ***\n" +
		"Kw\n" +
		"  Log  y\n"
	want := "*** Test Cases ***\n" +
		"Case\n" +
		"  Log  x\n" +
		"*** Keywords ***\n" +
		"Kw\n" +
		"    " + pad("Log", 24) + "y\n"
	got, _ := alignSource(t, src, PolicyConfig{}, Options{Sections: []ast.SectionKind{ast.SectionKeywords}}, nil)
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAlignerDisabledStatements(t *testing.T) {
	src := "*** Test Cases ***\n" +
		"Case\n" +
		"  Log  x\n" +
		"  Log  y\n"
	got, stats := alignSource(t, src, PolicyConfig{}, Options{}, lineDisabler{3, 3})
	want := "*** Test Cases ***\n" +
		"Case\n" +
		"  Log  x\n" +
		"    " + pad("Log", 24) + "y\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if stats.Disabled != 1 || stats.Aligned != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestAlignerSkipPolicy(t *testing.T) {
	src := "*** Test Cases ***\n" +
		"Case\n" +
		"  [Documentation]  text\n" +
		"  Log  x\n" +
		"  No Operation  \n"
	sk := fakeSkip{doc: true, keywords: map[string]bool{"Log": true}}
	got, stats := alignSource(t, src, PolicyConfig{}, Options{Skip: sk}, nil)
	want := "*** Test Cases ***\n" +
		"Case\n" +
		"  [Documentation]  text\n" +
		"  Log  x\n" +
		"    No Operation\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if stats.Skipped != 2 || stats.Aligned != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestAlignerDocumentation(t *testing.T) {
	src := "*** Keywords ***\n" +
		"Kw\n" +
		"  [Documentation]  first  line\n" +
		"  ...  second\n" +
		"  Log  x\n"
	want := "*** Keywords ***\n" +
		"Kw\n" +
		"    [Documentation]    first  line\n" +
		"    " + pad("...", 8) + "second\n" +
		"    " + pad("Log", 8) + "x\n"
	got, _ := alignSource(t, src, PolicyConfig{Widths: "8", HandleTooLong: "ignore_line"}, Options{Skip: fakeSkip{}}, nil)
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAlignerIgnoreLineDrops(t *testing.T) {
	src := "*** Test Cases ***\n" +
		"Case\n" +
		"  Log  x\n" +
		"  Very Long Keyword  y  z\n"
	got, stats := alignSource(t, src, PolicyConfig{Widths: "8", HandleTooLong: "ignore_line"}, Options{}, nil)
	want := "*** Test Cases ***\n" +
		"Case\n" +
		"    " + pad("Log", 8) + "x\n" +
		"  Very Long Keyword  y  z\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if stats.Dropped != 1 {
		t.Fatalf("Dropped = %d, want 1", stats.Dropped)
	}
}

func TestAlignerSkipsTemplatedTests(t *testing.T) {
	cases := map[string]string{
		"local template": "*** Test Cases ***\n" +
			"Case\n" +
			"  [Template]  Check\n" +
			"  a  b\n",
		"suite template": "*** Settings ***\n" +
			"Test Template  Check\n" +
			"*** Test Cases ***\n" +
			"Case\n" +
			"  a  b\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			got, stats := alignSource(t, src, PolicyConfig{}, Options{}, nil)
			if got != src {
				t.Fatalf("templated test changed:\n%s", got)
			}
			if stats.Skipped != 1 {
				t.Fatalf("Skipped = %d, want 1", stats.Skipped)
			}
		})
	}
}

func TestAlignerTemplateNone(t *testing.T) {
	src := "*** Test Cases ***\n" +
		"Case\n" +
		"  [Template]  NONE\n" +
		"  Log  x\n"
	got, _ := alignSource(t, src, PolicyConfig{}, Options{}, nil)
	if !strings.Contains(got, "    "+pad("Log", 24)+"x\n") {
		t.Fatalf("[Template] NONE must not disable alignment:\n%s", got)
	}
}

func TestAlignerPipeFileUntouched(t *testing.T) {
	src := "| *** Test Cases *** |\n| Case | Log | x |\n"
	got, stats := alignSource(t, src, PolicyConfig{}, Options{}, nil)
	if got != src || stats != (Stats{}) {
		t.Fatalf("pipe file changed: %q", got)
	}
}

const mixed = `*** Test Cases ***
First
  [Documentation]  Docs
  ...  more
  ${a}  ${b}=  Get Pair  x  # pair
  FOR  ${i}  IN RANGE  10
      IF  $i == 1
          Log  one
      ELSE IF  $i == 2
          Log Many  two  three  four
      ELSE
          Continue For Loop
      END
      ${r}=  IF  $i  Set Variable  1  ELSE  Set Variable  2
  END

  TRY
    Fail  boom
  EXCEPT  boom  AS  ${err}
    Log  ${err}
  FINALLY
    Log  done
  END

*** Keywords ***
Kw
  [Arguments]  ${x}  ${y}
  WHILE  $x > 0
    ${x}=  Evaluate  $x - 1
    Log
    ...  ${x}
    ...
    ...  tail
  END
  RETURN  ${x}
`

func TestAlignerPreservesTokensAndIsIdempotent(t *testing.T) {
	configs := []PolicyConfig{
		{},
		{AlignmentType: "auto"},
		{Widths: "16,8", HandleTooLong: "compact_overflow"},
		{Widths: "8", HandleTooLong: "ignore_rest"},
		{Widths: "8,0", AlignmentType: "auto", HandleTooLong: "ignore_line"},
		{Widths: "0", MinSeparator: 2},
	}
	for _, cfg := range configs {
		t.Run(fmt.Sprintf("%+v", cfg), func(t *testing.T) {
			before := parse(t, mixed).Rows()
			first, _ := alignSource(t, mixed, cfg, Options{Skip: fakeSkip{}}, nil)
			after := parse(t, first)
			if err := testkit.CheckTokenValues(before, after.Rows()); err != nil {
				t.Fatalf("token values changed: %v\n%s", err, first)
			}
			second, _ := alignSource(t, first, cfg, Options{Skip: fakeSkip{}}, nil)
			if err := testkit.CheckFixedPoint(after.Rows(), parse(t, second).Rows()); err != nil {
				t.Fatalf("not idempotent: %v", err)
			}
			if first != second {
				t.Fatalf("second pass changed output:\nfirst:\n%s\nsecond:\n%s", first, second)
			}
		})
	}
}
