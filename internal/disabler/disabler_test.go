package disabler_test

import (
	"testing"

	"rftidy/internal/ast"
	"rftidy/internal/disabler"
	"rftidy/internal/parser"
	"rftidy/internal/source"
)

func parse(src string) *ast.File {
	fs := source.NewFileSet()
	return parser.ParseFile(fs.Get(fs.AddVirtual("suite.robot", []byte(src))))
}

const suite = `*** Test Cases ***
First
    Log    1
    # rftidy: off
    Log    2
    Log    3
    # rftidy: on
    Log    4
    Log    5    # rftidy: off
    FOR    ${i}    IN    a    # rftidy: off
        Log    ${i}
    END
    Log    6

Second
    Log    7
    # rftidy: off
    Log    8

Third
    Log    9
`

func TestScanDirectives(t *testing.T) {
	set := disabler.Scan(parse(suite), disabler.Window{})
	tests := []struct {
		line int
		want bool
	}{
		{3, false},
		{5, true},
		{6, true},
		{8, false},
		{9, true},
		{11, true},
		{12, true},
		{13, false},
		{16, false},
		{18, true},
		{19, true},
		{21, false},
	}
	for _, tt := range tests {
		if got := set.IsNodeDisabled(tt.line, tt.line); got != tt.want {
			t.Errorf("line %d: disabled = %v, want %v", tt.line, got, tt.want)
		}
	}
	if set.AllDisabled() {
		t.Fatal("file must not be disabled as a whole")
	}
}

func TestScanRangesOverlap(t *testing.T) {
	set := disabler.Scan(parse(suite), disabler.Window{})
	if !set.IsNodeDisabled(2, 5) {
		t.Fatal("a node touching a disabled line must be disabled")
	}
	if set.IsNodeDisabled(2, 3) {
		t.Fatal("lines 2-3 are enabled")
	}
}

func TestScanOffAtSectionLevel(t *testing.T) {
	src := "*** Settings ***\n" +
		"# rftidy: off\n" +
		"Library    X\n" +
		"*** Test Cases ***\n" +
		"Case\n" +
		"    Log    x\n"
	set := disabler.Scan(parse(src), disabler.Window{})
	if !set.IsNodeDisabled(6, 6) {
		t.Fatal("an off outside definitions must last until the end of the file")
	}
}

func TestScanWholeFile(t *testing.T) {
	src := "# rftidy: off\n*** Test Cases ***\nCase\n    Log    x\n"
	set := disabler.Scan(parse(src), disabler.Window{})
	if !set.AllDisabled() || !set.IsNodeDisabled(4, 4) {
		t.Fatal("off on the first line must disable the whole file")
	}
}

func TestScanTrailingOffOnName(t *testing.T) {
	src := "*** Keywords ***\nKw    # rftidy: off\n    Log    x\n    Log    y\nOther\n    Log    z\n"
	set := disabler.Scan(parse(src), disabler.Window{})
	if !set.IsNodeDisabled(3, 3) || !set.IsNodeDisabled(4, 4) {
		t.Fatal("trailing off on a name must disable the definition")
	}
	if set.IsNodeDisabled(6, 6) {
		t.Fatal("next definition must stay enabled")
	}
}

func TestWindow(t *testing.T) {
	set := disabler.Scan(parse("*** Test Cases ***\nCase\n    Log    x\n    Log    y\n    Log    z\n"), disabler.Window{Start: 4, End: 4})
	tests := []struct {
		first, last int
		want        bool
	}{
		{3, 3, true},
		{4, 4, false},
		{5, 5, true},
		{3, 4, true},
	}
	for _, tt := range tests {
		if got := set.IsNodeDisabled(tt.first, tt.last); got != tt.want {
			t.Errorf("[%d,%d]: disabled = %v, want %v", tt.first, tt.last, got, tt.want)
		}
	}
	if !(disabler.Window{}).Contains(1, 1000) {
		t.Fatal("open window must contain everything")
	}
}

func TestNilSet(t *testing.T) {
	var set *disabler.Set
	if set.IsNodeDisabled(1, 1) || set.AllDisabled() || set.Ranges() != nil {
		t.Fatal("nil set must disable nothing")
	}
}
