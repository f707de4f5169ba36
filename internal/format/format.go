package format

import (
	"bytes"
	"errors"

	"rftidy/internal/align"
	"rftidy/internal/ast"
	"rftidy/internal/disabler"
	"rftidy/internal/parser"
	"rftidy/internal/source"
)

// Options configures one formatting run.
type Options struct {
	Aligner *align.Aligner
	// Window limits formatting to a line range; the zero value formats everything.
	Window disabler.Window
}

// Result describes the outcome for one file.
type Result struct {
	// Output is the formatted file in its original line ending and BOM conventions.
	Output  []byte
	Changed bool
	// Pipe is set when the file uses the pipe-separated format and was left alone.
	Pipe bool
	// Disabled is set when the file opted out with a leading "# rftidy: off".
	Disabled  bool
	Stats     align.Stats
	LongLines []int
}

// FormatFile formats one loaded source file.
func FormatFile(sf *source.File, opt Options) (Result, error) {
	if sf == nil {
		return Result{}, errors.New("format: nil source file")
	}
	if opt.Aligner == nil {
		return Result{}, errors.New("format: nil aligner")
	}

	f := parser.ParseFile(sf)
	original := sf.Restore(sf.Content)
	if f.Pipe {
		return Result{Output: original, Pipe: true}, nil
	}
	dis := disabler.Scan(f, opt.Window)
	if dis.AllDisabled() {
		return Result{Output: original, Disabled: true}, nil
	}

	stats := opt.Aligner.File(f, dis)
	out, long := Render(f, len(sf.Content), opt.Aligner.Formatting().LineLength)
	return Result{
		Output:    sf.Restore(out),
		Changed:   !bytes.Equal(out, sf.Content),
		Stats:     stats,
		LongLines: long,
	}, nil
}

// Source formats in-memory content as if it were read from path.
func Source(path string, content []byte, opt Options) (Result, error) {
	fs := source.NewFileSet()
	return FormatFile(fs.Get(fs.AddVirtual(path, content)), opt)
}

// Render writes every row of f and reports lines wider than limit.
func Render(f *ast.File, sizeHint, limit int) ([]byte, []int) {
	w := NewWriter(sizeHint, limit)
	for _, r := range f.Rows() {
		w.WriteRow(r)
	}
	w.Flush()
	return w.Bytes(), w.LongLines()
}
