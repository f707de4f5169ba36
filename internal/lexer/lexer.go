package lexer

import (
	"bytes"

	"rftidy/internal/source"
	"rftidy/internal/token"
)

// Lexer splits space-separated test data into rows of typed cells.
// The kinds it assigns are coarse (SectionHeader, Continuation, Comment,
// Argument); the parser refines them by position.
type Lexer struct {
	file  *source.File
	lines [][]byte
	next  int
	pipe  bool
}

// New creates a lexer over a normalized source file.
func New(file *source.File) *Lexer {
	return &Lexer{file: file, lines: lines(file)}
}

// Tokenize lexes the whole file.
func Tokenize(file *source.File) (rows []token.Row, pipe bool) {
	lx := New(file)
	rows = make([]token.Row, 0, len(lx.lines))
	for {
		row, ok := lx.Next()
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	return rows, lx.pipe
}

// Pipe reports whether a pipe-separated line ("| a | b |") was seen so far.
// Such files are left untouched by the formatter.
func (lx *Lexer) Pipe() bool { return lx.pipe }

// Next returns the next row; ok is false after the last line.
func (lx *Lexer) Next() (token.Row, bool) {
	if lx.next >= len(lx.lines) {
		return nil, false
	}
	lineNo := lx.next + 1
	raw := lx.lines[lx.next]
	lx.next++

	body := bytes.TrimSuffix(raw, []byte{'\n'})
	newline := raw[len(body):]
	if isPipeLine(body) {
		lx.pipe = true
	}
	return scanRow(body, string(newline), lineNo), true
}

func isPipeLine(line []byte) bool {
	return bytes.Equal(line, []byte("|")) || bytes.HasPrefix(line, []byte("| ")) || bytes.HasPrefix(line, []byte("|\t"))
}

func scanRow(line []byte, newline string, lineNo int) token.Row {
	c := newCursor(line)
	if c.onlySpaceLeft() {
		return token.Row{{Kind: token.EOL, Text: string(line) + newline, Line: lineNo, Col: 1}}
	}

	row := make(token.Row, 0, 8)
	emit := func(k token.Kind, from int) {
		row = append(row, token.Token{Kind: k, Text: c.Text(from), Line: lineNo, Col: from + 1})
	}

	if isSpace(c.Peek()) {
		start := c.Off
		for isSpace(c.Peek()) {
			c.Bump()
		}
		emit(token.Separator, start)
	}

	first := true
	for !c.EOL() {
		if c.onlySpaceLeft() {
			break
		}
		if isSpace(c.Peek()) {
			start := c.Off
			for isSpace(c.Peek()) {
				c.Bump()
			}
			emit(token.Separator, start)
			continue
		}

		start := c.Off
		if c.Peek() == '#' {
			c.Off = len(bytes.TrimRight(line, " \t"))
			emit(token.Comment, start)
			break
		}
		scanCell(&c)
		kind := token.Argument
		text := c.Text(start)
		switch {
		case first && start == 0 && text[0] == '*':
			kind = token.SectionHeader
		case text == "...":
			kind = token.Continuation
		}
		emit(kind, start)
		first = false
	}

	// trailing whitespace belongs to the EOL token
	row = append(row, token.Token{Kind: token.EOL, Text: string(line[c.Off:]) + newline, Line: lineNo, Col: c.Off + 1})
	return row
}

// scanCell consumes one data cell: everything up to a separator or the end
// of the line. A backslash escapes the following byte so "\ " never ends a cell.
func scanCell(c *Cursor) {
	for !c.EOL() {
		if c.Peek() == '\\' {
			c.Bump()
			c.Bump()
			continue
		}
		if c.atSeparator() || (c.Peek() == ' ' && c.onlySpaceLeft()) {
			return
		}
		c.Bump()
	}
}
