package token

import "strings"

// Token is one cell of a physical line together with its source position.
type Token struct {
	Kind Kind
	Text string
	Line int // 1-based
	Col  int // 1-based, in bytes
}

// Sep builds a separator token of n spaces positioned like ref.
func Sep(n int, ref Token) Token {
	if n < 0 {
		n = 0
	}
	return Token{Kind: Separator, Text: strings.Repeat(" ", n), Line: ref.Line}
}

// Row is one physical line: optional indent, cells separated by separators,
// optional trailing comment and the EOL token.
type Row []Token

// Line returns the source line of the row, or 0 for an empty row.
func (r Row) Line() int {
	if len(r) == 0 {
		return 0
	}
	return r[0].Line
}

// Text concatenates the token texts of the row.
func (r Row) Text() string {
	var b strings.Builder
	for _, t := range r {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Split returns the data cells, the comment tokens and the EOL of the row.
// Separators are dropped. A row without EOL gets an empty synthetic one.
func (r Row) Split() (data, comments []Token, eol Token) {
	eol = Token{Kind: EOL, Line: r.Line()}
	for _, t := range r {
		switch {
		case t.Kind == EOL:
			eol = t
		case t.Kind == Comment:
			comments = append(comments, t)
		case t.Kind.IsData():
			data = append(data, t)
		}
	}
	return data, comments, eol
}

// Data returns the data cells of the row.
func (r Row) Data() []Token {
	data, _, _ := r.Split()
	return data
}

// Indent returns the leading separator text, or "" when the row starts with a cell.
func (r Row) Indent() string {
	if len(r) > 0 && r[0].Kind == Separator {
		return r[0].Text
	}
	return ""
}

// IsBlank reports whether the row has neither data nor comments.
func (r Row) IsBlank() bool {
	for _, t := range r {
		if !t.Kind.IsWhitespace() {
			return false
		}
	}
	return true
}

// IsCommentOnly reports whether the row holds comments and no data.
func (r Row) IsCommentOnly() bool {
	data, comments, _ := r.Split()
	return len(data) == 0 && len(comments) > 0
}

// IsBlankContinuation reports whether the row is a bare "..." marker.
func (r Row) IsBlankContinuation() bool {
	data := r.Data()
	return len(data) == 1 && data[0].Kind == Continuation
}

