package align

import (
	"strings"

	"rftidy/internal/token"
)

// mkRow builds an indented row of cells separated by two spaces.
// The first cell is a keyword, cells like ${x}= are assignments, "#..." is a comment.
func mkRow(cells ...string) token.Row {
	r := token.Row{{Kind: token.Separator, Text: "  ", Line: 1}}
	seenKeyword := false
	for i, c := range cells {
		if i > 0 {
			r = append(r, token.Token{Kind: token.Separator, Text: "  ", Line: 1})
		}
		kind := token.Argument
		switch {
		case strings.HasPrefix(c, "#"):
			kind = token.Comment
		case c == "...":
			kind = token.Continuation
		case !seenKeyword && token.IsVariableAssign(c):
			kind = token.Assign
		case !seenKeyword:
			kind = token.Keyword
			seenKeyword = true
		}
		r = append(r, token.Token{Kind: kind, Text: c, Line: 1})
	}
	return append(r, token.Token{Kind: token.EOL, Text: "\n", Line: 1})
}

// pad left-aligns s in a field of n characters.
func pad(s string, n int) string {
	return s + strings.Repeat(" ", n-len(s))
}

func mustPolicy(cfg PolicyConfig) Policy {
	p, err := NewPolicy(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

var fc = FormattingConfig{Indent: 4}
