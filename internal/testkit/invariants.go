package testkit

import (
	"fmt"
	"strings"

	"rftidy/internal/token"
)

// CheckTokenValues verifies that formatting changed layout only:
// 1) both sides hold the same sequence of non-whitespace tokens
// 2) every such token keeps its kind and its text (ignoring surrounding blanks)
// 3) no separator or EOL token carries anything but blanks and a newline
func CheckTokenValues(before, after []token.Row) error {
	b := valueTokens(before)
	a := valueTokens(after)
	if len(a) != len(b) {
		return fmt.Errorf("token count changed: %d -> %d", len(b), len(a))
	}
	for i := range b {
		if b[i].Kind != a[i].Kind {
			return fmt.Errorf("token %d (line %d) kind changed: %v -> %v", i, b[i].Line, b[i].Kind, a[i].Kind)
		}
		if strings.TrimSpace(b[i].Text) != a[i].Text {
			return fmt.Errorf("token %d (line %d) text changed: %q -> %q", i, b[i].Line, b[i].Text, a[i].Text)
		}
	}
	for _, r := range after {
		for _, t := range r {
			if t.Kind.IsWhitespace() && strings.Trim(t.Text, " \t\n") != "" {
				return fmt.Errorf("layout token on line %d carries data: %q", t.Line, t.Text)
			}
		}
	}
	return nil
}

// CheckFixedPoint reports the first row that differs between two renderings.
func CheckFixedPoint(first, second []token.Row) error {
	if len(first) != len(second) {
		return fmt.Errorf("row count changed: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if f, s := first[i].Text(), second[i].Text(); f != s {
			return fmt.Errorf("row %d not stable:\nfirst  %q\nsecond %q", i, f, s)
		}
	}
	return nil
}

func valueTokens(rows []token.Row) []token.Token {
	var out []token.Token
	for _, r := range rows {
		for _, t := range r {
			if !t.Kind.IsWhitespace() {
				out = append(out, t)
			}
		}
	}
	return out
}
