package ast

import (
	"strings"

	"rftidy/internal/token"
)

// Node is a statement, a block or a definition.
type Node interface {
	// FirstLine and LastLine are the 1-based source lines the node spans.
	FirstLine() int
	LastLine() int
	// AppendRows appends every row of the node in source order.
	AppendRows(dst []token.Row) []token.Row
}

func normalizeName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

func firstLineOf(rows []token.Row) int {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].Line()
}

func lastLineOf(rows []token.Row) int {
	if len(rows) == 0 {
		return 0
	}
	return rows[len(rows)-1].Line()
}
