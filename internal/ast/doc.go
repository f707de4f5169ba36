// Package ast is the statement model of a test data file.
//
// The model is shallow: statements keep their physical rows of tokens
// untouched, and only blocks (FOR/IF/WHILE/TRY) and definitions (test cases,
// tasks, keywords) introduce nesting. Rendering a file is the concatenation
// of every row of every node in order, so a formatter edits rows in place.
package ast
