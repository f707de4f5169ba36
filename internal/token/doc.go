// Package token defines the typed cells of space-separated test data.
// Invariants:
//   - Concatenating Token.Text over all rows reproduces the normalized source.
//   - A Row holds exactly one physical line and always ends with an EOL token.
//   - Separator tokens carry only spaces and tabs; they are the only tokens
//     (together with EOL) whose text a formatter may rewrite.
//   - A Comment token runs from '#' to the end of the line and is never split.
package token
