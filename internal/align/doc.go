// Package align lines up the data cells of test case and keyword bodies in
// columns.
//
// A run has one immutable Policy (built by NewPolicy from user settings) and
// any number of Aligner.File calls; each call owns its own context stack, so
// files may be processed concurrently with a shared Aligner.
//
// For every body (definition, FOR/IF/WHILE/TRY body or branch) the aligner
// first decides the width table, counting the whole body in auto mode, and
// only then rewrites the rows of its direct statements. Nested bodies get their
// own table. Only separator, indent and EOL tokens are ever rewritten.
package align
