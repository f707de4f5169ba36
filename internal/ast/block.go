package ast

import "rftidy/internal/token"

// BlockKind classifies a compound statement or one of its branches.
type BlockKind uint8

const (
	BlockFor BlockKind = iota
	BlockIf
	BlockWhile
	BlockTry
	// Branch kinds share the depth of their parent block's body.
	BlockElseIf
	BlockElse
	BlockExcept
	BlockFinally
)

// IsBranch reports whether the kind is a continuation header (ELSE IF, ELSE, EXCEPT, FINALLY).
func (k BlockKind) IsBranch() bool { return k >= BlockElseIf }

// Block is a FOR/IF/WHILE/TRY statement with its nested body.
// Branches are the ELSE IF/ELSE/EXCEPT/FINALLY parts; they have no End.
// End is nil for an unterminated block.
type Block struct {
	Kind     BlockKind
	Header   *Statement
	Body     []Node
	Branches []*Block
	End      *Statement
}

func (b *Block) FirstLine() int { return b.Header.FirstLine() }

func (b *Block) LastLine() int {
	if b.End != nil {
		return b.End.LastLine()
	}
	if n := len(b.Branches); n > 0 {
		return b.Branches[n-1].LastLine()
	}
	if n := len(b.Body); n > 0 {
		return b.Body[n-1].LastLine()
	}
	return b.Header.LastLine()
}

func (b *Block) AppendRows(dst []token.Row) []token.Row {
	dst = b.Header.AppendRows(dst)
	for _, n := range b.Body {
		dst = n.AppendRows(dst)
	}
	for _, br := range b.Branches {
		dst = br.AppendRows(dst)
	}
	if b.End != nil {
		dst = b.End.AppendRows(dst)
	}
	return dst
}
