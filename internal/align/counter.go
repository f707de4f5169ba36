package align

import (
	"rftidy/internal/ast"
	"rftidy/internal/token"
)

// widthCounter collects candidate widths of the direct statements of one body.
type widthCounter struct {
	policy Policy
	skip   SkipPolicy
	dis    Disabler
	// observed[i] holds every candidate seen for column i; candidates over
	// the cap are filtered at finalization.
	observed [][]int
}

// CountWidths computes the auto width table of one body. Nested blocks are not
// descended into; they are counted when the aligner enters them.
func CountWidths(nodes []ast.Node, p Policy, sk SkipPolicy, dis Disabler) WidthTable {
	if sk == nil {
		sk = defaultSkip{}
	}
	if dis == nil {
		dis = nopDisabler{}
	}
	c := widthCounter{policy: p, skip: sk, dis: dis}
	for _, n := range nodes {
		st, ok := n.(*ast.Statement)
		if !ok || dis.IsNodeDisabled(st.FirstLine(), st.LastLine()) {
			continue
		}
		c.statement(st)
	}
	return c.finalize()
}

func (c *widthCounter) statement(st *ast.Statement) {
	switch st.Kind {
	case ast.StmtDocumentation:
		if c.skip.Documentation() {
			return
		}
		data := st.Rows[0].Data()
		if len(data) > 0 {
			c.record([]int{roundUp4(cellWidth(data[0].Text) + c.policy.MinSeparator)})
		}
	case ast.StmtKeywordCall:
		if c.skip.KeywordCall(st.KeywordName()) {
			return
		}
		c.rows(st)
	case ast.StmtSetting, ast.StmtTemplate, ast.StmtReturn, ast.StmtBreak, ast.StmtContinue, ast.StmtVar:
		c.rows(st)
	}
}

func (c *widthCounter) rows(st *ast.Statement) {
	skipAssign := c.skip.ReturnValues()
	for _, r := range st.Rows {
		if r.IsBlankContinuation() {
			continue
		}
		if data := r.Data(); len(data) > 0 {
			c.record(c.rowCandidates(data, skipAssign))
		}
	}
}

// rowCandidates returns the candidate widths of the cells, column by column.
// A cell over its explicit cap ends the row; with ignore_line it also discards
// everything recorded for the row.
func (c *widthCounter) rowCandidates(cells []token.Token, skipAssign bool) []int {
	var cand []int
	for _, cell := range cells {
		if skipAssign && cell.Kind == token.Assign {
			continue
		}
		w := roundUp4(cellWidth(cell.Text) + c.policy.MinSeparator)
		if limit, capped := c.policy.Widths.cap(len(cand)); capped && w > limit {
			if c.policy.Overflow == OverflowIgnoreLine {
				return nil
			}
			return cand
		}
		cand = append(cand, w)
	}
	return cand
}

func (c *widthCounter) record(cand []int) {
	for col, w := range cand {
		for len(c.observed) <= col {
			c.observed = append(c.observed, nil)
		}
		c.observed[col] = append(c.observed[col], w)
	}
}

// finalize picks, per column, the widest candidate that fits the explicit cap.
// Columns without a qualifying candidate fall back to the explicit width.
func (c *widthCounter) finalize() WidthTable {
	explicit := c.policy.Widths
	n := max(len(c.observed), explicit.Len())
	if n == 0 {
		return WidthTable{}
	}
	widths := make([]Width, n)
	for col := range widths {
		limit, capped := explicit.cap(col)
		best := 0
		if col < len(c.observed) {
			for _, w := range c.observed[col] {
				if capped && w > limit {
					continue
				}
				best = max(best, w)
			}
		}
		switch {
		case best > 0:
			widths[col] = Fixed(best)
		case !explicit.IsZero():
			widths[col] = explicit.At(col)
		default:
			widths[col] = Fixed(DefaultWidth)
		}
	}
	return WidthTable{widths: widths}
}
