package align

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultWidth is the column width used when no width table applies.
const DefaultWidth = 24

// Width is the target width of one column: either a fixed number of
// characters or unlimited, meaning "size to the cell, rounded up to 4".
// The zero value is Fixed(0) and is never produced by NewPolicy.
type Width struct {
	n         int
	unlimited bool
}

// Fixed returns a width of n characters. Fixed(0) is normalized to Unlimited.
func Fixed(n int) Width {
	if n <= 0 {
		return Unlimited()
	}
	return Width{n: n}
}

// Unlimited returns the "no cap" width.
func Unlimited() Width { return Width{unlimited: true} }

// IsUnlimited reports whether the width is the no-cap variant.
func (w Width) IsUnlimited() bool { return w.unlimited }

// N returns the fixed width, or 0 for Unlimited.
func (w Width) N() int {
	if w.unlimited {
		return 0
	}
	return w.n
}

func (w Width) String() string {
	if w.unlimited {
		return "0"
	}
	return strconv.Itoa(w.n)
}

// WidthTable maps column indexes to widths. A column past the last entry
// reuses the last entry. The zero value is an empty table.
type WidthTable struct {
	widths []Width
}

// NewWidthTable builds a table from per-column widths.
func NewWidthTable(widths ...Width) WidthTable {
	return WidthTable{widths: append([]Width(nil), widths...)}
}

// Len returns the number of configured columns.
func (t WidthTable) Len() int { return len(t.widths) }

// IsZero reports whether the table has no columns.
func (t WidthTable) IsZero() bool { return len(t.widths) == 0 }

// At returns the width of column col. An empty table yields Fixed(DefaultWidth).
func (t WidthTable) At(col int) Width {
	if len(t.widths) == 0 {
		return Fixed(DefaultWidth)
	}
	if col < 0 {
		col = 0
	}
	if col >= len(t.widths) {
		return t.widths[len(t.widths)-1]
	}
	return t.widths[col]
}

// cap returns the explicit cap of column col, if any.
func (t WidthTable) cap(col int) (int, bool) {
	if t.IsZero() {
		return 0, false
	}
	w := t.At(col)
	if w.IsUnlimited() {
		return 0, false
	}
	return w.n, true
}

// String renders the table in the csv form accepted by NewPolicy.
func (t WidthTable) String() string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = w.String()
	}
	return strings.Join(parts, ",")
}

func roundUp4(n int) int {
	return (n + 3) / 4 * 4
}

// cellWidth is the display width of a cell; wide East Asian runes count twice.
func cellWidth(s string) int {
	return runewidth.StringWidth(s)
}
