package align

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects how width tables are obtained.
type Mode uint8

const (
	// ModeFixed uses the configured widths (or DefaultWidth) everywhere.
	ModeFixed Mode = iota
	// ModeAuto counts every body before aligning it.
	ModeAuto
)

func (m Mode) String() string {
	if m == ModeAuto {
		return "auto"
	}
	return "fixed"
}

// Overflow selects what happens to a cell that does not fit its column.
type Overflow uint8

const (
	// OverflowMerge lets the cell spill over the following columns.
	OverflowMerge Overflow = iota
	// OverflowCompact takes the minimal rounded width and catches up in later columns.
	OverflowCompact
	// OverflowIgnoreLine leaves the whole statement untouched.
	OverflowIgnoreLine
	// OverflowIgnoreRest uses minimal separators for the rest of the row.
	OverflowIgnoreRest
)

var overflowNames = [...]string{
	OverflowMerge:      "overflow",
	OverflowCompact:    "compact_overflow",
	OverflowIgnoreLine: "ignore_line",
	OverflowIgnoreRest: "ignore_rest",
}

func (o Overflow) String() string {
	if int(o) < len(overflowNames) {
		return overflowNames[o]
	}
	return "overflow"
}

const (
	// DefaultMinSeparator is the default number of spaces between cells.
	DefaultMinSeparator = 4
	// DefaultIndent is the default number of spaces per indentation level.
	DefaultIndent = 4
)

// ParamError reports an invalid configuration value. It is fatal for the run.
type ParamError struct {
	Param   string
	Value   string
	Allowed string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %q value %q: expected %s", e.Param, e.Value, e.Allowed)
}

// PolicyConfig is the raw, user-facing form of a Policy.
type PolicyConfig struct {
	Widths        string // csv of non-negative integers, "" for none
	AlignmentType string // fixed | auto
	HandleTooLong string // overflow | compact_overflow | ignore_line | ignore_rest
	MinSeparator  int    // 0 selects DefaultMinSeparator
}

// Policy is the validated, immutable width policy of a run.
type Policy struct {
	Mode         Mode
	Overflow     Overflow
	MinSeparator int
	Widths       WidthTable
}

// DefaultPolicy is fixed mode, overflow, default separator and no explicit widths.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeFixed, Overflow: OverflowMerge, MinSeparator: DefaultMinSeparator}
}

// NewPolicy validates cfg. Empty strings select defaults.
func NewPolicy(cfg PolicyConfig) (Policy, error) {
	p := DefaultPolicy()

	widths, err := ParseWidths(cfg.Widths)
	if err != nil {
		return Policy{}, err
	}
	p.Widths = widths

	switch strings.TrimSpace(cfg.AlignmentType) {
	case "", "fixed":
		p.Mode = ModeFixed
	case "auto":
		p.Mode = ModeAuto
	default:
		return Policy{}, &ParamError{Param: "alignment_type", Value: cfg.AlignmentType, Allowed: "one of: fixed, auto"}
	}

	switch strings.TrimSpace(cfg.HandleTooLong) {
	case "", "overflow":
		p.Overflow = OverflowMerge
	case "compact_overflow":
		p.Overflow = OverflowCompact
	case "ignore_line":
		p.Overflow = OverflowIgnoreLine
	case "ignore_rest":
		p.Overflow = OverflowIgnoreRest
	default:
		return Policy{}, &ParamError{
			Param:   "handle_too_long",
			Value:   cfg.HandleTooLong,
			Allowed: "one of: overflow, compact_overflow, ignore_line, ignore_rest",
		}
	}

	switch {
	case cfg.MinSeparator == 0:
	case cfg.MinSeparator < 2:
		return Policy{}, &ParamError{Param: "separator", Value: strconv.Itoa(cfg.MinSeparator), Allowed: "an integer of at least 2"}
	default:
		p.MinSeparator = cfg.MinSeparator
	}
	return p, nil
}

// ParseWidths parses a csv list of non-negative integers. "0" means unlimited.
func ParseWidths(csv string) (WidthTable, error) {
	if strings.TrimSpace(csv) == "" {
		return WidthTable{}, nil
	}
	parts := strings.Split(csv, ",")
	widths := make([]Width, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return WidthTable{}, &ParamError{Param: "widths", Value: csv, Allowed: "a comma separated list of non-negative integers"}
		}
		widths = append(widths, Fixed(n))
	}
	return WidthTable{widths: widths}, nil
}

// FormattingConfig carries the layout settings shared with other passes.
type FormattingConfig struct {
	Indent     int // spaces per indentation level
	LineLength int // informational; lines are never wrapped here
}

func (fc FormattingConfig) withDefaults() FormattingConfig {
	if fc.Indent <= 0 {
		fc.Indent = DefaultIndent
	}
	if fc.LineLength <= 0 {
		fc.LineLength = 120
	}
	return fc
}
