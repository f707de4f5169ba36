package align

// Disabler reports whether formatting is suspended anywhere in the 1-based
// line range [first, last] (directives or a start/end line window).
type Disabler interface {
	IsNodeDisabled(first, last int) bool
}

// SkipPolicy reports which statements the user asked to leave alone.
type SkipPolicy interface {
	// Documentation reports whether [Documentation] settings are skipped.
	Documentation() bool
	// ReturnValues reports whether assignment cells are kept out of the columns.
	ReturnValues() bool
	// KeywordCall reports whether calls to the named keyword are skipped.
	KeywordCall(name string) bool
}

type nopDisabler struct{}

func (nopDisabler) IsNodeDisabled(int, int) bool { return false }

// defaultSkip skips documentation only.
type defaultSkip struct{}

func (defaultSkip) Documentation() bool { return true }

func (defaultSkip) ReturnValues() bool { return false }

func (defaultSkip) KeywordCall(string) bool { return false }
