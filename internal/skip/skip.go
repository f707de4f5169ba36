// Package skip decides which statements are left exactly as written.
package skip

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"rftidy/internal/align"
)

// Rules is the user-facing skip configuration.
type Rules struct {
	Documentation bool
	ReturnValues  bool
	// KeywordCalls are keyword names compared after normalization.
	KeywordCalls []string
	// KeywordCallPatterns are regular expressions matched against the raw name.
	KeywordCallPatterns []string
}

// Policy implements align.SkipPolicy. It is immutable and safe for concurrent use.
type Policy struct {
	documentation bool
	returnValues  bool
	names         map[string]struct{}
	patterns      []*regexp.Regexp
}

var _ align.SkipPolicy = (*Policy)(nil)

// New compiles r. An invalid pattern is reported as *align.ParamError.
func New(r Rules) (*Policy, error) {
	p := &Policy{
		documentation: r.Documentation,
		returnValues:  r.ReturnValues,
		names:         make(map[string]struct{}, len(r.KeywordCalls)),
	}
	for _, name := range r.KeywordCalls {
		if n := NormalizeName(name); n != "" {
			p.names[n] = struct{}{}
		}
	}
	for _, pat := range r.KeywordCallPatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, &align.ParamError{
				Param:   "skip_keyword_call_pattern",
				Value:   pat,
				Allowed: "a valid regular expression (" + err.Error() + ")",
			}
		}
		p.patterns = append(p.patterns, re)
	}
	return p, nil
}

// Documentation reports whether [Documentation] settings are left unaligned.
func (p *Policy) Documentation() bool { return p.documentation }

// ReturnValues reports whether assignment cells are kept out of the columns.
func (p *Policy) ReturnValues() bool { return p.returnValues }

// KeywordCall reports whether calls to name are skipped, either by normalized
// name or by pattern.
func (p *Policy) KeywordCall(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := p.names[NormalizeName(name)]; ok {
		return true
	}
	for _, re := range p.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// NormalizeName folds case and drops spaces and underscores, so that
// "Should Be Equal", "should_be_equal" and "SHOULDBEEQUAL" compare equal.
func NormalizeName(name string) string {
	name = norm.NFC.String(name)
	name = strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' || r == '\t' {
			return -1
		}
		return r
	}, name)
	return cases.Fold().String(name)
}
