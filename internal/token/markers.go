package token

import "strings"

// Control markers are case-sensitive and written in upper case.
var markers = map[string]Kind{
	"FOR":          For,
	"IF":           If,
	"ELSE IF":      ElseIf,
	"ELSE":         Else,
	"END":          End,
	"WHILE":        While,
	"TRY":          Try,
	"EXCEPT":       Except,
	"FINALLY":      Finally,
	"RETURN":       Return,
	"BREAK":        Break,
	"CONTINUE":     Continue,
	"VAR":          Var,
	"IN":           ForSeparator,
	"IN RANGE":     ForSeparator,
	"IN ENUMERATE": ForSeparator,
	"IN ZIP":       ForSeparator,
}

// LookupMarker reports the control marker kind of a cell.
// ForSeparator is only returned for IN variants; callers decide where they are valid.
func LookupMarker(cell string) (Kind, bool) {
	k, ok := markers[cell]
	return k, ok
}

// IsVariableAssign reports whether cell looks like an assignment target:
// ${name}, @{name}, &{name} optionally followed by '=' (with an optional space before it).
func IsVariableAssign(cell string) bool {
	cell = strings.TrimSuffix(cell, "=")
	cell = strings.TrimSuffix(cell, " ")
	if len(cell) < 4 {
		return false
	}
	switch cell[0] {
	case '$', '@', '&':
	default:
		return false
	}
	if cell[1] != '{' || cell[len(cell)-1] != '}' {
		return false
	}
	// ${a}[0]= style item assignment is not recognized here; it stays a keyword.
	return strings.Count(cell, "{") == strings.Count(cell, "}")
}

// IsSetting reports whether cell is a bracketed test/keyword setting like [Tags].
func IsSetting(cell string) bool {
	return len(cell) > 2 && cell[0] == '[' && cell[len(cell)-1] == ']'
}

// SettingName returns the normalized name of a bracketed setting ("[ Tags ]" -> "tags").
func SettingName(cell string) string {
	if !IsSetting(cell) {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(cell[1:len(cell)-1], " ", ""))
}
