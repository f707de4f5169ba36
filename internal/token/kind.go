package token

// Kind represents the category of a data cell.
type Kind uint8

const (
	// Invalid indicates an unclassified token.
	Invalid Kind = iota
	// Separator is a run of whitespace between cells, including the leading indent.
	Separator
	// EOL is trailing whitespace plus the line terminator ("" on the last line without one).
	EOL
	// Continuation is the "..." marker that continues the previous statement.
	Continuation
	// Comment runs from '#' to the end of the line.
	Comment
	// SectionHeader is a "*** Name ***" cell.
	SectionHeader
	// DefinitionName is a test case, task or keyword name.
	DefinitionName
	// Setting is a bracketed setting such as [Tags] or [Arguments].
	Setting
	// Documentation is the [Documentation] setting cell.
	Documentation
	// Keyword is the name of a called keyword.
	Keyword
	// Argument is a keyword or setting argument.
	Argument
	// Assign is a variable assignment target such as ${result}=.
	Assign
	// For is the FOR block header marker.
	For
	// ForSeparator is IN, IN RANGE, IN ENUMERATE or IN ZIP.
	ForSeparator
	// If is the IF block header marker.
	If
	// InlineIf is an IF marker whose body is on the same line.
	InlineIf
	// ElseIf is the ELSE IF branch marker.
	ElseIf
	// Else is the ELSE branch marker.
	Else
	// End closes a FOR/IF/WHILE/TRY block.
	End
	// While is the WHILE block header marker.
	While
	// Try is the TRY block header marker.
	Try
	// Except is the EXCEPT branch marker.
	Except
	// Finally is the FINALLY branch marker.
	Finally
	// Return is the RETURN statement marker.
	Return
	// Break is the BREAK statement marker.
	Break
	// Continue is the CONTINUE statement marker.
	Continue
	// Var is the VAR statement marker.
	Var
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	Separator:      "Separator",
	EOL:            "EOL",
	Continuation:   "Continuation",
	Comment:        "Comment",
	SectionHeader:  "SectionHeader",
	DefinitionName: "DefinitionName",
	Setting:        "Setting",
	Documentation:  "Documentation",
	Keyword:        "Keyword",
	Argument:       "Argument",
	Assign:         "Assign",
	For:            "For",
	ForSeparator:   "ForSeparator",
	If:             "If",
	InlineIf:       "InlineIf",
	ElseIf:         "ElseIf",
	Else:           "Else",
	End:            "End",
	While:          "While",
	Try:            "Try",
	Except:         "Except",
	Finally:        "Finally",
	Return:         "Return",
	Break:          "Break",
	Continue:       "Continue",
	Var:            "Var",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsWhitespace reports whether tokens of this kind carry only layout.
func (k Kind) IsWhitespace() bool {
	return k == Separator || k == EOL
}

// IsData reports whether the kind is a data cell: not layout and not a comment.
func (k Kind) IsData() bool {
	return k != Invalid && !k.IsWhitespace() && k != Comment
}
