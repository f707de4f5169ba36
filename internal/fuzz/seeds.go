package fuzztests

import "testing"

const maxSeedBytes = 64 << 10 // 64 KiB, ограничение для входа фаззера

var robotSeeds = []string{
	"",
	"*** Test Cases ***\nCase\n  Log  hello\n",
	"*** Settings ***\nLibrary    Collections\n\n*** Variables ***\n${X}    1\n",
	"*** Test Cases ***\nCase\n    ${a}    ${b}=    Get Pair    x    # pair\n    FOR    ${i}    IN RANGE    10\n        Log    ${i}\n    END\n",
	"*** Keywords ***\nKw\n    [Arguments]    ${x}\n    WHILE    $x > 0\n        ${x}=    Evaluate    $x - 1\n    END\n    RETURN    ${x}\n",
	"*** Tasks ***\nTask\n    TRY\n        Fail    boom\n    EXCEPT    boom    AS    ${err}\n        Log    ${err}\n    FINALLY\n        Log    done\n    END\n",
	"*** Test Cases ***\nCase\n    [Documentation]    Docs\n    ...    more\n    Log\n    ...    ${x}\n    ...\n    ...    tail\n",
	"*** Test Cases ***\nCase\n    IF    $c    Log    a    ELSE    Log    b\n",
	"# rftidy: off\n*** Test Cases ***\nCase\n  Log  kept   as is\n",
	"*** Test Cases ***\nCase\n  Log  a\n  # rftidy: off\n  Log  b\n  # rftidy: on\n  Log  c\n",
	"| *** Test Cases *** |\n| Case | Log | x |\n",
	"*** Test Cases ***\r\nCase\r\n  Log  crlf  \r\n",
	"*** Keywords ***\nKw\n    Log    Straße\\ mit\\ Leerzeichen    日本語\n",
}

func addSeeds(f *testing.F) {
	for _, s := range robotSeeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
