package interpolation

import (
	"regexp"
)

// tokenPattern matches Cocoa format specifiers such as %@, %1$@, %d, %lld and
// %.2f. An escaped percent (%%) is matched first so it is never mistaken for
// the start of a specifier.
var tokenPattern = regexp.MustCompile(`%%|%(?:[0-9]+\$)?[-+ #0]*[0-9]*(?:\.[0-9]*)?(?:hh|h|ll|l|q|L|z|t|j)?[dDuUxXoOfFeEgGcCsSaAp@]`)

// Tokens returns the format specifiers in text in order of appearance.
// Escaped percent signs are not reported.
func Tokens(text string) []string {
	var tokens []string
	for _, m := range tokenPattern.FindAllString(text, -1) {
		if m == "%%" {
			continue
		}
		tokens = append(tokens, m)
	}
	return tokens
}
