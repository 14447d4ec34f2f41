package validate

import (
	"regexp"
	"strings"
)

const MaxInputLength = 1000

var (
	unsafeCharsRe  = regexp.MustCompile(`[<>"'&]`)
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Sanitize strips markup-looking content from a captured string before it
// is stored. The result never exceeds MaxInputLength runes.
func Sanitize(input string) string {
	s := strings.TrimSpace(input)
	s = unsafeCharsRe.ReplaceAllString(s, "")
	// Removing one match can join its neighbours into a new one.
	for {
		next := eventHandlerRe.ReplaceAllString(jsSchemeRe.ReplaceAllString(s, ""), "")
		if next == s {
			break
		}
		s = next
	}
	if r := []rune(s); len(r) > MaxInputLength {
		s = string(r[:MaxInputLength])
	}
	return s
}
