package domain

import (
	"strings"
	"unicode"
)

// Slugify lowercases s and collapses every run of non-alphanumeric runes
// into a single hyphen. Returns "" when nothing survives, in which case the
// caller must supply its own fallback.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
