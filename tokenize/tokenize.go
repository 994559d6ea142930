// Package tokenize implements the engine's only text-splitting rule:
// lower-case, strip everything that is not a letter or digit, and
// split on whitespace. No stemming, no stop words, no phrase or
// n-gram awareness; the engine deliberately ranks on raw token
// identity only.
package tokenize

import "strings"

// Tokenize replaces every character outside [A-Za-z0-9] with a space,
// splits on runs of whitespace, drops empty tokens, lower-cases each
// token, and preserves order, including duplicates.
func Tokenize(s string) []string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Fields(b.String())
}
