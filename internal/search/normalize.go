package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks, so "café"
// compares equal to "cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes text for comparison: trims surrounding
// whitespace, lowercases, and strips diacritics. Idempotent — applying
// it twice yields the same result as once.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the
		// trimmed/lowered input rather than dropping the query.
		return s
	}
	return out
}
