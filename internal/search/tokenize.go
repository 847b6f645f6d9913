package search

import "strings"

// stopwords are common English function words excluded from tokens.
var stopwords = map[string]struct{}{
	"and": {}, "or": {}, "the": {}, "a": {}, "an": {}, "of": {},
	"in": {}, "for": {}, "with": {}, "by": {}, "on": {}, "to": {},
	"at": {}, "from": {}, "is": {}, "are": {}, "be": {}, "as": {},
}

// splitTokens splits already-normalized text on runs of characters that
// are not ASCII letters or digits. Empty tokens are dropped, order and
// duplicates are preserved.
func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// Tokenize normalizes text and splits it into meaningful tokens,
// dropping stopwords.
func Tokenize(s string) []string {
	raw := splitTokens(Normalize(s))
	tokens := raw[:0]
	for _, t := range raw {
		if _, stop := stopwords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}
