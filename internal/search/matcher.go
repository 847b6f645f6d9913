package search

import (
	"math"
	"strings"
	"unicode/utf8"
)

// strategy scores one normalized query against one normalized field
// value. ok reports whether the strategy applies; the first applicable
// strategy wins and later ones are not consulted. Scores are float64
// because the overlap rule yields fractional values; rounding happens
// once at the record level.
type strategy func(p *Policy, q, t string) (score float64, ok bool)

// strategies in priority order. Earlier entries dominate later ones
// because evaluation stops at the first hit.
var strategies = []strategy{
	matchExact,
	matchToken,
	matchTokenPrefix,
	matchFieldPrefix,
	matchSubstring,
	matchTokenOverlap,
	matchEditDistance,
	matchSubsequence,
}

// MatchScore computes a relevance score in roughly [0, 1000] for a
// single field. Either input empty scores 0. Relative field weights are
// applied by the ranker when combining fields.
func MatchScore(p *Policy, query, field string) float64 {
	if query == "" || field == "" {
		return 0
	}
	q := Normalize(query)
	t := Normalize(field)
	if q == "" || t == "" {
		return 0
	}
	for _, s := range strategies {
		if score, ok := s(p, q, t); ok {
			return score
		}
	}
	return 0
}

func matchExact(p *Policy, q, t string) (float64, bool) {
	if t == q {
		return float64(p.ExactScore), true
	}
	return 0, false
}

// matchToken checks whether the query equals one whole token of the
// field. The raw split is used here — stopwords still count as tokens.
func matchToken(p *Policy, q, t string) (float64, bool) {
	for _, tok := range splitTokens(t) {
		if tok == q {
			return float64(p.TokenScore), true
		}
	}
	return 0, false
}

func matchTokenPrefix(p *Policy, q, t string) (float64, bool) {
	for _, tok := range splitTokens(t) {
		if strings.HasPrefix(tok, q) {
			return float64(p.TokenPrefixScore), true
		}
	}
	return 0, false
}

func matchFieldPrefix(p *Policy, q, t string) (float64, bool) {
	if strings.HasPrefix(t, q) {
		return float64(p.FieldPrefixScore), true
	}
	return 0, false
}

// matchSubstring rewards consecutive-character matches anywhere in the
// field. Earlier positions and shorter fields score higher. Position
// and field length are counted in runes.
func matchSubstring(p *Policy, q, t string) (float64, bool) {
	byteIdx := strings.Index(t, q)
	if byteIdx < 0 {
		return 0, false
	}
	idx := utf8.RuneCountInString(t[:byteIdx])
	positionBoost := max(0, p.PositionBoostMax-idx)
	lengthBonus := max(0, p.LengthBonusRef-utf8.RuneCountInString(t))
	return float64(p.SubstringBase + positionBoost + min(p.LengthBonusCap, lengthBonus)), true
}

// matchTokenOverlap counts query tokens that appear as whole tokens in
// the field. The proportional term stays fractional; it is rounded
// together with the rest of the record score.
func matchTokenOverlap(p *Policy, q, t string) (float64, bool) {
	qTokens := splitTokens(q)
	if len(qTokens) == 0 {
		return 0, false
	}
	fieldTokens := splitTokens(t)
	overlap := 0
	for _, qt := range qTokens {
		for _, ft := range fieldTokens {
			if qt == ft {
				overlap++
				break
			}
		}
	}
	if overlap == 0 {
		return 0, false
	}
	proportional := float64(p.OverlapScale) * float64(overlap) / float64(len(qTokens))
	return float64(p.OverlapBase) + math.Min(float64(p.OverlapCap), proportional), true
}

func matchEditDistance(p *Policy, q, t string) (float64, bool) {
	sim := editSimilarity(q, t, p.EditMaxDistance)
	if sim <= 0 {
		return 0, false
	}
	return math.Round(float64(p.EditBase) + sim*float64(p.EditScale)), true
}

func matchSubsequence(p *Policy, q, t string) (float64, bool) {
	if isSubsequence(q, t) {
		return float64(p.SubsequenceScore), true
	}
	return 0, false
}
