package search

import "unicode/utf8"

// levenshtein computes the edit distance between two strings with unit
// costs for insertion, deletion, and substitution, counted in runes so
// multi-byte characters cost one edit, not several. Two rolling rows
// keep memory at O(min(n,m)). Inputs are expected to be normalized
// already.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}
	// Keep the shorter string as the row to minimize allocation.
	if len(br) > len(ar) {
		ar, br = br, ar
	}

	prev := make([]int, len(br)+1)
	cur := make([]int, len(br)+1)
	for j := 0; j <= len(br); j++ {
		prev[j] = j
	}

	for i := 0; i < len(ar); i++ {
		cur[0] = i + 1
		for j := 0; j < len(br); j++ {
			cost := 1
			if ar[i] == br[j] {
				cost = 0
			}
			cur[j+1] = min(cur[j]+1, prev[j+1]+1, prev[j]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(br)]
}

// editSimilarity returns a similarity in [0,1] based on normalized edit
// distance, where 1 means identical. Pairs whose normalized distance
// exceeds maxDistance are rejected with similarity 0.
func editSimilarity(a, b string, maxDistance float64) float64 {
	if a == "" || b == "" {
		return 0
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	norm := float64(levenshtein(a, b)) / float64(maxLen)
	if norm > maxDistance {
		return 0
	}
	return 1 - norm
}

// isSubsequence reports whether all characters of q appear in t in
// order, not necessarily contiguously.
func isSubsequence(q, t string) bool {
	if q == "" {
		return true
	}
	qr := []rune(q)
	qi := 0
	for _, r := range t {
		if r == qr[qi] {
			qi++
			if qi == len(qr) {
				return true
			}
		}
	}
	return false
}
