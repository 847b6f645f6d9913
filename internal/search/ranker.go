package search

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/maisonnoire/searchd/internal/domain"
)

// Options are per-call ranking overrides. Zero values mean "use the
// policy default".
type Options struct {
	MinScore   int
	MaxResults int
}

// Engine ranks products against free-text queries using a fixed policy.
// It is stateless and safe for concurrent use.
type Engine struct {
	policy Policy
}

// NewEngine creates an engine with the given policy.
func NewEngine(p Policy) *Engine {
	return &Engine{policy: p}
}

// Policy returns the engine's ranking policy.
func (e *Engine) Policy() Policy { return e.policy }

type scoredProduct struct {
	product domain.Product
	score   int
}

// Search ranks products against the query and returns them best-first,
// filtered by the effective minimum score and capped at the maximum
// result count. Products are returned unmodified; ties keep their input
// order. Degenerate queries yield an empty slice, never an error.
func (e *Engine) Search(query string, products []domain.Product, opts Options) []domain.Product {
	p := &e.policy

	normalized := Normalize(query)
	if normalized == "" {
		return nil
	}

	// Length in runes: a two-character query is short no matter how
	// many bytes its characters take.
	qLen := utf8.RuneCountInString(normalized)
	if qLen < p.MinQueryLen {
		return nil
	}

	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = p.DefaultMinScore
	}
	// Short queries need stricter scoring to suppress fuzzy noise.
	if qLen < p.ShortQueryLen && minScore < p.ShortQueryFloor {
		minScore = p.ShortQueryFloor
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = p.DefaultMaxResults
	}

	scored := make([]scoredProduct, 0, len(products))
	for _, product := range products {
		score := e.scoreProduct(normalized, qLen, product)
		if score >= minScore {
			scored = append(scored, scoredProduct{product: product, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}

	results := make([]domain.Product, len(scored))
	for i, s := range scored {
		results[i] = s.product
	}
	return results
}

// scoreProduct combines per-field match scores into one weighted record
// score. Name matters most, then category, short description, and the
// long description.
func (e *Engine) scoreProduct(normalized string, qLen int, product domain.Product) int {
	p := &e.policy

	nameScore := MatchScore(p, normalized, product.Name)
	catScore := MatchScore(p, normalized, product.Category)
	shortScore := MatchScore(p, normalized, product.ShortDescription)
	descScore := MatchScore(p, normalized, product.Description)

	total := nameScore*p.NameWeight +
		catScore*p.CategoryWeight +
		shortScore*p.ShortDescWeight +
		descScore*p.DescWeight

	// Short queries stay useful for prefix search on name/category but
	// everything else is dampened.
	if qLen < p.ShortQueryLen && !e.strongPrefix(normalized, product) {
		total *= p.ShortQueryDampen
	}

	return int(math.Round(total))
}

func (e *Engine) strongPrefix(normalized string, product domain.Product) bool {
	return strings.HasPrefix(Normalize(product.Name), normalized) ||
		strings.HasPrefix(Normalize(product.Category), normalized)
}
