package search

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/maisonnoire/searchd/internal/domain"
	"github.com/maisonnoire/searchd/internal/metrics"
	engine "github.com/maisonnoire/searchd/internal/search"
)

// Query length bounds enforced before ranking. Mirrors the storefront's
// client-side validation so the service rejects what the UI rejects.
const (
	MinQueryLength = 2
	MaxQueryLength = 100
)

// Options are per-request ranking overrides. Zero values fall back to
// the service defaults.
type Options struct {
	MinScore   int
	MaxResults int
}

// Service validates queries and ranks the catalog snapshot.
type Service struct {
	catalog  CatalogReader
	engine   *engine.Engine
	defaults Options
	maxLimit int
}

// New creates a search service with engine-policy defaults.
func New(catalog CatalogReader, eng *engine.Engine) *Service {
	p := eng.Policy()
	return &Service{
		catalog:  catalog,
		engine:   eng,
		defaults: Options{MinScore: p.DefaultMinScore, MaxResults: p.DefaultMaxResults},
		maxLimit: 100,
	}
}

// WithLimits overrides the default options and the hard cap on the
// per-request result limit.
func (s *Service) WithLimits(defaults Options, maxLimit int) *Service {
	if defaults.MinScore > 0 {
		s.defaults.MinScore = defaults.MinScore
	}
	if defaults.MaxResults > 0 {
		s.defaults.MaxResults = defaults.MaxResults
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Search validates the raw query, fetches the catalog snapshot, and
// returns the ranked products. A query failing length validation yields
// ErrInvalidQuery; a query that normalizes to nothing returns an empty
// result without touching the catalog. Catalog failures surface
// unchanged so the transport can signal unavailability instead of
// quietly returning nothing.
func (s *Service) Search(ctx context.Context, rawQuery string, opts Options) ([]domain.Product, error) {
	// Length is checked on the query as given, before trimming, so a
	// padded single character passes validation and simply ranks empty.
	qLen := utf8.RuneCountInString(rawQuery)
	if qLen < MinQueryLength {
		metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: query must be at least %d characters", domain.ErrInvalidQuery, MinQueryLength)
	}
	if qLen > MaxQueryLength {
		metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: query must be less than %d characters", domain.ErrInvalidQuery, MaxQueryLength)
	}

	if engine.Normalize(rawQuery) == "" {
		metrics.SearchesTotal.WithLabelValues("ok").Inc()
		metrics.SearchResults.Observe(0)
		return []domain.Product{}, nil
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	start := time.Now()
	results := s.engine.Search(rawQuery, products, engine.Options{
		MinScore:   s.effectiveMinScore(opts),
		MaxResults: s.effectiveMaxResults(opts),
	})
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchResults.Observe(float64(len(results)))
	metrics.SearchesTotal.WithLabelValues("ok").Inc()

	return results, nil
}

func (s *Service) effectiveMinScore(opts Options) int {
	if opts.MinScore > 0 {
		return opts.MinScore
	}
	return s.defaults.MinScore
}

func (s *Service) effectiveMaxResults(opts Options) int {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.defaults.MaxResults
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}
