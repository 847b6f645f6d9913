package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/maisonnoire/searchd/internal/domain"
	"github.com/maisonnoire/searchd/internal/metrics"
)

// Source lists the full product catalog.
type Source interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// Snapshot keeps an in-memory copy of the catalog and refreshes it from
// the source when older than the TTL. Reads between refreshes share one
// immutable slice, so the hot search path never touches the source.
type Snapshot struct {
	source Source
	ttl    time.Duration
	logger *zap.Logger

	mu          sync.RWMutex
	products    []domain.Product
	lastRefresh time.Time
	loaded      bool
}

// NewSnapshot creates a snapshot cache over the given source.
func NewSnapshot(source Source, ttl time.Duration, logger *zap.Logger) *Snapshot {
	return &Snapshot{source: source, ttl: ttl, logger: logger}
}

// Products returns the current catalog, refreshing it first when stale.
// When a refresh fails but an earlier snapshot exists, the stale
// snapshot is served and the failure logged; the error is returned only
// when there is nothing to serve at all.
func (s *Snapshot) Products(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	if s.loaded && time.Since(s.lastRefresh) < s.ttl {
		products := s.products
		s.mu.RUnlock()
		return products, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if s.loaded && time.Since(s.lastRefresh) < s.ttl {
		return s.products, nil
	}

	products, err := s.source.List(ctx)
	if err != nil {
		if s.loaded {
			metrics.CatalogRefreshTotal.WithLabelValues("stale").Inc()
			s.logger.Warn("catalog refresh failed, serving stale snapshot",
				zap.Error(err),
				zap.Time("last_refresh", s.lastRefresh),
			)
			return s.products, nil
		}
		metrics.CatalogRefreshTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	s.products = products
	s.lastRefresh = time.Now()
	s.loaded = true
	metrics.CatalogRefreshTotal.WithLabelValues("ok").Inc()
	metrics.CatalogProducts.Set(float64(len(products)))

	return s.products, nil
}

// Len returns the size of the current snapshot.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// LastRefresh returns the time of the last successful refresh.
func (s *Snapshot) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}
