package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/maisonnoire/searchd/internal/domain"
)

// store is the consumer interface for the redis catalog source (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// RedisSource loads products stored as JSON blobs under
// <prefix>product:<id>, written there by the storefront backend.
type RedisSource struct {
	store  store
	prefix string
	logger *zap.Logger
}

// NewRedisSource creates a redis-backed catalog source.
func NewRedisSource(s store, keyPrefix string, logger *zap.Logger) *RedisSource {
	return &RedisSource{store: s, prefix: keyPrefix + "product:", logger: logger}
}

// List fetches every product under the key prefix. A record that fails
// to decode is logged and skipped rather than failing the whole load.
func (r *RedisSource) List(ctx context.Context) ([]domain.Product, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}

	products := make([]domain.Product, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			// Key may have expired between SCAN and GET.
			r.logger.Warn("skipping unreadable product", zap.String("key", key), zap.Error(err))
			continue
		}
		var p domain.Product
		if err := json.Unmarshal(data, &p); err != nil {
			r.logger.Warn("skipping malformed product", zap.String("key", key), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
