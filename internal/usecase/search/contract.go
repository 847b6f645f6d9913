package search

import (
	"context"

	"github.com/maisonnoire/searchd/internal/domain"
)

// CatalogReader supplies the product snapshot to rank against.
type CatalogReader interface {
	Products(ctx context.Context) ([]domain.Product, error)
}
