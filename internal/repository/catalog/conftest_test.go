package catalog

import (
	"context"

	"github.com/maisonnoire/searchd/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn  func(ctx context.Context, key string) ([]byte, error)
	scanFn func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

// mockSource implements Source for snapshot tests.
type mockSource struct {
	listFn func(ctx context.Context) ([]domain.Product, error)
	calls  int
}

func (m *mockSource) List(ctx context.Context) ([]domain.Product, error) {
	m.calls++
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
