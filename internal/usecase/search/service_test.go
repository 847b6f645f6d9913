package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maisonnoire/searchd/internal/domain"
	engine "github.com/maisonnoire/searchd/internal/search"
)

type mockCatalog struct {
	products []domain.Product
	err      error
	calls    int
}

func (m *mockCatalog) Products(context.Context) ([]domain.Product, error) {
	m.calls++
	return m.products, m.err
}

func seedCatalog() []domain.Product {
	return []domain.Product{
		{ID: "prod-001", Name: "Oud Royale", Category: "Parfum", Description: "Deep resinous oud with saffron."},
		{ID: "prod-002", Name: "Bleu Noir", Category: "Eau de Parfum", Description: "Smoky woods and bergamot."},
		{ID: "prod-003", Name: "Citrus Soleil", Category: "Eau de Toilette", Description: "Sparkling citrus over white musk."},
	}
}

func newService(catalog CatalogReader) *Service {
	return New(catalog, engine.NewEngine(engine.DefaultPolicy()))
}

func TestService_Search(t *testing.T) {
	svc := newService(&mockCatalog{products: seedCatalog()})

	results, err := svc.Search(context.Background(), "oud", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results for query \"oud\"")
	}
	if results[0].ID != "prod-001" {
		t.Errorf("expected Oud Royale first, got %s", results[0].ID)
	}
}

func TestService_Search_QueryTooShort(t *testing.T) {
	catalog := &mockCatalog{products: seedCatalog()}
	svc := newService(catalog)

	for _, q := range []string{"", " ", "a"} {
		if _, err := svc.Search(context.Background(), q, Options{}); !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("query %q: expected ErrInvalidQuery, got %v", q, err)
		}
	}
	if catalog.calls != 0 {
		t.Errorf("catalog should not be read for invalid queries, got %d calls", catalog.calls)
	}
}

func TestService_Search_QueryTooLong(t *testing.T) {
	svc := newService(&mockCatalog{products: seedCatalog()})

	long := strings.Repeat("a", MaxQueryLength+1)
	if _, err := svc.Search(context.Background(), long, Options{}); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestService_Search_BlankAfterNormalize_EmptyResult(t *testing.T) {
	catalog := &mockCatalog{products: seedCatalog()}
	svc := newService(catalog)

	// Long enough to pass validation, nothing left once trimmed.
	results, err := svc.Search(context.Background(), "    ", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if catalog.calls != 0 {
		t.Errorf("catalog should not be read for blank queries, got %d calls", catalog.calls)
	}
}

func TestService_Search_PaddedSingleRune_EmptyResult(t *testing.T) {
	svc := newService(&mockCatalog{products: seedCatalog()})

	// Padding passes length validation but the engine still refuses a
	// one-character query.
	results, err := svc.Search(context.Background(), "   o   ", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestService_Search_CatalogUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	svc := newService(&mockCatalog{err: cause})

	_, err := svc.Search(context.Background(), "oud", Options{})
	if !errors.Is(err, cause) {
		t.Fatalf("expected catalog error to propagate, got %v", err)
	}
}

func TestService_Search_LimitClampedToMax(t *testing.T) {
	products := make([]domain.Product, 0, 30)
	for i := 0; i < 30; i++ {
		products = append(products, domain.Product{ID: string(rune('a' + i)), Name: "Oud Blend"})
	}
	svc := newService(&mockCatalog{products: products}).WithLimits(Options{}, 10)

	results, err := svc.Search(context.Background(), "oud", Options{MaxResults: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 10 {
		t.Errorf("expected limit clamped to 10, got %d", len(results))
	}
}

func TestService_Search_DefaultsApplyWhenOptionsZero(t *testing.T) {
	products := make([]domain.Product, 0, 30)
	for i := 0; i < 30; i++ {
		products = append(products, domain.Product{ID: string(rune('a' + i)), Name: "Oud Blend"})
	}
	svc := newService(&mockCatalog{products: products}).WithLimits(Options{MaxResults: 5}, 100)

	results, err := svc.Search(context.Background(), "oud", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 5 {
		t.Errorf("expected default limit of 5, got %d", len(results))
	}
}

func TestService_Search_MinScoreOverride(t *testing.T) {
	svc := newService(&mockCatalog{products: seedCatalog()})

	// A threshold above every possible weighted score filters everything.
	results, err := svc.Search(context.Background(), "oud", Options{MinScore: 5000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results above threshold, got %d", len(results))
	}
}
