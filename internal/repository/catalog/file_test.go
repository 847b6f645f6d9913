package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestFileSource_List(t *testing.T) {
	path := writeSeedFile(t, `[
		{"id":"prod-001","name":"Bleu Noir Eau de Parfum","category":"Eau de Parfum","price":1599000,"stock":15},
		{"id":"prod-006","name":"Oud Royale","category":"Parfum","price":2450000,"stock":5}
	]`)

	src := NewFileSource(path)
	products, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[1].Name != "Oud Royale" || products[1].Price != 2450000 {
		t.Errorf("unexpected product: %+v", products[1])
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := src.List(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileSource_MalformedJSON(t *testing.T) {
	path := writeSeedFile(t, `{"not":"an array"}`)
	src := NewFileSource(path)
	if _, err := src.List(context.Background()); err == nil {
		t.Fatal("expected error for malformed seed")
	}
}
