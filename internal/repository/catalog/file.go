package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maisonnoire/searchd/internal/domain"
)

// FileSource loads the catalog from a JSON seed file. Intended for
// local development and tests; the file is re-read on every List so
// edits show up on the next snapshot refresh.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// List reads and decodes the seed file.
func (f *FileSource) List(_ context.Context) ([]domain.Product, error) {
	data, err := os.ReadFile(filepath.Clean(f.path))
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", f.path, err)
	}
	return products, nil
}
