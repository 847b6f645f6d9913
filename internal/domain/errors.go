package domain

import "errors"

var (
	// ErrInvalidQuery signals a query that fails length validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrCatalogUnavailable signals that no product snapshot could be obtained.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
