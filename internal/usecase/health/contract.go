package health

import (
	"context"
	"time"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker reports the state of the in-memory catalog snapshot.
type CatalogChecker interface {
	Len() int
	LastRefresh() time.Time
}
