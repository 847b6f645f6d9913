package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces. Consumers
// should depend on the narrow sub-interfaces instead.
type Store interface {
	Pinger
	KVStore
	Scanner
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Scanner enumerates keys matching a glob pattern.
type Scanner interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
}
