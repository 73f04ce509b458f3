package cache

import (
	"context"
	"time"
)

// Cache defines the interface for the remote conversion-result cache.
// Expiry and eviction belong to the backing service; expiration is a
// hint that backends without server-side policy may apply.
type Cache interface {
	// Get retrieves a value from cache; a missing key is (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error

	// Close closes the cache connection
	Close() error

	// Health checks cache health
	Health(ctx context.Context) error
}

// CacheError represents a cache operation error
type CacheError struct {
	Operation string
	Key       string
	Err       error
}

func (e *CacheError) Error() string {
	return "cache " + e.Operation + " failed for key '" + e.Key + "': " + e.Err.Error()
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

// noopCache satisfies Cache for deployments that run without one
type noopCache struct{}

// NewNoopCache returns a cache that never hits and never fails
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }

func (noopCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return nil
}

func (noopCache) Close() error { return nil }

func (noopCache) Health(ctx context.Context) error { return nil }
