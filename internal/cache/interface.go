// Package cache provides caching infrastructure for msgdepot. Export trees
// are rebuilt from the full translation set on every read, so the service
// keeps rendered trees here between writes.
package cache

import (
	"context"
	"time"
)

// Cache defines the interface for cache implementations.
// All implementations must be thread-safe.
// Values are []byte to support both in-memory and Redis backends.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns ErrCacheMiss if not found or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the specified TTL.
	// If TTL is 0, uses the default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
