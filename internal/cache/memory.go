package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is a thread-safe in-memory cache implementation.
type MemoryCache struct {
	data       sync.Map
	defaultTTL time.Duration
	stopCh     chan struct{}
	closed     atomic.Bool
}

// memoryCacheEntry holds a cached value with its expiration time.
type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a memory cache with the given default TTL. A
// background janitor drops expired entries every cleanupInterval; pass 0 to
// disable it.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		defaultTTL: defaultTTL,
		stopCh:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.cleanupLoop(cleanupInterval)
	}
	return c
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	val, ok := c.data.Load(key)
	if !ok {
		return nil, ErrCacheMiss
	}

	entry := val.(*memoryCacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.data.Delete(key)
		return nil, ErrCacheMiss
	}

	// Return a copy to prevent mutation.
	result := make([]byte, len(entry.value))
	copy(result, entry.value)
	return result, nil
}

// Set stores a value in the cache with the specified TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.data.Store(key, &memoryCacheEntry{
		value:     valueCopy,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a key from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.data.Delete(key)
	return nil
}

// Clear removes all entries from the cache.
func (c *MemoryCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.data.Range(func(key, _ any) bool {
		c.data.Delete(key)
		return true
	})
	return nil
}

// Close stops the janitor and marks the cache closed.
func (c *MemoryCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	return nil
}

func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.data.Range(func(key, val any) bool {
				if now.After(val.(*memoryCacheEntry).expiresAt) {
					c.data.Delete(key)
				}
				return true
			})
		case <-c.stopCh:
			return
		}
	}
}
