package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const exportAllKey = "export:all"

// ExportCache caches rendered export trees per locale on top of a Cache
// backend. Values are JSON-encoded nested message trees.
type ExportCache struct {
	cache Cache
	ttl   time.Duration
}

// NewExportCache wraps a cache backend for export trees.
func NewExportCache(c Cache, ttl time.Duration) *ExportCache {
	return &ExportCache{cache: c, ttl: ttl}
}

func exportKey(locale string) string {
	return "export:locale:" + locale
}

// GetLocale returns the cached export tree for a locale, or ErrCacheMiss.
func (e *ExportCache) GetLocale(ctx context.Context, locale string) (map[string]any, error) {
	return e.get(ctx, exportKey(locale))
}

// SetLocale stores the export tree for a locale.
func (e *ExportCache) SetLocale(ctx context.Context, locale string, tree map[string]any) error {
	return e.set(ctx, exportKey(locale), tree)
}

// GetAll returns the cached export tree covering every locale.
func (e *ExportCache) GetAll(ctx context.Context) (map[string]any, error) {
	return e.get(ctx, exportAllKey)
}

// SetAll stores the export tree covering every locale.
func (e *ExportCache) SetAll(ctx context.Context, tree map[string]any) error {
	return e.set(ctx, exportAllKey, tree)
}

// Invalidate drops all cached export trees. Called after any write that can
// change export output.
func (e *ExportCache) Invalidate(ctx context.Context) error {
	if err := e.cache.Clear(ctx); err != nil && !errors.Is(err, ErrCacheClosed) {
		return fmt.Errorf("invalidate export cache: %w", err)
	}
	return nil
}

func (e *ExportCache) get(ctx context.Context, key string) (map[string]any, error) {
	data, err := e.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		// Corrupt entry; treat as a miss after dropping it.
		_ = e.cache.Delete(ctx, key)
		return nil, ErrCacheMiss
	}
	return tree, nil
}

func (e *ExportCache) set(ctx context.Context, key string, tree map[string]any) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("marshal export tree: %w", err)
	}
	return e.cache.Set(ctx, key, data, e.ttl)
}
