// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// PageCache caches rendered public pages keyed by request path. Content
// mutations call Invalidate with the affected paths; the next request
// re-renders from the store instead of serving the stale page.
type PageCache struct {
	backend Cache
}

// NewPageCache creates a PageCache over the given backend.
func NewPageCache(backend Cache) *PageCache {
	return &PageCache{backend: backend}
}

// Get returns the cached rendering of path, or ok=false on a miss.
func (p *PageCache) Get(ctx context.Context, path string) ([]byte, bool) {
	value, err := p.backend.Get(ctx, "page:"+path)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("page cache read failed", "path", path, "error", err)
		}
		return nil, false
	}
	return value, true
}

// Set stores the rendering of path with the backend's default TTL.
func (p *PageCache) Set(ctx context.Context, path string, body []byte) {
	if err := p.backend.Set(ctx, "page:"+path, body, 0); err != nil {
		slog.Warn("page cache write failed", "path", path, "error", err)
	}
}

// SetTTL stores the rendering of path with an explicit TTL.
func (p *PageCache) SetTTL(ctx context.Context, path string, body []byte, ttl time.Duration) {
	if err := p.backend.Set(ctx, "page:"+path, body, ttl); err != nil {
		slog.Warn("page cache write failed", "path", path, "error", err)
	}
}

// Invalidate marks the given paths stale. Invalidation is push-based:
// declared at write time, keyed by logical path.
func (p *PageCache) Invalidate(ctx context.Context, paths ...string) {
	for _, path := range paths {
		if err := p.backend.Delete(ctx, "page:"+path); err != nil {
			slog.Warn("page cache invalidation failed", "path", path, "error", err)
		}
	}
}

// InvalidateAll drops every cached page.
func (p *PageCache) InvalidateAll(ctx context.Context) {
	if err := p.backend.Clear(ctx); err != nil {
		slog.Warn("page cache clear failed", "error", err)
	}
}

// Close releases the backend.
func (p *PageCache) Close() error {
	return p.backend.Close()
}
