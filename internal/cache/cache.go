// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the rendered-page cache for the public site.
// Staleness is declared at write time: content mutations invalidate the
// affected paths, they do not wait for a TTL.
package cache

import (
	"context"
	"time"
)

// Cache is the byte-value cache backend. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the cached value or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL; a zero TTL uses the default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
