// Package cache stores pipeline artifacts: loaded source tables and
// rendered charts.
//
// Three backends implement [Cache]:
//
//   - [FileCache] for the CLI, under the user's cache directory
//   - [RedisCache] for render servers sharing one cache
//   - [NullCache] when caching is disabled
//
// Keys are built by a [Keyer] so that every entry point derives the same key
// for the same inputs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and whether it was found. A missing or expired
	// entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// TTLData bounds how stale a cached source table may be. Live sources
	// (Prometheus, Mongo) change under the cache, so this is short.
	TTLData = 5 * time.Minute
	// TTLArtifact applies to rendered output, keyed by its full inputs.
	TTLArtifact = 24 * time.Hour
	// TTLHTTP applies to raw HTTP responses.
	TTLHTTP = time.Minute
)
