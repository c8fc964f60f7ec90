// Package cache stores computed layouts and rendered artifacts between runs.
//
// Layout placement is deterministic: the same center, sizes, count and
// spiral parameters always produce the same rectangles. The pipeline keys
// cached results by a hash of exactly those inputs, so a hit is
// indistinguishable from a fresh computation.
//
// # Implementations
//
//   - [FileCache]: one file per entry under a directory, used by the CLI
//     (~/.cache/tagscloud)
//   - [RedisCache]: a shared Redis instance, for several machines or a
//     long-running server
//   - [NullCache]: never stores anything; the default when caching is off
//
// # Keys
//
// Use [LayoutKey] and [ArtifactKey] to build keys:
//
//	key := cache.LayoutKey(cache.LayoutKeyOpts{Center: [2]int{250, 250}, ...})
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    // use data
//	}
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. The second result is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
