// Package cache stores computed solve results between runs.
//
// A [Cache] is a small byte-oriented key/value interface with per-entry
// expiry. The CLI uses a [FileCache] under the user cache directory and
// swaps in a [NullCache] for --no-cache. Keys come from a [Keyer], which
// hashes the network and every option that affects the answer.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized results.
type Cache interface {
	// Get returns the stored bytes and true on a hit. Expired or corrupt
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// DefaultTTL is how long solve results stay cached.
const DefaultTTL = 7 * 24 * time.Hour
