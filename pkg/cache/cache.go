// Package cache provides content-addressed caching for the layout and
// render pipeline.
//
// Layouts and rendered artifacts are pure functions of their inputs, so
// caching is a correctness-neutral optimization: a [Keyer] derives keys
// from content hashes plus the options that influenced the computation,
// and a [Cache] backend stores the bytes. Three backends are provided:
// file (CLI default), Redis (server deployments) and null (disabled).
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default lifetime for cached pipeline results.
// Zero means no expiration.
const DefaultTTL = 7 * 24 * time.Hour

// Cache stores opaque bytes under string keys with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Used when caching is disabled and in tests.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get always reports a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
