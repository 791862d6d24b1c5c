// ABOUTME: Cache interface for the process-wide aggregator caches
// ABOUTME: Values are JSON-serialized; keys are namespaced as prefix:key

package interfaces

import (
	"errors"
	"time"
)

// ErrCacheMiss is the error returned when a key is not found in the cache.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the interface that defines the methods for a cache implementation.
type Cache interface {
	// Set stores a value under prefix:key with the given expiration.
	// A zero expiration means the entry never expires.
	Set(prefix string, key string, value interface{}, expiration time.Duration) error

	// Get retrieves the value stored under prefix:key into dest.
	// Returns ErrCacheMiss when the key is absent or expired.
	Get(prefix string, key string, dest interface{}) error

	// Delete removes the entry stored under prefix:key.
	Delete(prefix string, key string) error

	// Count returns the number of items in the cache.
	Count() (int64, error)
}
