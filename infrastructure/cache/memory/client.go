// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Values are JSON-serialized so cached payloads round-trip like any other store

package memory

import (
	"encoding/json"
	"time"

	"daysgrimm-api/core/interfaces"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements the Cache interface using the go-cache library.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache. defaultExpiration applies to
// entries stored with a zero TTL; cleanupInterval controls how often expired
// entries are purged.
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

// Set stores a value in the cache under prefix:key with the given expiration
func (c *MemoryCache) Set(prefix string, key string, value interface{}, expiration time.Duration) error {
	valBytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.cache.Set(prefix+":"+key, valBytes, expiration)
	return nil
}

// Get retrieves a value from the cache into dest.
// Returns interfaces.ErrCacheMiss when the key is absent or expired.
func (c *MemoryCache) Get(prefix string, key string, dest interface{}) error {
	val, found := c.cache.Get(prefix + ":" + key)
	if !found {
		return interfaces.ErrCacheMiss
	}

	valBytes, ok := val.([]byte)
	if !ok {
		return interfaces.ErrCacheMiss
	}

	return json.Unmarshal(valBytes, dest)
}

// Delete removes the entry stored under prefix:key
func (c *MemoryCache) Delete(prefix string, key string) error {
	c.cache.Delete(prefix + ":" + key)
	return nil
}

// Count returns the number of items in the cache
func (c *MemoryCache) Count() (int64, error) {
	return int64(c.cache.ItemCount()), nil
}
