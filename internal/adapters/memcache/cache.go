// Package memcache is the in-process domain.Cache used when no Redis is configured.
package memcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"hotel_adlab/internal/adapters/observability"
)

const DefaultCapacity = 1024

// Cache keeps JSON-encoded values so callers never share memory with a cached value.
// Once full, the least recently used entry is evicted.
type Cache struct {
	items *ttlcache.Cache[string, []byte]
	unit  time.Duration // length of one ttlSec; tests shrink it
}

func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	items := ttlcache.New[string, []byte](
		ttlcache.WithCapacity[string, []byte](uint64(capacity)),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	return &Cache{items: items, unit: time.Second}
}

func (c *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	it := c.items.Get(key)
	if it == nil {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	if err := json.Unmarshal(it.Value(), dst); err != nil {
		c.items.Delete(key)
		return false, err
	}
	observability.ObserveCache("memory", "hit")
	return true, nil
}

// Set stores v; ttlSec <= 0 means no expiry.
func (c *Cache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ttl := ttlcache.NoTTL
	if ttlSec > 0 {
		ttl = time.Duration(ttlSec) * c.unit
	}
	c.items.Set(key, b, ttl)
	observability.ObserveCache("memory", "set")
	return nil
}

func (c *Cache) Del(_ context.Context, key string) error {
	c.items.Delete(key)
	observability.ObserveCache("memory", "del")
	return nil
}

// Sweep drops expired entries and reports how many went. The API calls it from its reaper loop.
func (c *Cache) Sweep() int {
	before := c.items.Len()
	c.items.DeleteExpired()
	return before - c.items.Len()
}

func (c *Cache) Len() int { return c.items.Len() }
