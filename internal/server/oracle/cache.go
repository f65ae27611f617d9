package oracle

import (
	"fmt"
	"sync"
	"time"
)

// Cache stores oracle replies that are deliberately reused, such as the one
// mirror scenario generated per class per day. Keys carry their own period
// (see DailyKey), so entries expire by key rollover rather than eviction.
// The interface exists so a distributed cache can replace the in-memory map
// without changing call sites.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryCache is a concurrency-safe in-process Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *MemoryCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// DailyKey builds a cache key scoped to a class and a calendar day, so the
// cached value naturally rolls over at midnight.
func DailyKey(class string, now time.Time) string {
	return fmt.Sprintf("%s|%s", class, now.Format("2006-01-02"))
}
