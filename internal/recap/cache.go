package recap

import (
	"sync"
	"time"

	"github.com/vukan322/ghrecap/internal/core"
)

type cacheEntry struct {
	stats    core.YearStats
	warnings []string
	expires  time.Time
}

// ttlCache is a concurrency-safe read-through cache for unauthenticated REST
// responses. Entries carry their own expiry and staleness is checked at read
// time; there is no background eviction. The clock is injected so tests can
// control time.
type ttlCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func newTTLCache(ttl time.Duration, now func() time.Time) *ttlCache {
	return &ttlCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *ttlCache) get(key string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !entry.expires.After(c.now()) {
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *ttlCache) set(key string, stats core.YearStats, warnings []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		stats:    stats,
		warnings: warnings,
		expires:  c.now().Add(c.ttl),
	}
}
