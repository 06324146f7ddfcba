package license

import (
	"sync"
	"time"
)

// cacheEntry is one memoized validation outcome.
type cacheEntry struct {
	state        State
	monthOrdinal int
	cachedAt     time.Time
}

// resultCache memoizes validation outcomes for (namespace, raw key) pairs.
// An outcome only holds within the calendar month it was computed for, so
// entries are keyed by month ordinal instead of a TTL sweep; stale months
// fall out on lookup or eviction.
type resultCache struct {
	mu        sync.Mutex
	entries   map[string]cacheEntry
	maxSize   int
	hitCount  int64
	missCount int64
}

func newResultCache(maxSize int) *resultCache {
	return &resultCache{
		entries: make(map[string]cacheEntry),
		maxSize: maxSize,
	}
}

func cacheKey(namespace, rawKey string) string {
	return namespace + "\x00" + rawKey
}

// get returns the memoized state when one exists for the same month.
func (c *resultCache) get(namespace, rawKey string, monthOrdinal int) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(namespace, rawKey)
	entry, ok := c.entries[key]
	if !ok || entry.monthOrdinal != monthOrdinal {
		if ok {
			delete(c.entries, key)
		}
		c.missCount++
		return "", false
	}
	c.hitCount++
	return entry.state, true
}

// put stores an outcome, evicting the oldest entry when full.
func (c *resultCache) put(namespace, rawKey string, monthOrdinal int, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize <= 0 {
		return
	}
	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[cacheKey(namespace, rawKey)] = cacheEntry{
		state:        state,
		monthOrdinal: monthOrdinal,
		cachedAt:     time.Now(),
	}
}

// Stats returns cache statistics for reporting and tests.
func (c *resultCache) Stats() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hitCount + c.missCount
	ratio := float64(0)
	if total > 0 {
		ratio = float64(c.hitCount) / float64(total)
	}
	return map[string]interface{}{
		"entries":    len(c.entries),
		"max_size":   c.maxSize,
		"hit_count":  c.hitCount,
		"miss_count": c.missCount,
		"hit_ratio":  ratio,
	}
}

func (c *resultCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.cachedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.cachedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
