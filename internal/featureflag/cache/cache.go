// Package cache provides the feature flag definition cache used by the evaluator.
//
// Entries are keyed by flag key only. A nil flag is a valid entry and records that
// the key is not defined, so repeated lookups of an unknown flag stay cheap.
// There is no invalidation on write: callers use Clear after editing flags.
package cache

import (
	"sync"
	"time"

	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// DefaultTTL is how long a flag definition is served from memory.
const DefaultTTL = 60 * time.Second

// Cache stores flag definitions by key.
type Cache interface {
	// Get returns the cached flag for key. found is false on a miss or an expired
	// entry; a found entry may carry a nil flag meaning "not defined".
	Get(key string) (flag *featureFlagDomain.FeatureFlag, found bool)

	// Set stores flag (possibly nil) for key.
	Set(key string, flag *featureFlagDomain.FeatureFlag)

	// Clear drops every entry.
	Clear()
}

type entry struct {
	flag      *featureFlagDomain.FeatureFlag
	expiresAt time.Time
}

// MemoryCache is a process-local TTL cache. Concurrent misses on the same key may
// both refetch; the results are identical so no per-key serialization is done.
//
// Expired entries are dropped when read, and Set sweeps the whole map at most once
// per ttl, so the map only holds keys written within the last two ttl windows.
type MemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryCache creates a MemoryCache. A non-positive ttl falls back to DefaultTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements Cache.
func (c *MemoryCache) Get(key string) (*featureFlagDomain.FeatureFlag, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if now := c.now(); !now.Before(e.expiresAt) {
		c.mu.Lock()
		// Another goroutine may have refreshed the key since the read lock was released.
		if current, stillThere := c.entries[key]; stillThere && !now.Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.flag, true
}

// Set implements Cache.
func (c *MemoryCache) Set(key string, flag *featureFlagDomain.FeatureFlag) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.lastSweep) >= c.ttl {
		c.sweepLocked(now)
	}
	c.entries[key] = entry{flag: flag, expiresAt: now.Add(c.ttl)}
}

// sweepLocked removes every expired entry. The caller holds the write lock.
func (c *MemoryCache) sweepLocked(now time.Time) {
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.lastSweep = now
}

// Clear implements Cache.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// NoOpCache never stores anything, forcing a lookup on every call.
type NoOpCache struct{}

// NewNoOpCache creates a cache that is always empty.
func NewNoOpCache() Cache {
	return NoOpCache{}
}

// Get always misses.
func (NoOpCache) Get(string) (*featureFlagDomain.FeatureFlag, bool) { return nil, false }

// Set discards the value.
func (NoOpCache) Set(string, *featureFlagDomain.FeatureFlag) {}

// Clear does nothing.
func (NoOpCache) Clear() {}
