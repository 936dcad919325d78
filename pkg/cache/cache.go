/*
Package cache provides a small in-memory TTL cache for memoizing upstream
responses.

Entries expire lazily: an expired entry stays in memory until its key is next
read, at which point it is deleted and reported as a miss. There is no
background sweep and no capacity bound. In local-only mode nothing on the
serving path writes to the cache; it is kept for the upstream proxy mode.
*/
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is used when Set is called with a non-positive ttl.
const DefaultTTL = time.Hour

type entry struct {
	value     any
	expiresAt time.Time
}

// TTL is a concurrency-safe TTL cache. Concurrent Sets on the same key
// resolve last-write-wins.
type TTL struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
}

// New creates a cache with the given default TTL. A non-positive defaultTTL
// falls back to DefaultTTL.
func New(defaultTTL time.Duration) *TTL {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &TTL{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the stored value if the entry exists and has not expired.
// Expired entries are deleted on read.
func (c *TTL) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another Set may have refreshed it.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, unconditionally replacing any existing entry.
// A non-positive ttl uses the cache's default.
func (c *TTL) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key if present.
func (c *TTL) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of resident entries, expired ones included.
func (c *TTL) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
