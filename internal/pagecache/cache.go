// Package pagecache keeps rendered page fragments per route and user until
// they expire or their route is invalidated.
package pagecache

import (
	"sync"
	"time"
)

type key struct {
	route  string
	userID string
}

type entry struct {
	body      []byte
	expiresAt time.Time
}

// Cache is a TTL cache of rendered fragments keyed by route and user.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[key]entry
	// generations counts invalidations per route.
	generations map[string]uint64
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries:     make(map[key]entry),
		generations: make(map[string]uint64),
	}
}

// Get returns the fragment cached for route and userID, if it has not expired.
func (c *Cache) Get(route, userID string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key{route, userID}]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.body, true
}

// Set stores body for route and userID unconditionally. Renders that read
// data before storing should use Generation and SetIfGeneration instead.
func (c *Cache) Set(route, userID string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key{route, userID}] = entry{body: body, expiresAt: c.now().Add(c.ttl)}
}

// Generation returns the number of times route has been invalidated. Read it
// before loading the data a fragment is rendered from.
func (c *Cache) Generation(route string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[route]
}

// SetIfGeneration stores body only if route has not been invalidated since
// gen was read. A render that raced an invalidation may hold data older than
// the write that caused it, so it is dropped instead of cached.
func (c *Cache) SetIfGeneration(route, userID string, gen uint64, body []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[route] != gen {
		return false
	}
	c.entries[key{route, userID}] = entry{body: body, expiresAt: c.now().Add(c.ttl)}
	return true
}

// Invalidate drops every entry for route and returns how many were dropped.
func (c *Cache) Invalidate(route string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[route]++
	n := 0
	for k := range c.entries {
		if k.route == route {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Prune removes expired entries.
func (c *Cache) Prune() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
