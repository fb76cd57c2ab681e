package session

import (
	"sync"
	"time"
)

// Clock supplies the current time. Injectable so cache expiry is
// testable without sleeping.
type Clock func() time.Time

// DefaultTTL is how long cached session context stays fresh.
const DefaultTTL = 10 * time.Minute

type entry struct {
	hints     *Hints
	expiresAt time.Time
}

// ContextCache holds session hints keyed by session ID with time-based
// expiry. It is an explicit object handed to whichever component needs
// it; there is no package-level instance.
type ContextCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   Clock
}

// NewContextCache builds a cache with the given TTL. A zero ttl uses
// DefaultTTL; a nil clock uses time.Now.
func NewContextCache(ttl time.Duration, clock Clock) *ContextCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &ContextCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Put stores hints under their session ID. Hints without a session ID
// are not cacheable and are ignored.
func (c *ContextCache) Put(hints *Hints) {
	if hints == nil || hints.SessionID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hints.SessionID] = entry{
		hints:     hints,
		expiresAt: c.clock().Add(c.ttl),
	}
}

// Get returns the cached hints for a session, or nil if absent or
// expired. Expired entries are dropped on read.
func (c *ContextCache) Get(sessionID string) *Hints {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[sessionID]
	if !ok {
		return nil
	}
	if c.clock().After(e.expiresAt) {
		delete(c.entries, sessionID)
		return nil
	}
	return e.hints
}

// Purge removes every expired entry and reports how many were dropped.
func (c *ContextCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	dropped := 0
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of entries, expired or not.
func (c *ContextCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
