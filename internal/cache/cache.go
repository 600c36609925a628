// Package cache provides a short-lived in-memory store for API responses.
package cache

import (
	"net/url"
	"sync"
	"time"
)

// DefaultTTL is how long a response stays fresh.
const DefaultTTL = 5 * time.Minute

type entry struct {
	payload []byte
	stored  time.Time
}

// Cache maps serialized request parameters to raw response payloads.
// Entries are never evicted; an expired entry is treated as absent and
// overwritten by the next Set for the same key.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache whose entries stay valid for ttl.
// A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives a stable cache key from request parameters.
func Key(params url.Values) string {
	return params.Encode()
}

// Get returns the payload stored under key if it is younger than the TTL.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.stored) >= c.ttl {
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key, replacing any previous entry.
func (c *Cache) Set(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		payload: payload,
		stored:  c.now(),
	}
}

// Len reports the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
