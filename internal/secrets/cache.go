package secrets

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL mirrors the one-hour cache window used for the HMAC key.
const DefaultCacheTTL = time.Hour

type cacheEntry struct {
	value   string
	expires time.Time
}

// Cached wraps a Provider with a per-name TTL cache. Entries are refreshed
// only on expiry; secrets are assumed to be rotated externally, never
// mutated in-process. Safe for concurrent use. A refresh may race between
// readers, which is harmless: redundant fetches return the same value.
type Cached struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type CachedOption func(*Cached)

// WithClock injects a clock, used by tests to advance time.
func WithClock(now func() time.Time) CachedOption {
	return func(c *Cached) { c.now = now }
}

func NewCached(inner Provider, ttl time.Duration, opts ...CachedOption) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Cached{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) Get(ctx context.Context, name string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[name]
	c.mu.RUnlock()

	if ok && c.now().Before(e.expires) {
		return e.value, nil
	}

	value, err := c.inner.Get(ctx, name)
	if err != nil {
		// Errors are never cached; the next call retries the store.
		return "", err
	}

	c.mu.Lock()
	c.entries[name] = cacheEntry{value: value, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return value, nil
}
