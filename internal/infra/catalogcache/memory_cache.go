package catalogcache

import (
	"context"
	"sync"
	"time"

	"github.com/edudigital/portal/internal/domain/catalog"
)

type cachedValue struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache keeps section responses in process memory.
type MemoryCache struct {
	mu     sync.RWMutex
	values map[string]cachedValue
	now    func() time.Time
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: make(map[string]cachedValue), now: time.Now}
}

// Get implements catalog.Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	value, ok := c.values[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.expired(value.expiresAt) {
		c.mu.Lock()
		delete(c.values, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(value.payload))
	copy(out, value.payload)
	return out, true, nil
}

// Set implements catalog.Cache. A non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	payload := make([]byte, len(value))
	copy(payload, value)
	c.mu.Lock()
	c.values[key] = cachedValue{payload: payload, expiresAt: exp}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(c.now())
}

var _ catalog.Cache = (*MemoryCache)(nil)
