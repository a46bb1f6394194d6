package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	temp      float64
	expiresAt time.Time
}

// MemoryCache is the in-process fallback used when redis is not configured.
// Entries expire by TTL and are dropped on access, so the table stays
// bounded by the working set of (city, date) keys.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	ttl  time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
	}
}

func (c *MemoryCache) GetTemperature(_ context.Context, key string) (float64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.data[key]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.data, key)
		return 0, false, nil
	}
	return entry.temp, true, nil
}

func (c *MemoryCache) SetTemperature(_ context.Context, key string, temp float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = memoryEntry{temp: temp, expiresAt: time.Now().Add(c.ttl)}
	return nil
}
