package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is a process-local Store
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore creates a store whose entries default to defaultTTL and are
// purged every cleanupInterval.
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// SetIfAbsent stores value only when key is missing and reports whether it did
func (m *MemoryStore) SetIfAbsent(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	return m.c.Add(key, value, ttl) == nil, nil
}

// Flush removes every entry
func (m *MemoryStore) Flush() { m.c.Flush() }

// Len returns the number of entries, including expired ones not yet purged
func (m *MemoryStore) Len() int { return m.c.ItemCount() }

var _ Store = (*MemoryStore)(nil)
