// Package cache provides the byte caches used for the fee schedule and
// generated insights: an in-process store, a Redis store and a two-tier
// combination of both.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is a key/value cache with per-entry TTL
type Store interface {
	// Get returns the value and whether it was found
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Claimer stores a key only when it is not already present. It backs
// once-only processing such as idempotent event handlers.
type Claimer interface {
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}

var (
	_ Claimer = (*MemoryStore)(nil)
	_ Claimer = (*RedisStore)(nil)
)

// GetJSON decodes a cached JSON value into dst and reports whether it was found
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// a value we cannot decode is treated as a miss and dropped
		_ = s.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v as JSON and stores it
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache value %q: %w", key, err)
	}
	return s.Set(ctx, key, raw, ttl)
}
