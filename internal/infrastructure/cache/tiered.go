package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultInvalidationChannel is the Pub/Sub channel used to drop L1 entries
// on every instance when a key is deleted.
const DefaultInvalidationChannel = "tokenestate:cache:invalidate"

// TieredStore reads through a local L1 to a shared L2 and writes both.
// Deletes are broadcast over Redis Pub/Sub so other instances drop their
// L1 copy instead of serving it until its TTL runs out.
type TieredStore struct {
	l1      *MemoryStore
	l2      Store
	l1TTL   time.Duration
	pubsub  redis.UniversalClient
	channel string
	logger  *zap.Logger

	l1Hits   atomic.Int64
	l2Hits   atomic.Int64
	misses   atomic.Int64
	l2Errors atomic.Int64
}

// TieredOption configures a TieredStore
type TieredOption func(*TieredStore)

// WithL1TTL caps how long entries live in L1
func WithL1TTL(ttl time.Duration) TieredOption {
	return func(t *TieredStore) { t.l1TTL = ttl }
}

// WithInvalidation broadcasts deletes on the given client and channel
func WithInvalidation(client redis.UniversalClient, channel string) TieredOption {
	return func(t *TieredStore) {
		t.pubsub = client
		if channel != "" {
			t.channel = channel
		}
	}
}

// WithTieredLogger sets the logger
func WithTieredLogger(l *zap.Logger) TieredOption {
	return func(t *TieredStore) { t.logger = l }
}

// NewTieredStore combines l1 and l2. A nil l2 degrades to L1 only.
func NewTieredStore(l1 *MemoryStore, l2 Store, opts ...TieredOption) *TieredStore {
	t := &TieredStore{
		l1:      l1,
		l2:      l2,
		l1TTL:   time.Minute,
		channel: DefaultInvalidationChannel,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Get tries L1 then L2, back-filling L1 on an L2 hit. L2 errors are logged
// and reported as a miss so the caller can recompute.
func (t *TieredStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok, _ := t.l1.Get(ctx, key); ok {
		t.l1Hits.Add(1)
		return v, true, nil
	}
	if t.l2 != nil {
		v, ok, err := t.l2.Get(ctx, key)
		if err != nil {
			t.l2Errors.Add(1)
			t.logger.Warn("L2 cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			t.l2Hits.Add(1)
			_ = t.l1.Set(ctx, key, v, t.l1TTL)
			return v, true, nil
		}
	}
	t.misses.Add(1)
	return nil, false, nil
}

// Set writes L2 first, then L1
func (t *TieredStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if t.l2 != nil {
		if err := t.l2.Set(ctx, key, value, ttl); err != nil {
			t.l2Errors.Add(1)
			t.logger.Warn("L2 cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	l1TTL := t.l1TTL
	if ttl > 0 && ttl < l1TTL {
		l1TTL = ttl
	}
	return t.l1.Set(ctx, key, value, l1TTL)
}

// Delete removes the key from both tiers and notifies other instances
func (t *TieredStore) Delete(ctx context.Context, key string) error {
	_ = t.l1.Delete(ctx, key)
	if t.l2 != nil {
		if err := t.l2.Delete(ctx, key); err != nil {
			return err
		}
	}
	if t.pubsub != nil {
		if err := t.pubsub.Publish(ctx, t.channel, key).Err(); err != nil {
			t.logger.Warn("Failed to publish cache invalidation", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// ListenInvalidations drops L1 entries named on the invalidation channel
// until ctx is done. It blocks; run it in a goroutine.
func (t *TieredStore) ListenInvalidations(ctx context.Context) error {
	if t.pubsub == nil {
		return nil
	}
	sub := t.pubsub.Subscribe(ctx, t.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			_ = t.l1.Delete(ctx, msg.Payload)
			t.logger.Debug("Dropped L1 cache entry", zap.String("key", msg.Payload))
		}
	}
}

// Stats reports hit counters
type Stats struct {
	L1Hits   int64 `json:"l1_hits"`
	L2Hits   int64 `json:"l2_hits"`
	Misses   int64 `json:"misses"`
	L2Errors int64 `json:"l2_errors"`
}

// Stats returns a snapshot of the hit counters
func (t *TieredStore) Stats() Stats {
	return Stats{
		L1Hits:   t.l1Hits.Load(),
		L2Hits:   t.l2Hits.Load(),
		Misses:   t.misses.Load(),
		L2Errors: t.l2Errors.Load(),
	}
}

var _ Store = (*TieredStore)(nil)
