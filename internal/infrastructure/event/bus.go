// Package event carries domain events from application services to their
// consumers: the in-process bus, idempotent handler wrapping and the Kafka
// relay.
package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tokenestate/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus dispatches events synchronously to subscribed handlers.
// Handler failures are logged and never reach the publisher: the state
// change that produced the event is already committed.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	byType   map[string][]shared.EventHandler
	wildcard []shared.EventHandler

	logger    *zap.Logger
	running   atomic.Bool
	published atomic.Int64
	failed    atomic.Int64
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		byType: make(map[string][]shared.EventHandler),
		logger: logger,
	}
}

// Publish hands every event to the handlers subscribed to its type and to
// wildcard handlers, in subscription order.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.published.Add(1)
		for _, h := range b.handlersFor(evt.EventType()) {
			start := time.Now()
			if err := b.dispatch(ctx, h, evt); err != nil {
				b.failed.Add(1)
				b.logger.Error("Event handler failed",
					zap.String("event_type", evt.EventType()),
					zap.String("event_id", evt.EventID().String()),
					zap.String("handler", fmt.Sprintf("%T", h)),
					zap.Duration("elapsed", time.Since(start)),
					zap.Error(err))
			}
		}
	}
	return nil
}

// Subscribe registers handler for eventTypes, or for handler.EventTypes()
// when none are given. An empty set subscribes to every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(eventTypes) == 0 {
		b.wildcard = append(b.wildcard, handler)
	}
	for _, t := range eventTypes {
		b.byType[t] = append(b.byType[t], handler)
	}
	b.logger.Debug("Event handler subscribed",
		zap.String("handler", fmt.Sprintf("%T", handler)),
		zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wildcard = without(b.wildcard, handler)
	for t, hs := range b.byType {
		if hs = without(hs, handler); len(hs) == 0 {
			delete(b.byType, t)
		} else {
			b.byType[t] = hs
		}
	}
}

// Start marks the bus running
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("Event bus started")
	return nil
}

// Stop marks the bus stopped. Dispatch is synchronous so nothing is in flight
// once Publish has returned.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	b.logger.Info("Event bus stopped",
		zap.Int64("published", b.published.Load()),
		zap.Int64("handler_failures", b.failed.Load()))
	return nil
}

// Stats returns the number of events published and handler failures
func (b *InMemoryEventBus) Stats() (published, failed int64) {
	return b.published.Load(), b.failed.Load()
}

func (b *InMemoryEventBus) handlersFor(eventType string) []shared.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	typed := b.byType[eventType]
	out := make([]shared.EventHandler, 0, len(typed)+len(b.wildcard))
	out = append(out, typed...)
	return append(out, b.wildcard...)
}

// dispatch turns a handler panic into an error
func (b *InMemoryEventBus) dispatch(ctx context.Context, h shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, evt)
}

func without(hs []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	out := hs[:0:0]
	for _, h := range hs {
		if h != target {
			out = append(out, h)
		}
	}
	return out
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
