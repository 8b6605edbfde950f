package event

import (
	"context"
	"fmt"
	"time"

	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// DefaultIdempotencyTTL is how long a processed event id is remembered
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotentHandler runs the wrapped handler at most once per event id.
// The claim is taken before handling and kept on failure, so a failing
// event is not retried until the claim expires.
type IdempotentHandler struct {
	name    string
	handler shared.EventHandler
	claims  cache.Claimer
	ttl     time.Duration
	logger  *zap.Logger
}

// NewIdempotentHandler wraps handler. name scopes the claim keys so two
// handlers can each process the same event once.
func NewIdempotentHandler(name string, handler shared.EventHandler, claims cache.Claimer, ttl time.Duration, logger *zap.Logger) *IdempotentHandler {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdempotentHandler{name: name, handler: handler, claims: claims, ttl: ttl, logger: logger}
}

// EventTypes returns the wrapped handler's event types
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle claims the event id and runs the wrapped handler when the claim is new
func (h *IdempotentHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	key := fmt.Sprintf("event:processed:%s:%s", h.name, evt.EventID())
	fresh, err := h.claims.SetIfAbsent(ctx, key, []byte(evt.EventType()), h.ttl)
	switch {
	case err != nil:
		// a lost claim store must not drop events
		h.logger.Warn("Idempotency check failed, handling anyway",
			zap.String("event_id", evt.EventID().String()),
			zap.Error(err))
	case !fresh:
		h.logger.Debug("Duplicate event skipped",
			zap.String("handler", h.name),
			zap.String("event_id", evt.EventID().String()))
		return nil
	}
	return h.handler.Handle(ctx, evt)
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
