// Package realtime pushes table-change notifications to websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tokenestate/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

// ErrTooManyClients is returned when the hub is at capacity
var ErrTooManyClients = errors.New("realtime: maximum number of clients reached")

// Viewer identifies who is subscribing
type Viewer struct {
	UserID uuid.UUID
	Admin  bool
}

func (v Viewer) canSee(c Change) bool {
	return !c.Private() || v.Admin || v.UserID == c.owner
}

// Stats is a snapshot of hub activity
type Stats struct {
	Clients   int   `json:"clients"`
	Delivered int64 `json:"delivered"`
	Dropped   int64 `json:"dropped"`
}

// Hub fans domain events out to websocket subscribers. It is registered on
// the event bus as a wildcard handler.
type Hub struct {
	logger     *zap.Logger
	upgrader   websocket.Upgrader
	buffer     int
	pingPeriod time.Duration
	maxClients int

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool

	delivered atomic.Int64
	dropped   atomic.Int64
}

// Option configures a Hub
type Option func(*Hub)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithBuffer sets the per-client send buffer. A client whose buffer fills
// up is disconnected.
func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithPingInterval sets how often clients are pinged
func WithPingInterval(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.pingPeriod = d
		}
	}
}

// WithMaxClients caps concurrent connections, 0 means unlimited
func WithMaxClients(n int) Option {
	return func(h *Hub) { h.maxClients = n }
}

// WithCheckOrigin overrides the upgrader origin check
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(h *Hub) { h.upgrader.CheckOrigin = fn }
}

// NewHub creates a hub
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		logger:     zap.NewNop(),
		buffer:     64,
		pingPeriod: 30 * time.Second,
		maxClients: 10000,
		clients:    make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes returns nil so the hub receives every event
func (h *Hub) EventTypes() []string { return nil }

// Handle implements shared.EventHandler
func (h *Hub) Handle(_ context.Context, event shared.DomainEvent) error {
	change, ok := ChangeFromEvent(event)
	if !ok {
		return nil
	}
	h.Broadcast(change)
	return nil
}

// Broadcast delivers a change to every subscriber allowed to see it
func (h *Hub) Broadcast(change Change) {
	data, err := json.Marshal(change)
	if err != nil {
		h.logger.Error("Failed to marshal realtime change", zap.Error(err))
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		if !c.wants(change) {
			continue
		}
		select {
		case c.send <- data:
			h.delivered.Add(1)
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow realtime client",
			zap.String("client_id", c.id),
			zap.String("user_id", c.viewer.UserID.String()))
		h.remove(c, true)
	}
}

// ServeWS upgrades the request and streams changes for topics until the
// client goes away. Topic and capacity errors are returned before anything
// is written so the caller can render its own error body.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, viewer Viewer, topics []string) error {
	if len(topics) == 0 {
		return errors.New("realtime: at least one topic is required")
	}
	if err := h.reserve(); err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := newClient(h, conn, viewer, topics)
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("Realtime client connected",
		zap.String("client_id", c.id),
		zap.String("user_id", viewer.UserID.String()),
		zap.Strings("topics", topics))

	go c.writePump()
	c.readPump()
	return nil
}

// Stats returns a snapshot of hub activity
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Stats{Clients: len(h.clients), Delivered: h.delivered.Load(), Dropped: h.dropped.Load()}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	return h.Stats().Clients
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.remove(c, false)
	}
	h.logger.Info("Realtime hub closed", zap.Int("clients", len(clients)))
}

// reserve checks capacity before the upgrade; concurrent upgrades may
// overshoot the limit slightly.
func (h *Hub) reserve() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return errors.New("realtime: hub is closed")
	}
	if h.maxClients > 0 && len(h.clients) >= h.maxClients {
		return ErrTooManyClients
	}
	return nil
}

func (h *Hub) remove(c *client, slow bool) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	if slow {
		h.dropped.Add(1)
	}
	h.mu.Unlock()
	c.close()
}
