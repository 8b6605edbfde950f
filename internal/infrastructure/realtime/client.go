package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	viewer Viewer
	topics map[string]bool
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func newClient(h *Hub, conn *websocket.Conn, viewer Viewer, topics []string) *client {
	set := make(map[string]bool, len(topics))
	for _, t := range topics {
		set[t] = true
	}
	return &client{
		id:     uuid.New().String(),
		hub:    h,
		conn:   conn,
		viewer: viewer,
		topics: set,
		send:   make(chan []byte, h.buffer),
		done:   make(chan struct{}),
	}
}

func (c *client) wants(change Change) bool {
	return c.topics[change.Table] && c.viewer.canSee(change)
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// readPump only drains control frames; clients never send data.
func (c *client) readPump() {
	defer c.hub.remove(c, false)

	pongWait := c.hub.pingPeriod * 10 / 9
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("Realtime client read error", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		c.hub.logger.Info("Realtime client disconnected", zap.String("client_id", c.id))
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.remove(c, false)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.remove(c, false)
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
