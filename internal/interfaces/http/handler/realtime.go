package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/infrastructure/realtime"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RealtimeHandler upgrades clients onto the realtime change feed
type RealtimeHandler struct {
	BaseHandler
	hub *realtime.Hub
}

// NewRealtimeHandler creates a new realtime handler
func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Subscribe godoc
// @ID           subscribeRealtime
// @Summary      Subscribe to table changes
// @Description  Upgrades to a websocket that streams {table, type, record_id, occurred_at} messages for the requested topics. Investors only receive changes of their own investments, redemptions and positions.
// @Tags         realtime
// @Security     BearerAuth
// @Param        topics query string true "Comma separated tables, e.g. properties,redemptions"
// @Param        access_token query string false "Access token for clients that cannot send the Authorization header"
// @Success      101
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /realtime [get]
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	topics, unknown := realtime.ParseTopics(c.Query("topics"))
	if len(unknown) > 0 {
		h.BadRequest(c, "Unknown topics: "+strings.Join(unknown, ", "))
		return
	}
	if len(topics) == 0 {
		h.BadRequest(c, "At least one topic is required")
		return
	}

	viewer := realtime.Viewer{UserID: userID, Admin: h.IsAdmin(c)}
	if err := h.hub.ServeWS(c.Writer, c.Request, viewer, topics); err != nil {
		if errors.Is(err, realtime.ErrTooManyClients) {
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Too many realtime connections")
			return
		}
		// The upgrader has already answered the client
		logger.GetGinLogger(c).Debug("Realtime upgrade failed", zap.Error(err))
	}
}
