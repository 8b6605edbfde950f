package handler

import (
	"github.com/gin-gonic/gin"
	insightsapp "github.com/tokenestate/backend/internal/application/insights"
)

// InsightsHandler serves generated market commentary
type InsightsHandler struct {
	BaseHandler
	service *insightsapp.Service
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(service *insightsapp.Service) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// ForProperty godoc
// @ID           propertyInsights
// @Summary      Property insights
// @Description  Generated commentary on a listed property. Cached for the configured TTL.
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200 {object} APIResponse[insightsapp.InsightResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /insights/properties/{id} [get]
func (h *InsightsHandler) ForProperty(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.ForProperty(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ForMarket godoc
// @ID           marketInsights
// @Summary      Prediction market insights
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Market ID"
// @Success      200 {object} APIResponse[insightsapp.InsightResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /insights/markets/{id} [get]
func (h *InsightsHandler) ForMarket(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.ForMarket(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
