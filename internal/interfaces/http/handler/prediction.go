package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	predictionapp "github.com/tokenestate/backend/internal/application/prediction"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
)

// PredictionHandler serves prediction markets and stakes
type PredictionHandler struct {
	BaseHandler
	service *predictionapp.Service
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(service *predictionapp.Service) *PredictionHandler {
	return &PredictionHandler{service: service}
}

// CreateMarketRequest opens a market
type CreateMarketRequest struct {
	Question   string    `json:"question" binding:"required,min=10,max=500"`
	PropertyID string    `json:"property_id" binding:"omitempty,uuid"`
	ClosesAt   time.Time `json:"closes_at" binding:"required"`
}

// PlaceStakeRequest takes a position on a market
type PlaceStakeRequest struct {
	Side   string          `json:"side" binding:"required,oneof=YES NO"`
	Amount decimal.Decimal `json:"amount" binding:"dpositive"`
}

// ResolveMarketRequest settles a market
type ResolveMarketRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=YES NO"`
}

// ListMarketsQuery filters markets
type ListMarketsQuery struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=OPEN CLOSED RESOLVED CANCELLED"`
}

// CreateMarket godoc
// @ID           createMarketPrediction
// @Summary      Create market
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateMarketRequest true "Market"
// @Success      201 {object} APIResponse[predictionapp.MarketResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /predictions/markets [post]
func (h *PredictionHandler) CreateMarket(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req CreateMarketRequest
	if !h.BindJSON(c, &req) {
		return
	}
	var propertyID *uuid.UUID
	if req.PropertyID != "" {
		id := uuid.MustParse(req.PropertyID)
		propertyID = &id
	}
	resp, err := h.service.CreateMarket(c.Request.Context(), predictionapp.CreateMarketInput{
		Question:   req.Question,
		PropertyID: propertyID,
		ClosesAt:   req.ClosesAt,
		CreatedBy:  userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetMarket godoc
// @ID           getMarketPrediction
// @Summary      Get market
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Market ID"
// @Success      200 {object} APIResponse[predictionapp.MarketResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /predictions/markets/{id} [get]
func (h *PredictionHandler) GetMarket(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetMarket(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMarkets godoc
// @ID           listMarketsPrediction
// @Summary      List markets
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        status query string false "Status"
// @Param        property_id query string false "Property"
// @Success      200 {object} APIResponse[[]predictionapp.MarketResponse]
// @Router       /predictions/markets [get]
func (h *PredictionHandler) ListMarkets(c *gin.Context) {
	var q ListMarketsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize()
	propertyID, ok := h.QueryUUID(c, "property_id")
	if !ok {
		return
	}
	page, err := h.service.ListMarkets(c.Request.Context(), predictionapp.ListMarketsInput{
		Page:       q.Page,
		PageSize:   q.PageSize,
		PropertyID: propertyID,
		Status:     q.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// MarketPositions godoc
// @ID           marketPositionsPrediction
// @Summary      Market positions
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Market ID"
// @Success      200 {object} APIResponse[[]predictionapp.PositionResponse]
// @Router       /predictions/markets/{id}/positions [get]
func (h *PredictionHandler) MarketPositions(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.MarketPositions(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MyPositions godoc
// @ID           myPositionsPrediction
// @Summary      Own positions
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[[]predictionapp.PositionResponse]
// @Router       /predictions/positions [get]
func (h *PredictionHandler) MyPositions(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	resp, err := h.service.InvestorPositions(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PlaceStake godoc
// @ID           placeStakePrediction
// @Summary      Place stake
// @Description  Stakes an amount on YES or NO while the market is open
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Market ID"
// @Param        request body PlaceStakeRequest true "Side and amount"
// @Success      201 {object} APIResponse[predictionapp.PositionResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /predictions/markets/{id}/stakes [post]
func (h *PredictionHandler) PlaceStake(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req PlaceStakeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.PlaceStake(c.Request.Context(), predictionapp.PlaceStakeInput{
		MarketID:   id,
		InvestorID: userID,
		Side:       req.Side,
		Amount:     req.Amount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CloseMarket godoc
// @ID           closeMarketPrediction
// @Summary      Close market
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Market ID"
// @Success      200 {object} APIResponse[predictionapp.MarketResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /predictions/markets/{id}/close [post]
func (h *PredictionHandler) CloseMarket(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.CloseMarket(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Resolve godoc
// @ID           resolveMarketPrediction
// @Summary      Resolve market
// @Description  Settles the market and pays winners parimutuel. Stakes are refunded when nobody picked the outcome.
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Market ID"
// @Param        request body ResolveMarketRequest true "Outcome"
// @Success      200 {object} APIResponse[predictionapp.SettlementResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /predictions/markets/{id}/resolve [post]
func (h *PredictionHandler) Resolve(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req ResolveMarketRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.Resolve(c.Request.Context(), id, req.Outcome)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel godoc
// @ID           cancelMarketPrediction
// @Summary      Cancel market
// @Description  Cancels the market and refunds every stake
// @Tags         predictions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Market ID"
// @Success      200 {object} APIResponse[predictionapp.SettlementResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /predictions/markets/{id}/cancel [post]
func (h *PredictionHandler) Cancel(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
