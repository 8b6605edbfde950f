package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	liquidityapp "github.com/tokenestate/backend/internal/application/liquidity"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
)

// LiquidityHandler serves the fee schedule, payout calculator and
// redemption workflow
type LiquidityHandler struct {
	BaseHandler
	service *liquidityapp.Service
}

// NewLiquidityHandler creates a new liquidity handler
func NewLiquidityHandler(service *liquidityapp.Service) *LiquidityHandler {
	return &LiquidityHandler{service: service}
}

// ReplaceFeeTiersRequest replaces the whole fee schedule
type ReplaceFeeTiersRequest struct {
	Tiers []liquidityapp.FeeTierDTO `json:"tiers" binding:"required,min=1,max=20,dive"`
}

// QuoteRequest is a payout calculator request
type QuoteRequest struct {
	Tokens        int64           `json:"tokens"`
	TokenValue    decimal.Decimal `json:"token_value"`
	HoldingMonths int             `json:"holding_months"`
}

// CreateRedemptionRequest opens a redemption against one investment
type CreateRedemptionRequest struct {
	InvestmentID string `json:"investment_id" binding:"required,uuid"`
	Tokens       int64  `json:"tokens" binding:"required,min=1"`
	Notes        string `json:"notes" binding:"max=500"`
}

// RejectRequest carries the reviewer's reason
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// MarkPaidRequest carries the payment reference
type MarkPaidRequest struct {
	Reference string `json:"reference" binding:"required,min=1,max=100"`
}

// ListRedemptionsQuery filters the redemption list
type ListRedemptionsQuery struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED PAID"`
}

// GetFeeTiers godoc
// @ID           getFeeTiersLiquidity
// @Summary      Fee schedule
// @Description  Returns the redemption fee tiers in effect and whether they come from the database or config defaults
// @Tags         liquidity
// @Produce      json
// @Success      200 {object} APIResponse[liquidityapp.FeeScheduleResponse]
// @Router       /liquidity/fee-tiers [get]
func (h *LiquidityHandler) GetFeeTiers(c *gin.Context) {
	resp, err := h.service.GetFeeTiers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReplaceFeeTiers godoc
// @ID           replaceFeeTiersLiquidity
// @Summary      Replace fee schedule
// @Description  Replaces every fee tier. A schedule that leaves gaps is accepted and reported with covers=false; unmatched holding ages fall back to the last tier.
// @Tags         liquidity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ReplaceFeeTiersRequest true "New schedule"
// @Success      200 {object} APIResponse[liquidityapp.FeeScheduleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /liquidity/fee-tiers [put]
func (h *LiquidityHandler) ReplaceFeeTiers(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req ReplaceFeeTiersRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.ReplaceFeeTiers(c.Request.Context(), liquidityapp.ReplaceFeeTiersInput{
		Tiers:     req.Tiers,
		UpdatedBy: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Quote godoc
// @ID           quoteLiquidity
// @Summary      Payout calculator
// @Description  Computes gross value, fee and net payout for redeeming tokens held for a number of months
// @Tags         liquidity
// @Accept       json
// @Produce      json
// @Param        request body QuoteRequest true "Tokens, token value and holding months"
// @Success      200 {object} APIResponse[liquidityapp.QuoteResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /liquidity/quote [post]
func (h *LiquidityHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.Quote(c.Request.Context(), liquidityapp.QuoteInput{
		Tokens:        req.Tokens,
		TokenValue:    req.TokenValue,
		HoldingMonths: req.HoldingMonths,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateRedemption godoc
// @ID           createRedemptionLiquidity
// @Summary      Request a redemption
// @Description  Quotes the payout for the caller's investment at its current holding age and reserves the tokens
// @Tags         liquidity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRedemptionRequest true "Investment and tokens"
// @Success      201 {object} APIResponse[liquidityapp.RedemptionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /liquidity/redemptions [post]
func (h *LiquidityHandler) CreateRedemption(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req CreateRedemptionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.CreateRedemption(c.Request.Context(), liquidityapp.CreateRedemptionInput{
		InvestorID:   userID,
		InvestmentID: uuid.MustParse(req.InvestmentID),
		Tokens:       req.Tokens,
		Notes:        req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListRedemptions godoc
// @ID           listRedemptionsLiquidity
// @Summary      List redemptions
// @Description  Investors see their own requests; admins see all and may filter by investor
// @Tags         liquidity
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        status query string false "Status"
// @Param        investor_id query string false "Investor (admin only)"
// @Param        investment_id query string false "Investment"
// @Success      200 {object} APIResponse[[]liquidityapp.RedemptionResponse]
// @Router       /liquidity/redemptions [get]
func (h *LiquidityHandler) ListRedemptions(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var q ListRedemptionsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize()
	investorID, ok := h.QueryUUID(c, "investor_id")
	if !ok {
		return
	}
	investmentID, ok := h.QueryUUID(c, "investment_id")
	if !ok {
		return
	}
	if !h.IsAdmin(c) {
		investorID = &userID
	}

	page, err := h.service.ListRedemptions(c.Request.Context(), liquidityapp.ListRedemptionsInput{
		Page:         q.Page,
		PageSize:     q.PageSize,
		InvestorID:   investorID,
		InvestmentID: investmentID,
		Status:       q.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// GetRedemption godoc
// @ID           getRedemptionLiquidity
// @Summary      Get redemption
// @Tags         liquidity
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Redemption ID"
// @Success      200 {object} APIResponse[liquidityapp.RedemptionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /liquidity/redemptions/{id} [get]
func (h *LiquidityHandler) GetRedemption(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetRedemption(c.Request.Context(), id, userID, h.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve godoc
// @ID           approveRedemptionLiquidity
// @Summary      Approve redemption
// @Tags         liquidity
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Redemption ID"
// @Success      200 {object} APIResponse[liquidityapp.RedemptionResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /liquidity/redemptions/{id}/approve [post]
func (h *LiquidityHandler) Approve(c *gin.Context) {
	reviewer, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Approve(c.Request.Context(), id, reviewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reject godoc
// @ID           rejectRedemptionLiquidity
// @Summary      Reject redemption
// @Description  Rejects a pending request and releases its reserved tokens
// @Tags         liquidity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Redemption ID"
// @Param        request body RejectRequest true "Reason"
// @Success      200 {object} APIResponse[liquidityapp.RedemptionResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /liquidity/redemptions/{id}/reject [post]
func (h *LiquidityHandler) Reject(c *gin.Context) {
	reviewer, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req RejectRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.Reject(c.Request.Context(), id, reviewer, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel godoc
// @ID           cancelRedemptionLiquidity
// @Summary      Cancel own redemption
// @Tags         liquidity
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Redemption ID"
// @Success      200 {object} APIResponse[liquidityapp.RedemptionResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /liquidity/redemptions/{id}/cancel [post]
func (h *LiquidityHandler) Cancel(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Cancel(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkPaid godoc
// @ID           payRedemptionLiquidity
// @Summary      Mark redemption paid
// @Description  Records the payout and returns the burned tokens to the property's supply
// @Tags         liquidity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Redemption ID"
// @Param        request body MarkPaidRequest true "Payment reference"
// @Success      200 {object} APIResponse[liquidityapp.RedemptionResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /liquidity/redemptions/{id}/pay [post]
func (h *LiquidityHandler) MarkPaid(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req MarkPaidRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.MarkPaid(c.Request.Context(), id, req.Reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Statement godoc
// @ID           statementRedemptionLiquidity
// @Summary      Redemption statement
// @Description  Renders the PDF statement of a paid redemption
// @Tags         liquidity
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Redemption ID"
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /liquidity/redemptions/{id}/statement [get]
func (h *LiquidityHandler) Statement(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	file, err := h.service.RenderStatement(c.Request.Context(), id, userID, h.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, file.FileName))
	c.Data(http.StatusOK, "application/pdf", file.Data)
}
