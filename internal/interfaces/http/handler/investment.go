package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	investmentapp "github.com/tokenestate/backend/internal/application/investment"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
)

// InvestmentHandler serves token purchases and the investor portfolio
type InvestmentHandler struct {
	BaseHandler
	service *investmentapp.Service
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(service *investmentapp.Service) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

// BuyTokensRequest purchases tokens of a property
type BuyTokensRequest struct {
	PropertyID string `json:"property_id" binding:"required,uuid"`
	Tokens     int64  `json:"tokens" binding:"required,min=1"`
}

// ListInvestmentsQuery filters investments
type ListInvestmentsQuery struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=PENDING SETTLED FAILED"`
}

// Buy godoc
// @ID           buyInvestment
// @Summary      Buy tokens
// @Description  Purchases tokens of an active property. Requires a current accreditation when enforced.
// @Tags         investments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BuyTokensRequest true "Property and tokens"
// @Success      201 {object} APIResponse[investmentapp.InvestmentResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /investments [post]
func (h *InvestmentHandler) Buy(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req BuyTokensRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.Buy(c.Request.Context(), investmentapp.BuyInput{
		InvestorID: userID,
		PropertyID: uuid.MustParse(req.PropertyID),
		Tokens:     req.Tokens,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @ID           getInvestment
// @Summary      Get investment
// @Tags         investments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Investment ID"
// @Success      200 {object} APIResponse[investmentapp.InvestmentResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /investments/{id} [get]
func (h *InvestmentHandler) Get(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Get(c.Request.Context(), id, userID, h.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listInvestments
// @Summary      List investments
// @Description  Investors see their own investments; admins may filter by investor
// @Tags         investments
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        status query string false "Status"
// @Param        property_id query string false "Property"
// @Param        investor_id query string false "Investor (admin only)"
// @Success      200 {object} APIResponse[[]investmentapp.InvestmentResponse]
// @Router       /investments [get]
func (h *InvestmentHandler) List(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var q ListInvestmentsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize()
	propertyID, ok := h.QueryUUID(c, "property_id")
	if !ok {
		return
	}
	investorID, ok := h.QueryUUID(c, "investor_id")
	if !ok {
		return
	}
	if !h.IsAdmin(c) {
		investorID = &userID
	}
	page, err := h.service.List(c.Request.Context(), investmentapp.ListInput{
		Page:       q.Page,
		PageSize:   q.PageSize,
		InvestorID: investorID,
		PropertyID: propertyID,
		Status:     q.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Portfolio godoc
// @ID           portfolioInvestment
// @Summary      Portfolio summary
// @Description  Holdings with current valuation and redemption fee tier, pending redemptions and open predictions
// @Tags         investments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[investmentapp.PortfolioSummary]
// @Router       /portfolio [get]
func (h *InvestmentHandler) Portfolio(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	resp, err := h.service.PortfolioSummary(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
