package handler

import (
	"github.com/gin-gonic/gin"
	referralapp "github.com/tokenestate/backend/internal/application/referral"
)

// ReferralHandler serves the referral program
type ReferralHandler struct {
	BaseHandler
	service *referralapp.Service
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(service *referralapp.Service) *ReferralHandler {
	return &ReferralHandler{service: service}
}

// InviteRequest invites a friend by e-mail
type InviteRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

// Invite godoc
// @ID           inviteReferral
// @Summary      Invite a friend
// @Description  Creates a referral code and e-mails the invitation. The referral is kept when delivery fails.
// @Tags         referrals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body InviteRequest true "Invitee"
// @Success      201 {object} APIResponse[referralapp.ReferralResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /referrals [post]
func (h *ReferralHandler) Invite(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req InviteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.Invite(c.Request.Context(), referralapp.InviteInput{
		ReferrerID: userID,
		Email:      req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Summary godoc
// @ID           summaryReferral
// @Summary      Referral summary
// @Tags         referrals
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[referralapp.ReferralSummary]
// @Router       /referrals [get]
func (h *ReferralHandler) Summary(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	resp, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
