package handler

import (
	"github.com/gin-gonic/gin"
	accreditationapp "github.com/tokenestate/backend/internal/application/accreditation"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
)

// AccreditationHandler serves investor accreditation submissions and the
// admin review queue
type AccreditationHandler struct {
	BaseHandler
	service *accreditationapp.Service
}

// NewAccreditationHandler creates a new accreditation handler
func NewAccreditationHandler(service *accreditationapp.Service) *AccreditationHandler {
	return &AccreditationHandler{service: service}
}

// AccreditationUploadRequest asks for an evidence upload URL
type AccreditationUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=200"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// SubmitAccreditationRequest opens a submission
type SubmitAccreditationRequest struct {
	Type      string                           `json:"accreditation_type" binding:"required,oneof=INCOME NET_WORTH PROFESSIONAL"`
	Documents []accreditationapp.DocumentInput `json:"documents" binding:"required,min=1,max=10,dive"`
}

// ListAccreditationsQuery filters the review queue
type ListAccreditationsQuery struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=SUBMITTED UNDER_REVIEW APPROVED REJECTED EXPIRED"`
}

// UploadURL godoc
// @ID           uploadURLAccreditation
// @Summary      Evidence upload URL
// @Tags         accreditation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AccreditationUploadRequest true "File"
// @Success      200 {object} APIResponse[accreditationapp.UploadURLResponse]
// @Failure      503 {object} ErrorResponse
// @Router       /accreditation/upload-url [post]
func (h *AccreditationHandler) UploadURL(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req AccreditationUploadRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.CreateUploadURL(c.Request.Context(), accreditationapp.UploadURLInput{
		InvestorID:  userID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Submit godoc
// @ID           submitAccreditation
// @Summary      Submit accreditation
// @Description  Opens a submission with previously uploaded evidence. Only one submission may be open at a time.
// @Tags         accreditation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubmitAccreditationRequest true "Submission"
// @Success      201 {object} APIResponse[accreditationapp.AccreditationResponse]
// @Failure      409 {object} ErrorResponse
// @Router       /accreditation [post]
func (h *AccreditationHandler) Submit(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req SubmitAccreditationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.Submit(c.Request.Context(), accreditationapp.SubmitInput{
		InvestorID: userID,
		Type:       req.Type,
		Documents:  req.Documents,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Latest godoc
// @ID           latestAccreditation
// @Summary      Own accreditation status
// @Tags         accreditation
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[accreditationapp.AccreditationResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /accreditation/me [get]
func (h *AccreditationHandler) Latest(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	resp, err := h.service.GetLatest(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listAccreditations
// @Summary      Review queue
// @Tags         accreditation
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        status query string false "Status"
// @Param        investor_id query string false "Investor"
// @Success      200 {object} APIResponse[[]accreditationapp.AccreditationResponse]
// @Router       /accreditation/admin [get]
func (h *AccreditationHandler) List(c *gin.Context) {
	var q ListAccreditationsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize()
	investorID, ok := h.QueryUUID(c, "investor_id")
	if !ok {
		return
	}
	page, err := h.service.List(c.Request.Context(), accreditationapp.ListInput{
		Page:       q.Page,
		PageSize:   q.PageSize,
		InvestorID: investorID,
		Status:     q.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Get godoc
// @ID           getAccreditation
// @Summary      Get accreditation
// @Tags         accreditation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Accreditation ID"
// @Success      200 {object} APIResponse[accreditationapp.AccreditationResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /accreditation/admin/{id} [get]
func (h *AccreditationHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// StartReview godoc
// @ID           reviewAccreditation
// @Summary      Start review
// @Tags         accreditation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Accreditation ID"
// @Success      200 {object} APIResponse[accreditationapp.AccreditationResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /accreditation/admin/{id}/review [post]
func (h *AccreditationHandler) StartReview(c *gin.Context) {
	reviewer, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.StartReview(c.Request.Context(), id, reviewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve godoc
// @ID           approveAccreditation
// @Summary      Approve accreditation
// @Tags         accreditation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Accreditation ID"
// @Success      200 {object} APIResponse[accreditationapp.AccreditationResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /accreditation/admin/{id}/approve [post]
func (h *AccreditationHandler) Approve(c *gin.Context) {
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
// @ID           rejectAccreditation
// @Summary      Reject accreditation
// @Tags         accreditation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Accreditation ID"
// @Param        request body RejectRequest true "Reason"
// @Success      200 {object} APIResponse[accreditationapp.AccreditationResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /accreditation/admin/{id}/reject [post]
func (h *AccreditationHandler) Reject(c *gin.Context) {
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
