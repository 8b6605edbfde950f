package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	propertyapp "github.com/tokenestate/backend/internal/application/property"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
)

// PropertyHandler serves the property catalog and its documents
type PropertyHandler struct {
	BaseHandler
	service *propertyapp.Service
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(service *propertyapp.Service) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// CreatePropertyRequest creates a draft listing
type CreatePropertyRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Location    string          `json:"location" binding:"required,max=300"`
	Type        string          `json:"type" binding:"required,oneof=RESIDENTIAL COMMERCIAL INDUSTRIAL LAND"`
	TotalTokens int64           `json:"total_tokens" binding:"required,min=1"`
	TokenPrice  decimal.Decimal `json:"token_price" binding:"dpositive"`
	AnnualYield decimal.Decimal `json:"annual_yield"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url,max=1000"`
}

// UpdatePropertyRequest edits a listing
type UpdatePropertyRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Location    string          `json:"location" binding:"required,max=300"`
	Type        string          `json:"type" binding:"required,oneof=RESIDENTIAL COMMERCIAL INDUSTRIAL LAND"`
	TokenPrice  decimal.Decimal `json:"token_price" binding:"dpositive"`
	AnnualYield decimal.Decimal `json:"annual_yield"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url,max=1000"`
	Version     *int            `json:"version" binding:"omitempty,min=1"`
}

// ListPropertiesQuery filters the catalog
type ListPropertiesQuery struct {
	dto.ListRequest
	Search    string `form:"search" binding:"max=100"`
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT ACTIVE FUNDED CLOSED"`
	Type      string `form:"type" binding:"omitempty,oneof=RESIDENTIAL COMMERCIAL INDUSTRIAL LAND"`
	SortBy    string `form:"sort_by" binding:"max=50"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// DocumentUploadRequest asks for a presigned upload URL
type DocumentUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=200"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// AttachDocumentRequest records an uploaded document
type AttachDocumentRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=DEED APPRAISAL PROSPECTUS FINANCIALS OTHER"`
	Name        string `json:"name" binding:"required,max=200"`
	StorageKey  string `json:"storage_key" binding:"required,max=500"`
	ContentType string `json:"content_type" binding:"max=100"`
	Size        int64  `json:"size" binding:"min=0"`
}

// Create godoc
// @ID           createProperty
// @Summary      Create property
// @Description  Creates a draft listing. Drafts are visible to admins only until published.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePropertyRequest true "Listing"
// @Success      201 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.Create(c.Request.Context(), propertyapp.CreatePropertyInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		TotalTokens: req.TotalTokens,
		TokenPrice:  req.TokenPrice,
		AnnualYield: req.AnnualYield,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateProperty
// @Summary      Update property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body UpdatePropertyRequest true "Listing"
// @Success      200 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req UpdatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.Update(c.Request.Context(), id, propertyapp.UpdatePropertyInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		TokenPrice:  req.TokenPrice,
		AnnualYield: req.AnnualYield,
		ImageURL:    req.ImageURL,
		Version:     req.Version,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Publish godoc
// @ID           publishProperty
// @Summary      Publish property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /properties/{id}/publish [post]
func (h *PropertyHandler) Publish(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Publish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Close godoc
// @ID           closeProperty
// @Summary      Close property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /properties/{id}/close [post]
func (h *PropertyHandler) Close(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Close(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getProperty
// @Summary      Get property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Get(c.Request.Context(), id, h.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listProperties
// @Summary      List properties
// @Description  Lists published properties. Admins also see drafts.
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Name or location search"
// @Param        status query string false "Status"
// @Param        type query string false "Property type"
// @Param        sort_by query string false "Sort field"
// @Param        sort_order query string false "asc or desc"
// @Success      200 {object} APIResponse[[]propertyapp.PropertyResponse]
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	var q ListPropertiesQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize()
	page, err := h.service.List(c.Request.Context(), propertyapp.ListPropertiesInput{
		Page:          q.Page,
		PageSize:      q.PageSize,
		Search:        q.Search,
		Status:        q.Status,
		Type:          q.Type,
		SortBy:        q.SortBy,
		SortOrder:     q.SortOrder,
		IncludeDrafts: h.IsAdmin(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Compare godoc
// @ID           compareProperties
// @Summary      Compare properties
// @Description  Side-by-side metrics for 2 to 4 distinct properties
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        ids query string true "Comma separated property IDs"
// @Success      200 {object} APIResponse[propertyapp.ComparisonResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /properties/compare [get]
func (h *PropertyHandler) Compare(c *gin.Context) {
	raw := strings.Split(c.Query("ids"), ",")
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			h.BadRequest(c, "Invalid ids format")
			return
		}
		ids = append(ids, id)
	}
	resp, err := h.service.Compare(c.Request.Context(), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DocumentUploadURL godoc
// @ID           documentUploadURLProperty
// @Summary      Document upload URL
// @Description  Returns a presigned PUT URL for a property document
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body DocumentUploadRequest true "File"
// @Success      200 {object} APIResponse[propertyapp.PresignedURL]
// @Failure      503 {object} ErrorResponse
// @Router       /properties/{id}/documents/upload-url [post]
func (h *PropertyHandler) DocumentUploadURL(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req DocumentUploadRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.CreateDocumentUploadURL(c.Request.Context(), id, propertyapp.DocumentUploadInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AttachDocument godoc
// @ID           attachDocumentProperty
// @Summary      Attach document
// @Description  Records a document previously uploaded to the presigned URL
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body AttachDocumentRequest true "Document"
// @Success      201 {object} APIResponse[propertyapp.DocumentResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /properties/{id}/documents [post]
func (h *PropertyHandler) AttachDocument(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req AttachDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.service.AttachDocument(c.Request.Context(), id, propertyapp.AttachDocumentInput{
		Kind:        req.Kind,
		Name:        req.Name,
		StorageKey:  req.StorageKey,
		ContentType: req.ContentType,
		Size:        req.Size,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// DocumentDownloadURL godoc
// @ID           documentDownloadURLProperty
// @Summary      Document download URL
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        doc_id path string true "Document ID"
// @Success      200 {object} APIResponse[propertyapp.PresignedURL]
// @Failure      404 {object} ErrorResponse
// @Router       /properties/{id}/documents/{doc_id}/download-url [get]
func (h *PropertyHandler) DocumentDownloadURL(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	docID, ok := h.ParamUUID(c, "doc_id")
	if !ok {
		return
	}
	if _, err := h.service.Get(c.Request.Context(), id, h.IsAdmin(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.service.DocumentDownloadURL(c.Request.Context(), id, docID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
