package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
	"github.com/tokenestate/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// getUserID extracts the caller's ID from JWT claims
func getUserID(c *gin.Context) (uuid.UUID, error) {
	raw := middleware.GetJWTUserID(c)
	if raw == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(raw)
}

// CurrentUser returns the authenticated caller, answering 401 when absent
func (h *BaseHandler) CurrentUser(c *gin.Context) (uuid.UUID, bool) {
	id, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}

// IsAdmin reports whether the caller holds the admin role
func (h *BaseHandler) IsAdmin(c *gin.Context) bool {
	return middleware.IsAdmin(c)
}

// ParamUUID parses a path parameter, answering 400 when malformed
func (h *BaseHandler) ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// QueryUUID parses an optional query parameter
func (h *BaseHandler) QueryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}

// BindJSON binds and validates the body. Field violations produce a
// detailed validation response; anything else is a plain 400.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			middleware.HandleValidationError(c, err)
			return false
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
			return false
		}
		h.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// BindQuery binds and validates query parameters
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			middleware.HandleValidationError(c, err)
			return false
		}
		h.BadRequest(c, "Invalid query parameters")
		return false
	}
	return true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Page sends a paginated list as data + meta
func Page[T any](c *gin.Context, p *shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPageResponse(p))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps domain errors onto their wire code and status. Any
// other error is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			logger.L(c.Request.Context()).Error("Request failed", zap.String("code", code), zap.Error(err))
		}
		h.Error(c, status, code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}
