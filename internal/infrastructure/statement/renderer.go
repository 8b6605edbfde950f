package statement

import (
	"context"
	"time"
)

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	HTML  string
	Title string
	// Timeout overrides the renderer's default timeout
	Timeout time.Duration
}

// PDFRenderer converts HTML documents to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) ([]byte, error)
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}
