package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Bodies
// without a declared length are capped while streaming.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || strings.HasPrefix(c.Request.URL.Path, "/ws") {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRequestTooLarge,
					"Request body exceeds maximum allowed size", c.GetString(RequestIDKey)))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
