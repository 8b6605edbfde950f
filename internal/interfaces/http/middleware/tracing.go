// Package middleware provides the gin middleware chain of the HTTP API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// SkipPaths are not traced (health probes, metric scrapes)
	SkipPaths []string
}

// Tracing returns OpenTelemetry tracing middleware.
//
// Spans are named "METHOD route_pattern" by otelgin and tagged with the
// request ID. Identity attributes are added later by
// TracingAttributeInjector once the JWT middleware has run.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}
	return otelgin.Middleware(cfg.ServiceName, otelgin.WithFilter(func(r *http.Request) bool {
		_, skipped := skip[r.URL.Path]
		return !skipped
	}))
}

// TracingAttributeInjector adds request and caller attributes to the active
// span. Mount it after the JWT middleware.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := c.GetString(RequestIDKey); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
			if id := GetJWTUserID(c); id != "" {
				span.SetAttributes(
					attribute.String("enduser.id", id),
					attribute.String("enduser.role", GetJWTRole(c)),
				)
			}
		}
		c.Next()
	}
}

// SpanErrorMarker marks spans of 4xx/5xx responses with error status.
// Mount it after Tracing.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		msg := http.StatusText(status)
		if status >= http.StatusInternalServerError {
			msg = "Internal Server Error"
		}
		span.SetStatus(codes.Error, msg)
		span.SetAttributes(attribute.Int("http.status_code", status))
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			span.SetAttributes(attribute.String("error.message", errs.String()))
		}
	}
}
