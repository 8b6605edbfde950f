package middleware

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/infrastructure/config"
)

// RequestIDKey is the gin context key holding the request ID; the logger
// middleware reads the same key.
const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID adds a unique request ID to each request, honouring one sent
// by the client
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// CORS builds the cross-origin policy from HTTP config. An empty origin
// list rejects every cross-origin request.
func CORS(cfg config.HTTPConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.CORSAllowMethods,
		AllowHeaders:     cfg.CORSAllowHeaders,
		ExposeHeaders:    []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		AllowWebSockets:  cfg.WebsocketEnabled,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowMethods) == 0 {
		corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(corsCfg.AllowHeaders) == 0 {
		corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", RequestIDHeader, "Idempotency-Key"}
	}

	switch {
	case len(cfg.CORSAllowOrigins) == 1 && cfg.CORSAllowOrigins[0] == "*":
		corsCfg.AllowAllOrigins = true
		// browsers refuse credentials with a wildcard origin
		corsCfg.AllowCredentials = false
	case len(cfg.CORSAllowOrigins) == 0:
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	default:
		corsCfg.AllowOrigins = cfg.CORSAllowOrigins
	}
	return cors.New(corsCfg)
}

// SecurityConfig holds configuration for security headers
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // in seconds
	HSTSIncludeSubdomains bool

	CSPDirective               string
	PermissionsPolicyDirective string
}

// DefaultSecurityConfig returns the API's header policy. HSTS is only
// switched on outside development since it pins browsers to HTTPS.
func DefaultSecurityConfig(env string) SecurityConfig {
	return SecurityConfig{
		HSTSEnabled:                env == "production",
		HSTSMaxAge:                 31536000,
		HSTSIncludeSubdomains:      true,
		CSPDirective:               "default-src 'none'; frame-ancestors 'none'; base-uri 'none'",
		PermissionsPolicyDirective: "accelerometer=(), camera=(), geolocation=(), gyroscope=(), microphone=(), payment=(), usb=()",
	}
}

// Secure adds security headers to responses
func Secure(cfg SecurityConfig) gin.HandlerFunc {
	var hstsValue string
	if cfg.HSTSEnabled {
		hstsValue = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hstsValue += "; includeSubDomains"
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// swagger UI serves its own scripts
		if cfg.CSPDirective != "" && !isSwaggerPath(c.Request.URL.Path) {
			h.Set("Content-Security-Policy", cfg.CSPDirective)
		}
		if hstsValue != "" {
			h.Set("Strict-Transport-Security", hstsValue)
		}
		if cfg.PermissionsPolicyDirective != "" {
			h.Set("Permissions-Policy", cfg.PermissionsPolicyDirective)
		}
		c.Next()
	}
}
