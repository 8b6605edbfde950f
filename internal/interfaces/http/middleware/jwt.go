package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tokenestate/backend/internal/infrastructure/auth"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "

	// AccessTokenQueryParam carries the token on websocket upgrades, since
	// browsers cannot set headers on them
	AccessTokenQueryParam = "access_token"

	// RoleAdmin matches identity.RoleAdmin; duplicated to keep the
	// middleware free of domain imports.
	RoleAdmin = "ADMIN"
)

// PublicRoute is a method + path pair reachable without a token
type PublicRoute struct {
	Method string
	Path   string
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// PublicRoutes are method-specific routes that don't require
	// authentication (GET fee tiers is public, PUT is not)
	PublicRoutes []PublicRoute
	// QueryTokenPaths accept the access token from the access_token query
	// parameter on websocket upgrade requests
	QueryTokenPaths []string
	// Optional callback if token is invalid (default: return 401)
	OnError func(c *gin.Context, err error)
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/metrics",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/swagger",
		},
		PublicRoutes: []PublicRoute{
			{Method: http.MethodGet, Path: "/api/v1/liquidity/fee-tiers"},
			{Method: http.MethodPost, Path: "/api/v1/liquidity/quote"},
		},
		QueryTokenPaths: []string{
			"/api/v1/realtime",
		},
	}
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

func (cfg JWTMiddlewareConfig) skip(method, path string) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for _, r := range cfg.PublicRoutes {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.skip(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok && cfg.acceptsQueryToken(c) {
			tokenString, ok = queryToken(c)
		}
		if !ok {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil {
			ctx := c.Request.Context()

			// Individual logout
			if claims.ID != "" {
				blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(ctx, claims.ID)
				if err != nil {
					// fail open
					if cfg.Logger != nil {
						cfg.Logger.Error("Failed to check token blacklist",
							zap.String("jti", claims.ID),
							zap.Error(err))
					}
				} else if blacklisted {
					handleAuthError(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
					return
				}
			}

			// Password change invalidates every token issued before it
			invalidated, err := cfg.TokenBlacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
			if err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check user token invalidation",
						zap.String("user_id", claims.UserID),
						zap.Error(err))
				}
			} else if invalidated {
				handleAuthError(c, cfg, auth.ErrTokenBlacklisted, "User session has been invalidated")
				return
			}
		}

		setClaims(c, claims)

		if cfg.Logger != nil {
			cfg.Logger.Debug("JWT authentication successful",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
			)
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func (cfg JWTMiddlewareConfig) acceptsQueryToken(c *gin.Context) bool {
	if !isWebSocketUpgrade(c.Request) {
		return false
	}
	for _, p := range cfg.QueryTokenPaths {
		if c.Request.URL.Path == p {
			return true
		}
	}
	return false
}

func queryToken(c *gin.Context) (string, bool) {
	token := strings.TrimSpace(c.Query(AccessTokenQueryParam))
	return token, token != ""
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket") &&
		strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTEmailKey, claims.Email)
	c.Set(JWTRoleKey, claims.Role)

	ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}

// handleAuthError handles authentication errors
func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	msg := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code, msg = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrMissingUserID):
		code, msg = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, msg, c.GetString(RequestIDKey)))
}

// RequireRole rejects authenticated callers whose role is not in roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		if GetJWTUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient role", c.GetString(RequestIDKey)))
	}
}

// RequireAdmin is RequireRole(RoleAdmin)
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTRole retrieves the caller's role from JWT claims in context
func GetJWTRole(c *gin.Context) string {
	return c.GetString(JWTRoleKey)
}

// IsAdmin reports whether the authenticated caller is an administrator
func IsAdmin(c *gin.Context) bool {
	return GetJWTRole(c) == RoleAdmin
}

// OptionalJWTAuthMiddleware extracts claims when a valid token is present
// and lets anonymous requests through otherwise
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}
