package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/infrastructure/auth"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
}

func newTestTokenPair(t *testing.T, svc *auth.JWTService, role string) (*auth.TokenPair, auth.Subject) {
	t.Helper()
	sub := auth.Subject{UserID: uuid.New(), Email: "ana@example.com", Role: role}
	pair, err := svc.GenerateTokenPair(sub)
	require.NoError(t, err)
	return pair, sub
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	pair, sub := newTestTokenPair(t, svc, "INVESTOR")

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/test", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, sub.UserID.String(), GetJWTUserID(c))
		assert.Equal(t, "INVESTOR", GetJWTRole(c))
		assert.False(t, IsAdmin(c))
		assert.Equal(t, sub.UserID.String(), logger.GetUserID(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	rec := serve(router, http.MethodGet, "/test", pair.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(newTestJWTService()))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, http.MethodGet, "/test", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrCodeTokenInvalid, decodeError(t, rec).Code)
}

func TestJWTAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	svc := newTestJWTService()
	pair, _ := newTestTokenPair(t, svc, "INVESTOR")

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, http.MethodGet, "/test", pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	svc := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -time.Minute,
	})
	pair, _ := newTestTokenPair(t, svc, "INVESTOR")

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, http.MethodGet, "/test", pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrCodeTokenExpired, decodeError(t, rec).Code)
}

func TestJWTAuthMiddleware_SkipsPublicRoutes(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(newTestJWTService()))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/health", ok)
	router.POST("/api/v1/auth/login", ok)
	router.GET("/swagger/index.html", ok)
	router.GET("/api/v1/liquidity/fee-tiers", ok)
	router.PUT("/api/v1/liquidity/fee-tiers", ok)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/swagger/index.html", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/liquidity/fee-tiers", "").Code)
	// replacing the schedule is not public
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPut, "/api/v1/liquidity/fee-tiers", "").Code)
}

func TestJWTAuthMiddleware_Blacklist(t *testing.T) {
	svc := newTestJWTService()
	pair, _ := newTestTokenPair(t, svc, "INVESTOR")
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	bl := auth.NewInMemoryTokenBlacklist()
	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = bl

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", pair.AccessToken).Code)

	require.NoError(t, bl.AddToBlacklist(context.Background(), claims.ID, time.Minute))
	rec := serve(router, http.MethodGet, "/test", pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrCodeTokenRevoked, decodeError(t, rec).Code)
}

type failingBlacklist struct{ auth.TokenBlacklist }

func (failingBlacklist) IsBlacklisted(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func (failingBlacklist) IsUserTokenInvalidated(context.Context, string, time.Time) (bool, error) {
	return false, errors.New("redis down")
}

func TestJWTAuthMiddleware_BlacklistFailsOpen(t *testing.T) {
	svc := newTestJWTService()
	pair, _ := newTestTokenPair(t, svc, "INVESTOR")

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = failingBlacklist{}

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", pair.AccessToken).Code)
}

func TestJWTAuthMiddleware_OnError(t *testing.T) {
	var got error
	cfg := DefaultJWTConfig(newTestJWTService())
	cfg.OnError = func(c *gin.Context, err error) {
		got = err
		c.AbortWithStatus(http.StatusTeapot)
	}

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, http.MethodGet, "/test", "garbage")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Error(t, got)
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestJWTService()
	investor, _ := newTestTokenPair(t, svc, "INVESTOR")
	admin, _ := newTestTokenPair(t, svc, RoleAdmin)

	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(svc))
	router.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		assert.True(t, IsAdmin(c))
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(router, http.MethodGet, "/admin", investor.AccessToken).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/admin", admin.AccessToken).Code)
}

func TestOptionalJWTAuthMiddleware_InvalidTokenPassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(newTestJWTService()))
	router.GET("/test", func(c *gin.Context) {
		assert.Empty(t, GetJWTUserID(c))
		assert.Nil(t, GetJWTClaims(c))
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", "not-a-jwt").Code)
}

func TestJWTAuthMiddleware_QueryTokenOnWebSocketUpgrade(t *testing.T) {
	svc := newTestJWTService()
	pair, sub := newTestTokenPair(t, svc, "INVESTOR")

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/api/v1/realtime", func(c *gin.Context) {
		assert.Equal(t, sub.UserID.String(), GetJWTUserID(c))
		c.Status(http.StatusOK)
	})
	router.GET("/api/v1/portfolio", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	upgrade := func(path string, asUpgrade bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if asUpgrade {
			req.Header.Set("Connection", "Upgrade")
			req.Header.Set("Upgrade", "websocket")
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	tests := []struct {
		name      string
		path      string
		asUpgrade bool
		want      int
	}{
		{"upgrade with query token", "/api/v1/realtime?topics=markets&access_token=" + pair.AccessToken, true, http.StatusOK},
		{"plain request ignores query token", "/api/v1/realtime?access_token=" + pair.AccessToken, false, http.StatusUnauthorized},
		{"other paths ignore query token", "/api/v1/portfolio?access_token=" + pair.AccessToken, true, http.StatusUnauthorized},
		{"refresh token is rejected", "/api/v1/realtime?access_token=" + pair.RefreshToken, true, http.StatusUnauthorized},
		{"missing token", "/api/v1/realtime?topics=markets", true, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upgrade(tt.path, tt.asUpgrade).Code)
		})
	}
}
