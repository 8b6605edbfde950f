package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/interfaces/http/handler"
	"github.com/tokenestate/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func asRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != "" {
			c.Set(middleware.JWTUserIDKey, "3c4e1a52-3f7d-4f55-9a67-1d2a3c5e7f90")
			c.Set(middleware.JWTRoleKey, role)
		}
		c.Next()
	}
}

func TestRouter_Defaults(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Equal(t, "/api/v2", NewRouter(gin.New(), WithAPIVersion("v2")).BasePath())
	assert.Empty(t, r.Routes())
}

func TestRouter_MiddlewareOnlyWrapsAPI(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTeapot)
	})
	r.Register(NewDomainGroup("ping", "/ping").GET("", func(c *gin.Context) { c.Status(http.StatusOK) }))
	r.Setup()

	assert.Equal(t, http.StatusTeapot, serve(engine, http.MethodGet, "/api/v1/ping").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
}

func TestDomainGroup_AdminGuard(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	build := func(role string) *gin.Engine {
		engine := gin.New()
		g := NewDomainGroup("markets", "/markets").WithAdminGuard(middleware.RequireAdmin())
		g.GET("", ok)
		g.AdminPOST("", ok)
		sub := g.Group("stakes", "/:id/stakes")
		sub.POST("", ok)
		sub.AdminGET("", ok)
		NewRouter(engine).Use(asRole(role)).Register(g).Setup()
		return engine
	}

	investor := build("INVESTOR")
	assert.Equal(t, http.StatusOK, serve(investor, http.MethodGet, "/api/v1/markets").Code)
	assert.Equal(t, http.StatusForbidden, serve(investor, http.MethodPost, "/api/v1/markets").Code)
	assert.Equal(t, http.StatusOK, serve(investor, http.MethodPost, "/api/v1/markets/42/stakes").Code)
	assert.Equal(t, http.StatusForbidden, serve(investor, http.MethodGet, "/api/v1/markets/42/stakes").Code)

	admin := build(middleware.RoleAdmin)
	assert.Equal(t, http.StatusOK, serve(admin, http.MethodPost, "/api/v1/markets").Code)
	assert.Equal(t, http.StatusOK, serve(admin, http.MethodGet, "/api/v1/markets/42/stakes").Code)

	anonymous := build("")
	assert.Equal(t, http.StatusUnauthorized, serve(anonymous, http.MethodPost, "/api/v1/markets").Code)
}

func allHandlers() Handlers {
	return Handlers{
		Auth:          handler.NewAuthHandler(nil),
		Property:      handler.NewPropertyHandler(nil),
		Investment:    handler.NewInvestmentHandler(nil),
		Liquidity:     handler.NewLiquidityHandler(nil),
		Accreditation: handler.NewAccreditationHandler(nil),
		Prediction:    handler.NewPredictionHandler(nil),
		Referral:      handler.NewReferralHandler(nil),
		Insights:      handler.NewInsightsHandler(nil),
		Realtime:      handler.NewRealtimeHandler(nil),
		System:        handler.NewSystemHandler("TokenEstate API", "test"),
	}
}

func TestRegisterAPI_RouteTable(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	RegisterAPI(r, allHandlers(), middleware.RequireAdmin())
	require.NotPanics(t, func() { r.Setup() })

	routes := r.Routes()
	index := make(map[string]RouteInfo, len(routes))
	for _, ri := range routes {
		index[ri.Method+" "+ri.Path] = ri
	}
	assert.Len(t, index, len(routes), "duplicate routes")

	public := []string{
		"POST /api/v1/auth/login",
		"GET /api/v1/properties",
		"GET /api/v1/properties/compare",
		"POST /api/v1/investments",
		"GET /api/v1/portfolio",
		"POST /api/v1/liquidity/quote",
		"POST /api/v1/liquidity/redemptions/:id/cancel",
		"POST /api/v1/predictions/markets/:id/stakes",
		"GET /api/v1/referrals",
		"GET /api/v1/realtime",
	}
	for _, key := range public {
		ri, ok := index[key]
		if assert.True(t, ok, key) {
			assert.False(t, ri.Admin, key)
		}
	}

	admin := []string{
		"POST /api/v1/properties",
		"PUT /api/v1/liquidity/fee-tiers",
		"POST /api/v1/liquidity/redemptions/:id/approve",
		"POST /api/v1/liquidity/redemptions/:id/pay",
		"POST /api/v1/accreditation/admin/:id/approve",
		"POST /api/v1/predictions/markets/:id/resolve",
		"POST /api/v1/system/jobs/:name/run",
	}
	for _, key := range admin {
		ri, ok := index[key]
		if assert.True(t, ok, key) {
			assert.True(t, ri.Admin, key)
		}
	}

	registered := make(map[string]bool)
	for _, gr := range engine.Routes() {
		registered[gr.Method+" "+gr.Path] = true
	}
	for key := range index {
		assert.True(t, registered[key], "not mounted: %s", key)
	}
}

func TestRegisterAPI_AdminRoutesRejectInvestors(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(asRole("INVESTOR"))
	RegisterAPI(r, allHandlers(), middleware.RequireAdmin())
	r.Setup()

	for _, ri := range r.Routes() {
		if !ri.Admin {
			continue
		}
		w := serve(engine, ri.Method, ri.Path)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", ri.Method, ri.Path)
	}
}

func TestRegisterAPI_SkipsNilHandlers(t *testing.T) {
	r := NewRouter(gin.New())
	RegisterAPI(r, Handlers{Referral: handler.NewReferralHandler(nil)}, middleware.RequireAdmin())
	assert.Len(t, r.Routes(), 2)
}
