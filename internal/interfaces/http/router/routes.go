package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tokenestate/backend/internal/interfaces/http/handler"
)

// Handlers bundles every HTTP handler mounted under the API group.
// A nil handler leaves its routes unregistered.
type Handlers struct {
	Auth          *handler.AuthHandler
	Property      *handler.PropertyHandler
	Investment    *handler.InvestmentHandler
	Liquidity     *handler.LiquidityHandler
	Accreditation *handler.AccreditationHandler
	Prediction    *handler.PredictionHandler
	Referral      *handler.ReferralHandler
	Insights      *handler.InsightsHandler
	Realtime      *handler.RealtimeHandler
	System        *handler.SystemHandler
}

// RegisterAPI builds the domain route table on r. requireAdmin guards
// every admin route.
func RegisterAPI(r *Router, h Handlers, requireAdmin gin.HandlerFunc) {
	if h.Auth != nil {
		g := NewDomainGroup("auth", "/auth")
		g.POST("/register", h.Auth.Register)
		g.POST("/login", h.Auth.Login)
		g.POST("/refresh", h.Auth.RefreshToken)
		g.POST("/logout", h.Auth.Logout)
		g.GET("/me", h.Auth.GetCurrentUser)
		g.PUT("/password", h.Auth.ChangePassword)
		r.Register(g)
	}

	if h.Property != nil {
		g := NewDomainGroup("property", "/properties").WithAdminGuard(requireAdmin)
		g.GET("", h.Property.List)
		g.GET("/compare", h.Property.Compare)
		g.GET("/:id", h.Property.Get)
		g.GET("/:id/documents/:doc_id/download-url", h.Property.DocumentDownloadURL)
		g.AdminPOST("", h.Property.Create)
		g.AdminPUT("/:id", h.Property.Update)
		g.AdminPOST("/:id/publish", h.Property.Publish)
		g.AdminPOST("/:id/close", h.Property.Close)
		g.AdminPOST("/:id/documents/upload-url", h.Property.DocumentUploadURL)
		g.AdminPOST("/:id/documents", h.Property.AttachDocument)
		r.Register(g)
	}

	if h.Investment != nil {
		g := NewDomainGroup("investment", "/investments")
		g.POST("", h.Investment.Buy)
		g.GET("", h.Investment.List)
		g.GET("/:id", h.Investment.Get)
		r.Register(g)
		r.Register(NewDomainGroup("portfolio", "/portfolio").GET("", h.Investment.Portfolio))
	}

	if h.Liquidity != nil {
		g := NewDomainGroup("liquidity", "/liquidity").WithAdminGuard(requireAdmin)
		g.GET("/fee-tiers", h.Liquidity.GetFeeTiers)
		g.AdminPUT("/fee-tiers", h.Liquidity.ReplaceFeeTiers)
		g.POST("/quote", h.Liquidity.Quote)

		red := g.Group("redemptions", "/redemptions")
		red.POST("", h.Liquidity.CreateRedemption)
		red.GET("", h.Liquidity.ListRedemptions)
		red.GET("/:id", h.Liquidity.GetRedemption)
		red.POST("/:id/cancel", h.Liquidity.Cancel)
		red.GET("/:id/statement", h.Liquidity.Statement)
		red.AdminPOST("/:id/approve", h.Liquidity.Approve)
		red.AdminPOST("/:id/reject", h.Liquidity.Reject)
		red.AdminPOST("/:id/pay", h.Liquidity.MarkPaid)
		r.Register(g)
	}

	if h.Accreditation != nil {
		g := NewDomainGroup("accreditation", "/accreditation").WithAdminGuard(requireAdmin)
		g.POST("", h.Accreditation.Submit)
		g.POST("/upload-url", h.Accreditation.UploadURL)
		g.GET("/me", h.Accreditation.Latest)

		review := g.Group("accreditation-review", "/admin")
		review.AdminGET("", h.Accreditation.List)
		review.AdminGET("/:id", h.Accreditation.Get)
		review.AdminPOST("/:id/review", h.Accreditation.StartReview)
		review.AdminPOST("/:id/approve", h.Accreditation.Approve)
		review.AdminPOST("/:id/reject", h.Accreditation.Reject)
		r.Register(g)
	}

	if h.Prediction != nil {
		g := NewDomainGroup("prediction", "/predictions").WithAdminGuard(requireAdmin)
		g.GET("/positions", h.Prediction.MyPositions)

		markets := g.Group("markets", "/markets")
		markets.GET("", h.Prediction.ListMarkets)
		markets.GET("/:id", h.Prediction.GetMarket)
		markets.POST("/:id/stakes", h.Prediction.PlaceStake)
		markets.AdminPOST("", h.Prediction.CreateMarket)
		markets.AdminGET("/:id/positions", h.Prediction.MarketPositions)
		markets.AdminPOST("/:id/close", h.Prediction.CloseMarket)
		markets.AdminPOST("/:id/resolve", h.Prediction.Resolve)
		markets.AdminPOST("/:id/cancel", h.Prediction.Cancel)
		r.Register(g)
	}

	if h.Referral != nil {
		g := NewDomainGroup("referral", "/referrals")
		g.POST("", h.Referral.Invite)
		g.GET("", h.Referral.Summary)
		r.Register(g)
	}

	if h.Insights != nil {
		g := NewDomainGroup("insights", "/insights")
		g.GET("/properties/:id", h.Insights.ForProperty)
		g.GET("/markets/:id", h.Insights.ForMarket)
		r.Register(g)
	}

	if h.Realtime != nil {
		r.Register(NewDomainGroup("realtime", "/realtime").GET("", h.Realtime.Subscribe))
	}

	if h.System != nil {
		g := NewDomainGroup("system", "/system").WithAdminGuard(requireAdmin)
		g.AdminGET("/info", h.System.GetSystemInfo)
		g.AdminGET("/jobs", h.System.ListJobs)
		g.AdminPOST("/jobs/:name/run", h.System.RunJob)
		r.Register(g)
	}
}
