package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jarahq/jara-backend/internal/handlers"
	"github.com/jarahq/jara-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName        string
	AllowedOrigins     []string
	TracingEnabled     bool
	AuthMiddleware     *middleware.AuthMiddleware
	AuthHandler        *handlers.AuthHandler
	OAuthHandler       *handlers.OAuthHandler
	CreatorHandler     *handlers.CreatorHandler
	PageHandler        *handlers.PageHandler
	PublicHandler      *handlers.PublicHandler
	PaymentLinkHandler *handlers.PaymentLinkHandler
	TransactionHandler *handlers.TransactionHandler
	DashboardHandler   *handlers.DashboardHandler
	VideoHandler       *handlers.VideoHandler
	UploadHandler      *handlers.UploadHandler
	DraftingHandler    *handlers.DraftingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/verify-otp", cfg.AuthHandler.VerifyOTP)
	router.POST("/reset-password", cfg.AuthHandler.ResetPassword)
	router.POST("/reset-password/confirm", cfg.AuthHandler.ConfirmPasswordReset)
	if cfg.OAuthHandler != nil {
		router.GET("/oauth/:provider", cfg.OAuthHandler.Start)
		router.GET("/oauth/:provider/callback", cfg.OAuthHandler.Callback)
	}
	router.GET("/u/:slug", cfg.PublicHandler.GetCreatorPage)
	router.GET("/p/:slug", cfg.PublicHandler.GetPage)
	router.GET("/p/:slug/html", cfg.PublicHandler.GetPageHTML)
	router.GET("/pay/:slug", cfg.PublicHandler.GetPaymentLink)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// Creator
	protected.POST("/creator", cfg.CreatorHandler.Create)
	protected.GET("/creator", cfg.CreatorHandler.GetMe)
	protected.PATCH("/creator", cfg.CreatorHandler.Update)
	protected.POST("/creator/publish", cfg.CreatorHandler.SetPublished)
	protected.DELETE("/creator", cfg.CreatorHandler.Delete)
	// Pages
	protected.POST("/pages/draft", cfg.PageHandler.CreateDraft)
	protected.POST("/pages", cfg.PageHandler.Save)
	protected.GET("/pages", cfg.PageHandler.List)
	protected.GET("/pages/:id", cfg.PageHandler.Get)
	protected.PATCH("/pages/:id", cfg.PageHandler.UpdateFields)
	protected.DELETE("/pages/:id", cfg.PageHandler.Delete)
	protected.POST("/pages/:id/sections", cfg.PageHandler.AddSection)
	protected.PATCH("/pages/:id/sections/:sectionId", cfg.PageHandler.UpdateSection)
	protected.DELETE("/pages/:id/sections/:sectionId", cfg.PageHandler.RemoveSection)
	protected.POST("/pages/:id/publish", cfg.PageHandler.SetPublished)
	protected.POST("/pages/:id/draft", cfg.PageHandler.ApplyDraft)
	protected.GET("/pages/:id/preview", cfg.PageHandler.Preview)
	// Payment links
	protected.POST("/payment-links", cfg.PaymentLinkHandler.Create)
	protected.GET("/payment-links", cfg.PaymentLinkHandler.List)
	protected.GET("/payment-links/:id", cfg.PaymentLinkHandler.Get)
	protected.PATCH("/payment-links/:id", cfg.PaymentLinkHandler.Update)
	protected.POST("/payment-links/:id/publish", cfg.PaymentLinkHandler.SetPublished)
	protected.DELETE("/payment-links/:id", cfg.PaymentLinkHandler.Delete)
	protected.GET("/payment-links/:id/transactions", cfg.TransactionHandler.ListByLink)
	// Transactions & dashboard
	protected.GET("/transactions", cfg.TransactionHandler.List)
	protected.GET("/dashboard/stats", cfg.DashboardHandler.GetStats)
	// Videos
	protected.POST("/videos", cfg.VideoHandler.Upload)
	protected.GET("/videos", cfg.VideoHandler.List)
	protected.GET("/videos/:id", cfg.VideoHandler.Get)
	protected.DELETE("/videos/:id", cfg.VideoHandler.Delete)
	// Uploads
	protected.POST("/uploads/image", cfg.UploadHandler.UploadImage)
	protected.POST("/uploads/reference-images", cfg.UploadHandler.UploadReferenceImages)
	// Drafting
	protected.POST("/drafts/generate", cfg.DraftingHandler.Generate)

	return router
}

// ParseOrigins splits a comma separated origin list from the environment.
func ParseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
