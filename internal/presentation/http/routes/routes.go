package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aiqso/odoo-bridge/internal/config"
	"github.com/aiqso/odoo-bridge/internal/presentation/http/handler"
	"github.com/aiqso/odoo-bridge/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Invoice *handler.InvoiceHandler
	Health  *handler.HealthHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	router.GET("/health", h.Health.Check)

	api := router.Group("/api")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
			BurstSize:         cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		api.Use(rateLimiter.Middleware())

		// Webhook endpoints mutate the ledger and require the shared token.
		webhook := api.Group("")
		webhook.Use(middleware.WebhookAuthMiddleware(cfg.Webhook.Token))
		webhook.POST("/create_invoice", h.Invoice.Create)
		webhook.POST("/mark_invoice_paid", h.Invoice.MarkPaid)

		api.GET("/invoices/:id", h.Invoice.Get)
		api.GET("/invoices/by-stripe/:session_id", h.Invoice.GetBySession)
	}

	return router
}
