package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/aiqso/odoo-bridge/internal/application/service"
	"github.com/aiqso/odoo-bridge/internal/config"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/repository"
	"github.com/aiqso/odoo-bridge/internal/presentation/http/handler"
	"github.com/aiqso/odoo-bridge/internal/presentation/http/routes"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stdout",
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := cfg.Odoo.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid Odoo configuration")
	}

	client, err := odoo.NewClient(cfg.Odoo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Odoo client")
	}

	// Authenticate at startup so bad credentials fail the deploy, not the
	// first webhook.
	uid, err := client.Authenticate(context.Background())
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.Odoo.URL).Msg("Odoo authentication failed")
	}
	log.Info().Int64("uid", uid).Str("url", cfg.Odoo.URL).Msg("Connected to Odoo")

	// Initialize repositories
	partnerRepo := repository.NewPartnerRepository(client)
	productRepo := repository.NewProductRepository(client)
	invoiceRepo := repository.NewInvoiceRepository(client)
	paymentRepo := repository.NewPaymentRepository(client)
	systemRepo := repository.NewSystemRepository(client)

	// Initialize services
	billingService := service.NewBillingService(partnerRepo, productRepo, invoiceRepo, paymentRepo)
	healthService := service.NewHealthService(client, systemRepo, productRepo, cfg.Automation.URL)

	// Initialize handlers
	handlers := &routes.Handlers{
		Invoice: handler.NewInvoiceHandler(billingService),
		Health:  handler.NewHealthHandler(healthService),
	}

	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8070"
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("port", port).
		Msg("Starting server")

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
		os.Exit(1)
	}
}
