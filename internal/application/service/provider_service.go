package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/pkg/apperror"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

// ProviderService configures the Stripe payment provider in the ERP.
type ProviderService struct {
	systemRepo repository.SystemRepository
	log        zerolog.Logger
}

// NewProviderService creates a new provider service
func NewProviderService(systemRepo repository.SystemRepository) *ProviderService {
	return &ProviderService{
		systemRepo: systemRepo,
		log:        logger.WithComponent("provider"),
	}
}

// SetupStripe enables the Stripe provider with the given API keys. Running
// against an already enabled provider is a no-op.
func (s *ProviderService) SetupStripe(ctx context.Context, secretKey, publishableKey string) (*entity.PaymentProvider, error) {
	if secretKey == "" || publishableKey == "" {
		return nil, apperror.NewConfigError("Missing STRIPE_SECRET_KEY or STRIPE_PUBLISHABLE_KEY")
	}

	provider, err := s.systemRepo.ProviderByCode(ctx, "stripe")
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	if provider == nil {
		return nil, apperror.NewConfigError("Stripe provider not found. Install the payment_stripe module in Odoo first.")
	}
	if provider.State == entity.ProviderEnabled {
		s.log.Info().Int64("provider_id", provider.ID).Msg("stripe provider already enabled")
		return provider, nil
	}

	if err := s.systemRepo.EnableStripeProvider(ctx, provider.ID, secretKey, publishableKey); err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	provider.State = entity.ProviderEnabled
	s.log.Info().Int64("provider_id", provider.ID).Msg("stripe provider enabled")
	return provider, nil
}
