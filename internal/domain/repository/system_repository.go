package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

// PortalRepository drives the portal.wizard flow that emails portal
// invitations to partners.
type PortalRepository interface {
	Invite(ctx context.Context, partnerIDs []int64) error
}

// SystemRepository covers the administrative reads and writes used by health
// checks and provider setup.
type SystemRepository interface {
	// Version returns the Odoo server version string. It does not require
	// authentication.
	Version(ctx context.Context) (string, error)
	ModuleInstalled(ctx context.Context, name string) (bool, error)
	ProviderByCode(ctx context.Context, code string) (*entity.PaymentProvider, error)
	EnableStripeProvider(ctx context.Context, id int64, secretKey, publishableKey string) error
}
