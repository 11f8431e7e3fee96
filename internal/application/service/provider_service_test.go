package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/pkg/apperror"
)

func TestSetupStripeEnablesProvider(t *testing.T) {
	system := &fakeSystemRepo{provider: &entity.PaymentProvider{ID: 8, Name: "Stripe", State: "disabled"}}
	svc := NewProviderService(system)

	provider, err := svc.SetupStripe(context.Background(), "sk_test_1", "pk_test_1")
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderEnabled, provider.State)
	assert.Equal(t, int64(8), system.enabledID)
}

func TestSetupStripeAlreadyEnabledIsNoop(t *testing.T) {
	system := &fakeSystemRepo{provider: &entity.PaymentProvider{ID: 8, Name: "Stripe", State: entity.ProviderEnabled}}
	svc := NewProviderService(system)

	_, err := svc.SetupStripe(context.Background(), "sk_test_1", "pk_test_1")
	require.NoError(t, err)
	assert.Zero(t, system.enabledID, "already enabled provider must not be rewritten")
}

func TestSetupStripeProviderMissing(t *testing.T) {
	svc := NewProviderService(&fakeSystemRepo{})

	_, err := svc.SetupStripe(context.Background(), "sk_test_1", "pk_test_1")
	require.Error(t, err)
	assert.Contains(t, apperror.GetAppError(err).Message, "payment_stripe")
}

func TestSetupStripeRequiresKeys(t *testing.T) {
	svc := NewProviderService(&fakeSystemRepo{})

	_, err := svc.SetupStripe(context.Background(), "", "pk_test_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
}
