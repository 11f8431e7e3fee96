package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

func TestCheckCatalogStatuses(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewHealthService(nil, &fakeSystemRepo{}, products, "")

	result := svc.checkCatalog(context.Background())
	assert.Equal(t, StatusFail, result.Status)

	_, err := NewCatalogService(products).Seed(context.Background())
	require.NoError(t, err)

	result = svc.checkCatalog(context.Background())
	assert.Equal(t, StatusOK, result.Status)
	assert.True(t, result.Healthy)

	delete(products.templates, "SEO-AUDIT")
	result = svc.checkCatalog(context.Background())
	assert.Equal(t, StatusWarn, result.Status)
	assert.False(t, result.Healthy)
}

func TestCheckStripeStatuses(t *testing.T) {
	system := &fakeSystemRepo{}
	svc := NewHealthService(nil, system, newFakeProductRepo(), "")

	result := svc.checkStripe(context.Background())
	assert.Equal(t, StatusFail, result.Status)

	system.provider = &entity.PaymentProvider{ID: 1, Name: "Stripe", State: "test"}
	result = svc.checkStripe(context.Background())
	assert.Equal(t, StatusWarn, result.Status)

	system.provider.State = entity.ProviderEnabled
	result = svc.checkStripe(context.Background())
	assert.Equal(t, StatusOK, result.Status)
	assert.True(t, result.Healthy)
}

func TestCheckPortalModule(t *testing.T) {
	system := &fakeSystemRepo{modules: map[string]bool{"portal": true}}
	svc := NewHealthService(nil, system, newFakeProductRepo(), "")

	result := svc.checkPortalModule(context.Background())
	assert.True(t, result.Healthy)

	system.modules["portal"] = false
	result = svc.checkPortalModule(context.Background())
	assert.Equal(t, StatusFail, result.Status)
}

func TestCheckAutomation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewHealthService(nil, &fakeSystemRepo{}, newFakeProductRepo(), server.URL)
	result := svc.checkAutomation(context.Background())
	assert.True(t, result.Healthy)

	down := NewHealthService(nil, &fakeSystemRepo{}, newFakeProductRepo(), "http://127.0.0.1:1")
	result = down.checkAutomation(context.Background())
	assert.Equal(t, StatusFail, result.Status)
}
