package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

// CheckStatus is the outcome of one health check.
type CheckStatus string

const (
	StatusOK   CheckStatus = "ok"
	StatusWarn CheckStatus = "warn"
	StatusFail CheckStatus = "fail"
)

// CheckResult is one named health check outcome.
type CheckResult struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Detail  string      `json:"detail"`
	Healthy bool        `json:"healthy"`
}

// HealthService probes the integration's moving parts: the ERP, the portal
// module, the payment provider, the automation platform and the catalog.
type HealthService struct {
	client        *odoo.Client
	systemRepo    repository.SystemRepository
	productRepo   repository.ProductRepository
	automationURL string
	httpClient    *http.Client
	log           zerolog.Logger
}

// NewHealthService creates a new health service
func NewHealthService(
	client *odoo.Client,
	systemRepo repository.SystemRepository,
	productRepo repository.ProductRepository,
	automationURL string,
) *HealthService {
	return &HealthService{
		client:        client,
		systemRepo:    systemRepo,
		productRepo:   productRepo,
		automationURL: automationURL,
		httpClient:    &http.Client{Timeout: 5 * time.Second},
		log:           logger.WithComponent("health"),
	}
}

// Probe is the lightweight liveness check behind GET /health: can we
// authenticate against the ERP.
func (s *HealthService) Probe(ctx context.Context) error {
	_, err := s.client.Authenticate(ctx)
	return err
}

// CheckAll runs the full check suite. The second return value is true only
// when every check passed.
func (s *HealthService) CheckAll(ctx context.Context) ([]CheckResult, bool) {
	checks := []func(context.Context) CheckResult{
		s.checkServer,
		s.checkAuth,
		s.checkPortalModule,
		s.checkStripe,
		s.checkAutomation,
		s.checkCatalog,
	}

	results := make([]CheckResult, 0, len(checks))
	allHealthy := true
	for _, check := range checks {
		result := check(ctx)
		if !result.Healthy {
			allHealthy = false
		}
		results = append(results, result)
	}
	return results, allHealthy
}

func (s *HealthService) checkServer(ctx context.Context) CheckResult {
	version, err := s.systemRepo.Version(ctx)
	if err != nil {
		return CheckResult{Name: "Odoo Server", Status: StatusFail, Detail: err.Error()}
	}
	return CheckResult{Name: "Odoo Server", Status: StatusOK, Detail: "Odoo " + version + " responding", Healthy: true}
}

func (s *HealthService) checkAuth(ctx context.Context) CheckResult {
	uid, err := s.client.Authenticate(ctx)
	if err != nil {
		return CheckResult{Name: "Odoo Auth", Status: StatusFail, Detail: err.Error()}
	}
	return CheckResult{Name: "Odoo Auth", Status: StatusOK, Detail: fmt.Sprintf("authenticated (uid: %d)", uid), Healthy: true}
}

func (s *HealthService) checkPortalModule(ctx context.Context) CheckResult {
	installed, err := s.systemRepo.ModuleInstalled(ctx, "portal")
	if err != nil {
		return CheckResult{Name: "Portal Module", Status: StatusFail, Detail: err.Error()}
	}
	if !installed {
		return CheckResult{Name: "Portal Module", Status: StatusFail, Detail: "portal module not installed"}
	}
	return CheckResult{Name: "Portal Module", Status: StatusOK, Detail: "portal module installed", Healthy: true}
}

func (s *HealthService) checkStripe(ctx context.Context) CheckResult {
	provider, err := s.systemRepo.ProviderByCode(ctx, "stripe")
	if err != nil {
		return CheckResult{Name: "Stripe Provider", Status: StatusFail, Detail: err.Error()}
	}
	if provider == nil {
		return CheckResult{Name: "Stripe Provider", Status: StatusFail, Detail: "stripe provider not found, install payment_stripe module"}
	}
	if provider.State != entity.ProviderEnabled {
		return CheckResult{Name: "Stripe Provider", Status: StatusWarn, Detail: "provider exists but state is " + provider.State}
	}
	return CheckResult{Name: "Stripe Provider", Status: StatusOK, Detail: "stripe provider enabled", Healthy: true}
}

func (s *HealthService) checkAutomation(ctx context.Context) CheckResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.automationURL+"/healthz", nil)
	if err != nil {
		return CheckResult{Name: "n8n Automation", Status: StatusFail, Detail: err.Error()}
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return CheckResult{Name: "n8n Automation", Status: StatusFail, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CheckResult{Name: "n8n Automation", Status: StatusFail, Detail: fmt.Sprintf("returned status %d", resp.StatusCode)}
	}
	return CheckResult{Name: "n8n Automation", Status: StatusOK, Detail: "responding at " + s.automationURL, Healthy: true}
}

func (s *HealthService) checkCatalog(ctx context.Context) CheckResult {
	prefix, codes := CatalogCodes()
	leadProducts, err := s.productRepo.ListTemplatesByPrefix(ctx, prefix)
	if err != nil {
		return CheckResult{Name: "Product Catalog", Status: StatusFail, Detail: err.Error()}
	}
	others, err := s.productRepo.ListTemplatesByCodes(ctx, codes)
	if err != nil {
		return CheckResult{Name: "Product Catalog", Status: StatusFail, Detail: err.Error()}
	}

	total := len(leadProducts) + len(others)
	switch {
	case total >= ExpectedCatalogSize:
		return CheckResult{Name: "Product Catalog", Status: StatusOK, Detail: fmt.Sprintf("%d products found", total), Healthy: true}
	case total > 0:
		return CheckResult{Name: "Product Catalog", Status: StatusWarn, Detail: fmt.Sprintf("only %d/%d expected products found", total, ExpectedCatalogSize)}
	default:
		return CheckResult{Name: "Product Catalog", Status: StatusFail, Detail: "no products found, run seed-products"}
	}
}
