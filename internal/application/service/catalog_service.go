package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/pkg/apperror"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

// catalogProducts is the service catalog seeded into the ERP. Entries are
// keyed by default_code, which makes seeding idempotent.
var catalogProducts = []entity.ProductTemplate{
	{
		Name:          "Lead Generation List - DFW",
		Type:          "service",
		ListPrice:     149.00,
		InvoicePolicy: "order",
		DefaultCode:   "LEAD-DFW",
		DescriptionSale: "Monthly curated lead list for DFW metro area. " +
			"Includes commercial permits, business licenses, and property data.",
		CategoryID: 1,
	},
	{
		Name:          "Lead Generation List - Multi-City",
		Type:          "service",
		ListPrice:     299.00,
		InvoicePolicy: "order",
		DefaultCode:   "LEAD-MULTI",
		DescriptionSale: "Monthly curated lead list for multiple metro areas. " +
			"Covers DFW, Houston, Austin, San Antonio, and more.",
		CategoryID: 1,
	},
	{
		Name:          "AI Automation Consultation",
		Type:          "service",
		ListPrice:     199.00,
		InvoicePolicy: "delivery",
		DefaultCode:   "CONSULT-AI",
		DescriptionSale: "1-hour AI automation consultation session. " +
			"Discuss workflow optimization, AI integration, and automation strategy.",
		CategoryID: 1,
	},
	{
		Name:          "SEO Audit Report",
		Type:          "service",
		ListPrice:     499.00,
		InvoicePolicy: "order",
		DefaultCode:   "SEO-AUDIT",
		DescriptionSale: "Comprehensive SEO audit with actionable recommendations. " +
			"Includes technical analysis, content review, and competitor research.",
		CategoryID: 1,
	},
	{
		Name:          "Custom Workflow Development",
		Type:          "service",
		ListPrice:     150.00,
		InvoicePolicy: "delivery",
		DefaultCode:   "DEV-WORKFLOW",
		DescriptionSale: "Per-hour custom n8n/automation workflow development. " +
			"Build integrations, automate processes, and connect your tools.",
		CategoryID: 1,
	},
	{
		Name:          "Enterprise Support Plan",
		Type:          "service",
		ListPrice:     999.00,
		InvoicePolicy: "order",
		DefaultCode:   "SUPPORT-ENT",
		DescriptionSale: "Monthly enterprise support with priority response. " +
			"Includes dedicated support, SLA guarantees, and custom integrations.",
		CategoryID: 1,
	},
}

// CatalogCodes returns the default codes of the full catalog, lead-list
// products first.
func CatalogCodes() (prefix string, codes []string) {
	for _, p := range catalogProducts {
		if len(p.DefaultCode) < 5 || p.DefaultCode[:5] != "LEAD-" {
			codes = append(codes, p.DefaultCode)
		}
	}
	return "LEAD-", codes
}

// ExpectedCatalogSize is the number of products a fully seeded catalog holds.
var ExpectedCatalogSize = len(catalogProducts)

// CatalogService seeds and lists the service catalog.
type CatalogService struct {
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		log:         logger.WithComponent("catalog"),
	}
}

// SeedResult reports what a seeding run did.
type SeedResult struct {
	Created []string
	Skipped []string
}

// Seed creates any catalog product that does not exist yet, keyed by
// default_code. Safe to run repeatedly.
func (s *CatalogService) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}
	for i := range catalogProducts {
		tmpl := catalogProducts[i]
		exists, err := s.productRepo.TemplateExists(ctx, tmpl.DefaultCode)
		if err != nil {
			return nil, apperror.NewUpstreamError(err)
		}
		if exists {
			result.Skipped = append(result.Skipped, tmpl.Name)
			continue
		}
		id, err := s.productRepo.CreateTemplate(ctx, &tmpl)
		if err != nil {
			return nil, apperror.NewUpstreamError(err)
		}
		s.log.Info().Int64("template_id", id).Str("code", tmpl.DefaultCode).Msg("created product")
		result.Created = append(result.Created, tmpl.Name)
	}
	return result, nil
}

// List returns the catalog products currently present in the ERP.
func (s *CatalogService) List(ctx context.Context) ([]entity.Product, error) {
	prefix, codes := CatalogCodes()
	leadProducts, err := s.productRepo.ListTemplatesByPrefix(ctx, prefix)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	others, err := s.productRepo.ListTemplatesByCodes(ctx, codes)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	return append(leadProducts, others...), nil
}
