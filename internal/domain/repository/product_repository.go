package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

// ProductRepository defines the typed operations against product.product and
// product.template.
type ProductRepository interface {
	FindVariantByCode(ctx context.Context, code string) (*entity.Product, error)
	// FindVariantByTemplate reads back the sellable variant Odoo derives
	// from a template.
	FindVariantByTemplate(ctx context.Context, templateID int64) (*entity.Product, error)
	TemplateExists(ctx context.Context, code string) (bool, error)
	CreateTemplate(ctx context.Context, tmpl *entity.ProductTemplate) (int64, error)
	ListTemplatesByPrefix(ctx context.Context, prefix string) ([]entity.Product, error)
	ListTemplatesByCodes(ctx context.Context, codes []string) ([]entity.Product, error)
}
