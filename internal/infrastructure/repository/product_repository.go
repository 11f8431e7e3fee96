package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	domainRepo "github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
)

var templateFields = []string{"name", "default_code", "list_price", "type"}

type productRepository struct {
	client *odoo.Client
}

// NewProductRepository creates a product repository backed by Odoo
func NewProductRepository(client *odoo.Client) domainRepo.ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) FindVariantByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.findVariant(ctx, []interface{}{cond("default_code", "=", code)})
}

func (r *productRepository) FindVariantByTemplate(ctx context.Context, templateID int64) (*entity.Product, error) {
	return r.findVariant(ctx, []interface{}{cond("product_tmpl_id", "=", templateID)})
}

func (r *productRepository) findVariant(ctx context.Context, domain []interface{}) (*entity.Product, error) {
	records, err := r.client.SearchRead(ctx, "product.product", domain, []string{"id"}, map[string]interface{}{"limit": 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &entity.Product{ID: recInt64(records[0], "id")}, nil
}

func (r *productRepository) TemplateExists(ctx context.Context, code string) (bool, error) {
	ids, err := r.client.Search(ctx, "product.template", []interface{}{cond("default_code", "=", code)}, nil)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *productRepository) CreateTemplate(ctx context.Context, tmpl *entity.ProductTemplate) (int64, error) {
	values := map[string]interface{}{
		"name":           tmpl.Name,
		"type":           tmpl.Type,
		"default_code":   tmpl.DefaultCode,
		"list_price":     tmpl.ListPrice,
		"invoice_policy": tmpl.InvoicePolicy,
	}
	if tmpl.DescriptionSale != "" {
		values["description_sale"] = tmpl.DescriptionSale
	}
	if tmpl.CategoryID != 0 {
		values["categ_id"] = tmpl.CategoryID
	}
	return r.client.Create(ctx, "product.template", values)
}

func (r *productRepository) ListTemplatesByPrefix(ctx context.Context, prefix string) ([]entity.Product, error) {
	return r.listTemplates(ctx, []interface{}{cond("default_code", "like", prefix+"%")})
}

func (r *productRepository) ListTemplatesByCodes(ctx context.Context, codes []string) ([]entity.Product, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	// ("|", ..) prefix notation: n-1 leading ORs chain n conditions.
	domain := make([]interface{}, 0, 2*len(codes)-1)
	for i := 0; i < len(codes)-1; i++ {
		domain = append(domain, "|")
	}
	for _, code := range codes {
		domain = append(domain, cond("default_code", "=", code))
	}
	return r.listTemplates(ctx, domain)
}

func (r *productRepository) listTemplates(ctx context.Context, domain []interface{}) ([]entity.Product, error) {
	records, err := r.client.SearchRead(ctx, "product.template", domain, templateFields, nil)
	if err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, entity.Product{
			ID:          recInt64(rec, "id"),
			Name:        recString(rec, "name"),
			DefaultCode: recString(rec, "default_code"),
			ListPrice:   recFloat(rec, "list_price"),
			Type:        recString(rec, "type"),
		})
	}
	return products, nil
}
