package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	domainRepo "github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
)

var partnerFields = []string{"name", "email", "phone", "is_company", "parent_id", "customer_rank"}

type partnerRepository struct {
	client *odoo.Client
}

// NewPartnerRepository creates a res.partner repository backed by Odoo
func NewPartnerRepository(client *odoo.Client) domainRepo.PartnerRepository {
	return &partnerRepository{client: client}
}

func (r *partnerRepository) GetByID(ctx context.Context, id int64) (*entity.Partner, error) {
	records, err := r.client.Read(ctx, "res.partner", []int64{id}, partnerFields)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return decodePartner(records[0]), nil
}

func (r *partnerRepository) FindByEmail(ctx context.Context, email string) (*entity.Partner, error) {
	return r.findOne(ctx, []interface{}{cond("email", "=", email)})
}

func (r *partnerRepository) FindPersonByName(ctx context.Context, name string) (*entity.Partner, error) {
	return r.findOne(ctx, []interface{}{cond("name", "=", name), cond("is_company", "=", false)})
}

func (r *partnerRepository) FindCompanyByName(ctx context.Context, name string) (*entity.Partner, error) {
	return r.findOne(ctx, []interface{}{cond("name", "=", name), cond("is_company", "=", true)})
}

func (r *partnerRepository) findOne(ctx context.Context, domain []interface{}) (*entity.Partner, error) {
	records, err := r.client.SearchRead(ctx, "res.partner", domain, partnerFields, map[string]interface{}{"limit": 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return decodePartner(records[0]), nil
}

func (r *partnerRepository) Create(ctx context.Context, partner *entity.Partner) (int64, error) {
	values := map[string]interface{}{
		"name":          partner.Name,
		"customer_rank": partner.CustomerRank,
	}
	if partner.Email != "" {
		values["email"] = partner.Email
	}
	if partner.Phone != "" {
		values["phone"] = partner.Phone
	}
	if partner.IsCompany {
		values["is_company"] = true
		values["company_type"] = "company"
	} else if partner.ParentID != 0 || len(partner.CategoryIDs) > 0 {
		// Imported contacts are explicitly persons; plain invoice
		// customers keep Odoo's default.
		values["is_company"] = false
		values["company_type"] = "person"
	}
	if partner.CompanyName != "" {
		values["company_name"] = partner.CompanyName
	}
	if partner.ParentID != 0 {
		values["parent_id"] = partner.ParentID
	}
	if partner.Comment != "" {
		values["comment"] = partner.Comment
	}
	if len(partner.CategoryIDs) > 0 {
		values["category_id"] = linkCommands(partner.CategoryIDs)
	}

	id, err := r.client.Create(ctx, "res.partner", values)
	if err != nil {
		return 0, err
	}
	partner.ID = id
	return id, nil
}

func (r *partnerRepository) AddCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	return r.client.Write(ctx, "res.partner", []int64{id}, map[string]interface{}{
		"category_id": linkCommands(categoryIDs),
	})
}

func (r *partnerRepository) SetParentCompany(ctx context.Context, id, parentID int64) error {
	return r.client.Write(ctx, "res.partner", []int64{id}, map[string]interface{}{
		"parent_id": parentID,
	})
}

func (r *partnerRepository) SetPhone(ctx context.Context, id int64, phone string) error {
	return r.client.Write(ctx, "res.partner", []int64{id}, map[string]interface{}{
		"phone": phone,
	})
}

func decodePartner(rec map[string]interface{}) *entity.Partner {
	return &entity.Partner{
		ID:           recInt64(rec, "id"),
		Name:         recString(rec, "name"),
		Email:        recString(rec, "email"),
		Phone:        recString(rec, "phone"),
		IsCompany:    recBool(rec, "is_company"),
		ParentID:     relID(rec, "parent_id"),
		CustomerRank: int(recInt64(rec, "customer_rank")),
	}
}

// linkCommands builds (4, id) link commands for a many2many write, which add
// tags without replacing the existing set.
func linkCommands(ids []int64) []interface{} {
	cmds := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, []interface{}{4, id})
	}
	return cmds
}

type categoryRepository struct {
	client *odoo.Client
}

// NewCategoryRepository creates a res.partner.category repository backed by Odoo
func NewCategoryRepository(client *odoo.Client) domainRepo.CategoryRepository {
	return &categoryRepository{client: client}
}

func (r *categoryRepository) FindByName(ctx context.Context, name string, parentID int64) (*entity.Category, error) {
	domain := []interface{}{cond("name", "=", name)}
	if parentID != 0 {
		domain = append(domain, cond("parent_id", "=", parentID))
	}
	records, err := r.client.SearchRead(ctx, "res.partner.category", domain, []string{"name", "parent_id"}, map[string]interface{}{"limit": 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &entity.Category{
		ID:       recInt64(records[0], "id"),
		Name:     recString(records[0], "name"),
		ParentID: relID(records[0], "parent_id"),
	}, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) (int64, error) {
	values := map[string]interface{}{"name": category.Name}
	if category.ParentID != 0 {
		values["parent_id"] = category.ParentID
	}
	if category.Color != 0 {
		values["color"] = category.Color
	}
	id, err := r.client.Create(ctx, "res.partner.category", values)
	if err != nil {
		return 0, err
	}
	category.ID = id
	return id, nil
}
