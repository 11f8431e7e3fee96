package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	domainRepo "github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
)

type leadRepository struct {
	client *odoo.Client
}

// NewLeadRepository creates a CRM lead repository backed by Odoo
func NewLeadRepository(client *odoo.Client) domainRepo.LeadRepository {
	return &leadRepository{client: client}
}

func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) (int64, error) {
	values := map[string]interface{}{
		"name": lead.Name,
		"type": "lead",
	}
	if lead.PartnerID != 0 {
		values["partner_id"] = lead.PartnerID
	}
	if lead.PartnerName != "" {
		values["partner_name"] = lead.PartnerName
	}
	if lead.ContactName != "" {
		values["contact_name"] = lead.ContactName
	}
	if lead.Email != "" {
		values["email_from"] = lead.Email
	}
	if lead.Phone != "" {
		values["phone"] = lead.Phone
	}
	if lead.Street != "" {
		values["street"] = lead.Street
	}
	if lead.ExpectedRevenue != 0 {
		values["expected_revenue"] = lead.ExpectedRevenue
	}
	if lead.Description != "" {
		values["description"] = lead.Description
	}
	return r.client.Create(ctx, "crm.lead", values)
}

func (r *leadRepository) FindByPermitRef(ctx context.Context, permitNumber string) (*entity.Lead, error) {
	domain := []interface{}{cond("name", "ilike", "["+permitNumber+"]")}
	fields := []string{"name", "partner_name", "contact_name", "email_from", "phone"}
	records, err := r.client.SearchRead(ctx, "crm.lead", domain, fields, map[string]interface{}{"limit": 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]
	return &entity.Lead{
		ID:          recInt64(rec, "id"),
		Name:        recString(rec, "name"),
		PartnerName: recString(rec, "partner_name"),
		ContactName: recString(rec, "contact_name"),
		Email:       recString(rec, "email_from"),
		Phone:       recString(rec, "phone"),
	}, nil
}

func (r *leadRepository) Description(ctx context.Context, id int64) (string, error) {
	records, err := r.client.Read(ctx, "crm.lead", []int64{id}, []string{"description"})
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}
	return recString(records[0], "description"), nil
}

func (r *leadRepository) Update(ctx context.Context, id int64, upd *entity.LeadUpdate) error {
	values := map[string]interface{}{}
	if upd.Email != "" {
		values["email_from"] = upd.Email
	}
	if upd.Phone != "" {
		values["phone"] = upd.Phone
	}
	if upd.ContactName != "" {
		values["contact_name"] = upd.ContactName
	}
	if upd.PartnerName != "" {
		values["partner_name"] = upd.PartnerName
	}
	if upd.Description != "" {
		values["description"] = upd.Description
	}
	if len(values) == 0 {
		return nil
	}
	return r.client.Write(ctx, "crm.lead", []int64{id}, values)
}
