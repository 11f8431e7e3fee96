package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	domainRepo "github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
)

type systemRepository struct {
	client *odoo.Client
}

// NewSystemRepository creates a repository for server and module introspection
func NewSystemRepository(client *odoo.Client) domainRepo.SystemRepository {
	return &systemRepository{client: client}
}

func (r *systemRepository) Version(ctx context.Context) (string, error) {
	return r.client.Version(ctx)
}

func (r *systemRepository) ModuleInstalled(ctx context.Context, name string) (bool, error) {
	domain := []interface{}{
		cond("name", "=", name),
		cond("state", "=", "installed"),
	}
	count, err := r.client.SearchCount(ctx, "ir.module.module", domain)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *systemRepository) ProviderByCode(ctx context.Context, code string) (*entity.PaymentProvider, error) {
	domain := []interface{}{cond("code", "=", code)}
	records, err := r.client.SearchRead(ctx, "payment.provider", domain, []string{"name", "state"}, map[string]interface{}{"limit": 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &entity.PaymentProvider{
		ID:    recInt64(records[0], "id"),
		Name:  recString(records[0], "name"),
		State: recString(records[0], "state"),
	}, nil
}

func (r *systemRepository) EnableStripeProvider(ctx context.Context, id int64, secretKey, publishableKey string) error {
	values := map[string]interface{}{
		"state":                  entity.ProviderEnabled,
		"stripe_secret_key":      secretKey,
		"stripe_publishable_key": publishableKey,
	}
	return r.client.Write(ctx, "payment.provider", []int64{id}, values)
}

type portalRepository struct {
	client *odoo.Client
}

// NewPortalRepository creates a repository for portal access grants
func NewPortalRepository(client *odoo.Client) domainRepo.PortalRepository {
	return &portalRepository{client: client}
}

// Invite grants portal access through the portal wizard, which emails each
// partner a signup link.
func (r *portalRepository) Invite(ctx context.Context, partnerIDs []int64) error {
	ids := make([]interface{}, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		ids = append(ids, id)
	}
	wizardID, err := r.client.Create(ctx, "portal.wizard", map[string]interface{}{
		"partner_ids": []interface{}{[]interface{}{6, 0, ids}},
	})
	if err != nil {
		return err
	}
	err = r.client.Call(ctx, "portal.wizard", "action_apply", []int64{wizardID})
	if err != nil && odoo.IsNilAck(err) {
		return nil
	}
	return err
}
