package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

// LeadRepository defines the typed operations against crm.lead.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) (int64, error)
	// FindByPermitRef locates a lead whose name carries the bracketed
	// permit number, e.g. "[PB2024-1234] Acme - Jane".
	FindByPermitRef(ctx context.Context, permitNumber string) (*entity.Lead, error)
	Description(ctx context.Context, id int64) (string, error)
	Update(ctx context.Context, id int64, u *entity.LeadUpdate) error
}

// PermitRepository reads enriched permit leads from the scraper's PostgreSQL
// database. The bridge never writes to it.
type PermitRepository interface {
	// EnrichedLeads returns commercial leads at or above minScore that have
	// contact info, newest first. city filters case-insensitively when
	// non-empty.
	EnrichedLeads(ctx context.Context, city string, minScore int) ([]entity.EnrichedLead, error)
}
