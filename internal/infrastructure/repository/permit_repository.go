package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	domainRepo "github.com/aiqso/odoo-bridge/internal/domain/repository"
)

type permitRepository struct {
	db *gorm.DB
}

// NewPermitRepository creates a repository over the scraper's permits database
func NewPermitRepository(db *gorm.DB) domainRepo.PermitRepository {
	return &permitRepository{db: db}
}

func (r *permitRepository) EnrichedLeads(ctx context.Context, city string, minScore int) ([]entity.EnrichedLead, error) {
	var leads []entity.EnrichedLead

	query := r.db.WithContext(ctx).
		Table("permit_leads pl").
		Select(`pl.id as lead_id,
			p.external_permit_id as permit_number,
			p.city_name,
			p.address_line1,
			p.project_valuation,
			p.permit_type,
			p.owner_name,
			pl.contact_name,
			pl.contact_email,
			pl.contact_phone,
			pl.company_name,
			pl.contact_role,
			pl.score,
			pl.valuation_tier`).
		Joins("JOIN permits p ON pl.permit_id = p.id").
		Where("pl.is_commercial = true").
		Where("pl.score >= ?", minScore).
		Where("(pl.contact_email IS NOT NULL AND pl.contact_email != '') OR (pl.contact_phone IS NOT NULL AND pl.contact_phone != '')")

	if city != "" {
		query = query.Where("UPPER(p.city_name) = UPPER(?)", city)
	}

	if err := query.Order("pl.updated_at DESC").Scan(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}
