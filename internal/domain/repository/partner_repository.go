package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

// PartnerRepository defines the typed operations against res.partner. Lookups
// return nil (not an error) when no record matches.
type PartnerRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Partner, error)
	FindByEmail(ctx context.Context, email string) (*entity.Partner, error)
	FindPersonByName(ctx context.Context, name string) (*entity.Partner, error)
	FindCompanyByName(ctx context.Context, name string) (*entity.Partner, error)
	Create(ctx context.Context, partner *entity.Partner) (int64, error)
	// AddCategories links category tags to a partner without removing
	// existing ones.
	AddCategories(ctx context.Context, id int64, categoryIDs []int64) error
	SetParentCompany(ctx context.Context, id, parentID int64) error
	SetPhone(ctx context.Context, id int64, phone string) error
}

// CategoryRepository defines the typed operations against res.partner.category.
type CategoryRepository interface {
	// FindByName looks up a category by name, scoped to a parent when
	// parentID is non-zero.
	FindByName(ctx context.Context, name string, parentID int64) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) (int64, error)
}
