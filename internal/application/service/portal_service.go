package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/pkg/apperror"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

// PortalService invites customers to the self-service portal.
type PortalService struct {
	partnerRepo repository.PartnerRepository
	portalRepo  repository.PortalRepository
	log         zerolog.Logger
}

// NewPortalService creates a new portal service
func NewPortalService(partnerRepo repository.PartnerRepository, portalRepo repository.PortalRepository) *PortalService {
	return &PortalService{
		partnerRepo: partnerRepo,
		portalRepo:  portalRepo,
		log:         logger.WithComponent("portal"),
	}
}

// InviteResult reports the partner the invitation went to.
type InviteResult struct {
	PartnerID int64
	Created   bool
}

// Invite finds or creates the partner by email and sends a portal invitation.
func (s *PortalService) Invite(ctx context.Context, email, name, company string) (*InviteResult, error) {
	partner, err := s.partnerRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}

	result := &InviteResult{}
	if partner != nil {
		result.PartnerID = partner.ID
	} else {
		id, err := s.partnerRepo.Create(ctx, &entity.Partner{
			Name:         name,
			Email:        email,
			CompanyName:  company,
			CustomerRank: 1,
		})
		if err != nil {
			return nil, apperror.NewUpstreamError(err)
		}
		result.PartnerID = id
		result.Created = true
		s.log.Info().Int64("partner_id", id).Str("email", email).Msg("created partner")
	}

	if err := s.portalRepo.Invite(ctx, []int64{result.PartnerID}); err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	s.log.Info().Int64("partner_id", result.PartnerID).Str("email", email).Msg("portal invitation sent")
	return result, nil
}
