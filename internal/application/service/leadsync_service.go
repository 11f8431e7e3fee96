package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/pkg/apperror"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

// DefaultMinScore is the minimum enrichment score a permit lead needs before
// it is worth syncing into the CRM.
const DefaultMinScore = 50

// LeadSyncService pushes enriched permit leads from the scraper's PostgreSQL
// database into the CRM, matching existing leads by the bracketed permit
// number in their name.
type LeadSyncService struct {
	permitRepo  repository.PermitRepository
	leadRepo    repository.LeadRepository
	partnerRepo repository.PartnerRepository
	log         zerolog.Logger
}

// NewLeadSyncService creates a new lead sync service
func NewLeadSyncService(
	permitRepo repository.PermitRepository,
	leadRepo repository.LeadRepository,
	partnerRepo repository.PartnerRepository,
) *LeadSyncService {
	return &LeadSyncService{
		permitRepo:  permitRepo,
		leadRepo:    leadRepo,
		partnerRepo: partnerRepo,
		log:         logger.WithComponent("leadsync"),
	}
}

// SyncOptions control a sync run.
type SyncOptions struct {
	City      string
	MinScore  int
	DryRun    bool
	CreateNew bool
}

// SyncStats summarizes a sync run.
type SyncStats struct {
	Updated         int
	Created         int
	NotFound        int
	Skipped         int
	ContactsUpdated int
}

// Sync fetches enriched leads and applies them to the CRM. With DryRun the
// planned changes are logged but not written.
func (s *LeadSyncService) Sync(ctx context.Context, opts SyncOptions) (*SyncStats, error) {
	minScore := opts.MinScore
	if minScore == 0 {
		minScore = DefaultMinScore
	}

	enriched, err := s.permitRepo.EnrichedLeads(ctx, opts.City, minScore)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	s.log.Info().Int("count", len(enriched)).Str("city", opts.City).Msg("fetched enriched leads")

	stats := &SyncStats{}
	for i := range enriched {
		lead := &enriched[i]
		if lead.PermitNumber == "" {
			stats.Skipped++
			continue
		}

		existing, err := s.leadRepo.FindByPermitRef(ctx, lead.PermitNumber)
		if err != nil {
			return nil, apperror.NewUpstreamError(err)
		}

		if existing == nil {
			if !opts.CreateNew {
				stats.NotFound++
				continue
			}
			if lead.ContactEmail == "" {
				stats.Skipped++
				continue
			}
			if opts.DryRun {
				s.log.Info().Str("permit", lead.PermitNumber).Str("email", lead.ContactEmail).Msg("dry run: would create lead")
				stats.Created++
				continue
			}
			if err := s.createLead(ctx, lead); err != nil {
				s.log.Warn().Err(err).Str("permit", lead.PermitNumber).Msg("lead creation failed")
				continue
			}
			stats.Created++
			continue
		}

		// Email already current means the lead was synced before.
		if existing.Email == lead.ContactEmail {
			stats.Skipped++
			continue
		}

		if opts.DryRun {
			s.log.Info().Str("permit", lead.PermitNumber).Str("email", lead.ContactEmail).Msg("dry run: would update lead")
			stats.Updated++
			continue
		}

		updated, err := s.updateLead(ctx, existing.ID, lead)
		if err != nil {
			return nil, apperror.NewUpstreamError(err)
		}
		if !updated {
			stats.Skipped++
			continue
		}
		stats.Updated++

		if lead.ContactEmail != "" {
			touched, err := s.updateContact(ctx, lead)
			if err != nil {
				s.log.Warn().Err(err).Str("email", lead.ContactEmail).Msg("contact update failed")
			} else if touched {
				stats.ContactsUpdated++
			}
		}
	}

	s.log.Info().
		Int("updated", stats.Updated).
		Int("created", stats.Created).
		Int("not_found", stats.NotFound).
		Int("skipped", stats.Skipped).
		Int("contacts_updated", stats.ContactsUpdated).
		Msg("sync complete")

	return stats, nil
}

// updateLead applies the enriched contact data and appends a dated enrichment
// note, at most once per day.
func (s *LeadSyncService) updateLead(ctx context.Context, leadID int64, lead *entity.EnrichedLead) (bool, error) {
	upd := &entity.LeadUpdate{
		Email:       lead.ContactEmail,
		Phone:       formatPhone(lead.ContactPhone),
		ContactName: lead.ContactName,
		PartnerName: lead.CompanyName,
	}

	note := s.enrichmentNote(lead)
	if note != "" {
		current, err := s.leadRepo.Description(ctx, leadID)
		if err != nil {
			return false, err
		}
		todayMarker := "--- Enriched " + time.Now().Format("2006-01-02")
		if !strings.Contains(current, todayMarker) {
			upd.Description = current + note
		}
	}

	if *upd == (entity.LeadUpdate{}) {
		return false, nil
	}
	if err := s.leadRepo.Update(ctx, leadID, upd); err != nil {
		return false, err
	}
	return true, nil
}

func (s *LeadSyncService) enrichmentNote(lead *entity.EnrichedLead) string {
	var b strings.Builder
	if lead.ContactName != "" {
		fmt.Fprintf(&b, "Contact: %s\n", lead.ContactName)
	}
	if lead.ContactRole != "" {
		fmt.Fprintf(&b, "Role: %s\n", lead.ContactRole)
	}
	if lead.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\n", lead.CompanyName)
	}
	if b.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("\n\n--- Enriched %s ---\n%s", time.Now().Format("2006-01-02 15:04"), b.String())
}

// updateContact refreshes the matching contact's phone and company link.
func (s *LeadSyncService) updateContact(ctx context.Context, lead *entity.EnrichedLead) (bool, error) {
	contact, err := s.partnerRepo.FindByEmail(ctx, lead.ContactEmail)
	if err != nil || contact == nil {
		return false, err
	}

	touched := false
	if phone := formatPhone(lead.ContactPhone); phone != "" {
		if err := s.partnerRepo.SetPhone(ctx, contact.ID, phone); err != nil {
			return false, err
		}
		touched = true
	}
	if lead.CompanyName != "" {
		company, err := s.partnerRepo.FindCompanyByName(ctx, lead.CompanyName)
		if err != nil {
			return touched, err
		}
		if company != nil {
			if err := s.partnerRepo.SetParentCompany(ctx, contact.ID, company.ID); err != nil {
				return touched, err
			}
			touched = true
		}
	}
	return touched, nil
}

func (s *LeadSyncService) createLead(ctx context.Context, lead *entity.EnrichedLead) error {
	name := ""
	if lead.PermitNumber != "" {
		name = "[" + lead.PermitNumber + "]"
	}
	if lead.CompanyName != "" {
		name += " " + lead.CompanyName
	}
	if lead.ContactName != "" {
		name += " - " + lead.ContactName
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Lead - " + lead.PermitNumber
	}

	city := lead.CityName
	if city == "" {
		city = "Unknown"
	}

	var desc []string
	if lead.PermitType != "" {
		desc = append(desc, "**Permit Type:** "+lead.PermitType)
	}
	if lead.OwnerName != "" {
		desc = append(desc, "**Property Owner:** "+lead.OwnerName)
	}
	if lead.ContactRole != "" {
		desc = append(desc, "**Contact Role:** "+lead.ContactRole)
	}
	if lead.Score != 0 {
		desc = append(desc, fmt.Sprintf("**Lead Score:** %d", lead.Score))
	}
	if lead.ValuationTier != "" {
		desc = append(desc, "**Value Tier:** "+lead.ValuationTier)
	}
	desc = append(desc, "\n**Source:** PostgreSQL Enrichment Sync")
	desc = append(desc, "**City:** "+city)
	desc = append(desc, "**Synced:** "+time.Now().Format("2006-01-02"))

	partnerName := lead.CompanyName
	if partnerName == "" {
		partnerName = lead.ContactName
	}
	if partnerName == "" {
		partnerName = city
	}

	_, err := s.leadRepo.Create(ctx, &entity.Lead{
		Name:            name,
		PartnerName:     partnerName,
		ContactName:     lead.ContactName,
		Email:           lead.ContactEmail,
		Phone:           formatPhone(lead.ContactPhone),
		Street:          lead.AddressLine1,
		ExpectedRevenue: lead.ProjectValuation,
		Description:     strings.Join(desc, "\n"),
	})
	return err
}

// formatPhone renders a bare 10-digit number as (xxx) xxx-xxxx. Anything else
// passes through unchanged.
func formatPhone(phone string) string {
	if len(phone) != 10 {
		return phone
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return phone
		}
	}
	return fmt.Sprintf("(%s) %s-%s", phone[:3], phone[3:6], phone[6:])
}
