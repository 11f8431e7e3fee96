package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/pkg/apperror"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

// categoryColors maps category names to Odoo tag colors.
var categoryColors = map[string]int{
	"Lead List":       10,
	"For Sale":        11,
	"Outreach Target": 4,
	"Construction":    2,
	"Premium":         6,
	"High Value":      5,
	"Medium Value":    3,
	"Low Value":       1,
}

// tierCategories maps CSV valuation tiers to value tier category names.
var tierCategories = map[string]string{
	"PREMIUM": "Premium",
	"HIGH":    "High Value",
	"MEDIUM":  "Medium Value",
	"LOW":     "Low Value",
}

// LeadImportService imports lead-list CSV exports into the CRM: a category
// tree for tagging, companies and contacts under a per-list umbrella, and one
// pipeline lead per usable row.
type LeadImportService struct {
	partnerRepo  repository.PartnerRepository
	categoryRepo repository.CategoryRepository
	leadRepo     repository.LeadRepository
	log          zerolog.Logger

	// per-run caches, keyed by category name and company name
	categories map[string]int64
	companies  map[string]int64
}

// NewLeadImportService creates a new lead import service
func NewLeadImportService(
	partnerRepo repository.PartnerRepository,
	categoryRepo repository.CategoryRepository,
	leadRepo repository.LeadRepository,
) *LeadImportService {
	return &LeadImportService{
		partnerRepo:  partnerRepo,
		categoryRepo: categoryRepo,
		leadRepo:     leadRepo,
		log:          logger.WithComponent("leadimport"),
	}
}

// ImportStats summarizes an import run.
type ImportStats struct {
	CompaniesSeen int
	ContactsSeen  int
	LeadsCreated  int
	Skipped       int
}

// importCategories holds the resolved category ids for one run.
type importCategories struct {
	parent     int64
	forSale    int64
	outreach   int64
	industry   int64
	valueTiers map[string]int64
}

// Import reads a lead-list CSV and creates the tagging structure, companies,
// contacts and pipeline leads. Row-level failures are counted and skipped,
// never fatal.
func (s *LeadImportService) Import(ctx context.Context, r io.Reader, listName, industry string) (*ImportStats, error) {
	s.categories = make(map[string]int64)
	s.companies = make(map[string]int64)

	cats, err := s.setupCategories(ctx, industry)
	if err != nil {
		return nil, err
	}
	if err := s.setupListCompany(ctx, listName, industry, cats); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("cannot read CSV header: %v", err))
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	stats := &ImportStats{}
	seenCompanies := make(map[int64]struct{})
	seenContacts := make(map[int64]struct{})

	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.log.Warn().Err(err).Int("row", rowNum).Msg("bad CSV row")
			stats.Skipped++
			continue
		}

		row := newCSVRow(columns, record)
		companyID, contactID, created, err := s.importRow(ctx, row, listName, cats)
		if err != nil {
			s.log.Warn().Err(err).Int("row", rowNum).Msg("row import failed")
			stats.Skipped++
			continue
		}
		if companyID == 0 && contactID == 0 && !created {
			stats.Skipped++
			continue
		}
		if companyID != 0 {
			seenCompanies[companyID] = struct{}{}
		}
		if contactID != 0 {
			seenContacts[contactID] = struct{}{}
		}
		if created {
			stats.LeadsCreated++
		}
	}

	stats.CompaniesSeen = len(seenCompanies)
	stats.ContactsSeen = len(seenContacts)

	s.log.Info().
		Int("companies", stats.CompaniesSeen).
		Int("contacts", stats.ContactsSeen).
		Int("leads", stats.LeadsCreated).
		Int("skipped", stats.Skipped).
		Str("list", listName).
		Msg("import complete")

	return stats, nil
}

func (s *LeadImportService) importRow(ctx context.Context, row csvRow, listName string, cats *importCategories) (companyID, contactID int64, created bool, err error) {
	contactName := row.get("contact_name", "Contact Name")
	if contactName == "" || contactName == "OUT TO BID" {
		return 0, 0, false, nil
	}

	email := row.get("contact_email", "Email")
	phone := row.get("contact_phone", "Phone")
	companyName := row.get("company_name", "Contact Company")
	ownerName := row.get("owner_name", "Owner")
	permitNumber := row.get("permit_number", "Permit #")
	permitType := row.get("permit_type", "Type")
	contactRole := row.get("contact_role", "Contact Role")
	score := row.get("score", "Score")
	valuation := parseValuation(row.get("project_valuation", "Valuation"))
	tier := strings.ToUpper(row.get("valuation_tier", "Value Tier"))

	contactCats := []int64{cats.parent}
	if cats.industry != 0 {
		contactCats = append(contactCats, cats.industry)
	}
	if tierName, ok := tierCategories[tier]; ok {
		if id, ok := cats.valueTiers[tierName]; ok {
			contactCats = append(contactCats, id)
		}
	}

	if companyName != "" {
		companyID, err = s.getOrCreateCompany(ctx, companyName, contactCats)
		if err != nil {
			return 0, 0, false, err
		}
	}

	var notes []string
	if permitNumber != "" {
		notes = append(notes, "Permit: "+permitNumber)
	}
	if permitType != "" {
		notes = append(notes, "Type: "+permitType)
	}
	if contactRole != "" {
		notes = append(notes, "Role: "+contactRole)
	}
	if ownerName != "" {
		notes = append(notes, "Property Owner: "+ownerName)
	}
	if score != "" {
		notes = append(notes, "Lead Score: "+score)
	}

	contactID, err = s.getOrCreateContact(ctx, contactName, email, phone, companyID, contactCats, strings.Join(notes, "\n"))
	if err != nil {
		return 0, 0, false, err
	}

	leadName := contactName
	if companyName != "" {
		leadName = companyName + " - " + contactName
	}
	if permitNumber != "" {
		leadName = "[" + permitNumber + "] " + leadName
	}

	var desc []string
	if permitType != "" {
		desc = append(desc, "**Permit Type:** "+permitType)
	}
	if ownerName != "" {
		desc = append(desc, "**Property Owner:** "+ownerName)
	}
	if contactRole != "" {
		desc = append(desc, "**Contact Role:** "+titleCase(contactRole))
	}
	if tier != "" {
		desc = append(desc, "**Value Tier:** "+tier)
	}
	if score != "" {
		desc = append(desc, "**Lead Score:** "+score)
	}
	desc = append(desc, "\n**Source:** "+listName)
	desc = append(desc, "**Imported:** "+time.Now().Format("2006-01-02"))

	partnerName := companyName
	if partnerName == "" {
		partnerName = contactName
	}

	_, err = s.leadRepo.Create(ctx, &entity.Lead{
		Name:            leadName,
		PartnerID:       contactID,
		PartnerName:     partnerName,
		ContactName:     contactName,
		Email:           email,
		Phone:           phone,
		ExpectedRevenue: valuation,
		Description:     strings.Join(desc, "\n"),
	})
	if err != nil {
		return companyID, contactID, false, err
	}
	return companyID, contactID, true, nil
}

func (s *LeadImportService) setupCategories(ctx context.Context, industry string) (*importCategories, error) {
	parent, err := s.getOrCreateCategory(ctx, "Lead List", 0)
	if err != nil {
		return nil, err
	}

	cats := &importCategories{parent: parent, valueTiers: make(map[string]int64)}

	if cats.forSale, err = s.getOrCreateCategory(ctx, "For Sale", parent); err != nil {
		return nil, err
	}
	if cats.outreach, err = s.getOrCreateCategory(ctx, "Outreach Target", parent); err != nil {
		return nil, err
	}
	if industry != "" {
		if cats.industry, err = s.getOrCreateCategory(ctx, industry, parent); err != nil {
			return nil, err
		}
	}
	for _, tier := range []string{"Premium", "High Value", "Medium Value", "Low Value"} {
		id, err := s.getOrCreateCategory(ctx, tier, parent)
		if err != nil {
			return nil, err
		}
		cats.valueTiers[tier] = id
	}
	return cats, nil
}

func (s *LeadImportService) getOrCreateCategory(ctx context.Context, name string, parentID int64) (int64, error) {
	if id, ok := s.categories[name]; ok {
		return id, nil
	}
	cat, err := s.categoryRepo.FindByName(ctx, name, parentID)
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	if cat != nil {
		s.categories[name] = cat.ID
		return cat.ID, nil
	}

	color := categoryColors[name]
	if color == 0 && parentID != 0 {
		color = categoryColors["Construction"]
	}
	id, err := s.categoryRepo.Create(ctx, &entity.Category{Name: name, ParentID: parentID, Color: color})
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	s.log.Info().Int64("category_id", id).Str("name", name).Msg("created category")
	s.categories[name] = id
	return id, nil
}

// setupListCompany ensures the "Lead Lists" umbrella company and the per-list
// company under it exist, tagged with the run's categories.
func (s *LeadImportService) setupListCompany(ctx context.Context, listName, industry string, cats *importCategories) error {
	umbrellaID, err := s.getOrCreateCompanyWith(ctx, "Lead Lists", &entity.Partner{
		Name:        "Lead Lists",
		IsCompany:   true,
		Comment:     "Parent organization for all imported lead lists",
		CategoryIDs: []int64{cats.parent},
	}, []int64{cats.parent})
	if err != nil {
		return err
	}

	listCats := []int64{cats.parent}
	if cats.industry != 0 {
		listCats = append(listCats, cats.industry)
	}
	listCats = append(listCats, cats.forSale, cats.outreach)

	_, err = s.getOrCreateCompanyWith(ctx, listName, &entity.Partner{
		Name:        listName,
		IsCompany:   true,
		ParentID:    umbrellaID,
		Comment:     "Lead list imported on " + time.Now().Format("2006-01-02 15:04"),
		CategoryIDs: listCats,
	}, listCats)
	return err
}

func (s *LeadImportService) getOrCreateCompany(ctx context.Context, name string, categoryIDs []int64) (int64, error) {
	return s.getOrCreateCompanyWith(ctx, name, &entity.Partner{
		Name:        name,
		IsCompany:   true,
		CategoryIDs: categoryIDs,
	}, categoryIDs)
}

func (s *LeadImportService) getOrCreateCompanyWith(ctx context.Context, name string, create *entity.Partner, categoryIDs []int64) (int64, error) {
	if id, ok := s.companies[name]; ok {
		return id, nil
	}
	existing, err := s.partnerRepo.FindCompanyByName(ctx, name)
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	if existing != nil {
		if err := s.partnerRepo.AddCategories(ctx, existing.ID, categoryIDs); err != nil {
			return 0, apperror.NewUpstreamError(err)
		}
		s.companies[name] = existing.ID
		return existing.ID, nil
	}

	id, err := s.partnerRepo.Create(ctx, create)
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	s.log.Info().Int64("partner_id", id).Str("name", name).Msg("created company")
	s.companies[name] = id
	return id, nil
}

// getOrCreateContact matches by email when available, which survives name
// variations across lists, falling back to an exact name match.
func (s *LeadImportService) getOrCreateContact(ctx context.Context, name, email, phone string, companyID int64, categoryIDs []int64, comment string) (int64, error) {
	var existing *entity.Partner
	var err error
	if email != "" {
		existing, err = s.partnerRepo.FindByEmail(ctx, email)
	} else {
		existing, err = s.partnerRepo.FindPersonByName(ctx, name)
	}
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	if existing != nil {
		if err := s.partnerRepo.AddCategories(ctx, existing.ID, categoryIDs); err != nil {
			return 0, apperror.NewUpstreamError(err)
		}
		return existing.ID, nil
	}

	return s.partnerRepo.Create(ctx, &entity.Partner{
		Name:        name,
		Email:       email,
		Phone:       phone,
		ParentID:    companyID,
		CategoryIDs: categoryIDs,
		Comment:     comment,
	})
}

// csvRow resolves values by any of the column names a field is known under.
type csvRow struct {
	columns map[string]int
	record  []string
}

func newCSVRow(columns map[string]int, record []string) csvRow {
	return csvRow{columns: columns, record: record}
}

func (r csvRow) get(names ...string) string {
	for _, name := range names {
		if i, ok := r.columns[name]; ok && i < len(r.record) {
			if v := strings.TrimSpace(r.record[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

// parseValuation parses a dollar amount like "$1,250,000".
func parseValuation(s string) float64 {
	s = strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
