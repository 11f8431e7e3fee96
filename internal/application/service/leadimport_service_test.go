package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

const sampleCSV = `contact_name,contact_email,contact_phone,company_name,owner_name,project_valuation,valuation_tier,score,permit_number,permit_type,contact_role
Jane Smith,jane@smithbuilders.com,2145551234,Smith Builders,City of Fort Worth,"$1,250,000",PREMIUM,85,PB2024-001,Commercial New,general contractor
Bob Jones,,,,Owner LLC,$40000,LOW,20,PB2024-002,Remodel,
OUT TO BID,,,,,,,,PB2024-003,,
,,,,,,,,PB2024-004,,
`

func TestImportCreatesCategoriesCompaniesContactsAndLeads(t *testing.T) {
	partners := newFakePartnerRepo()
	categories := newFakeCategoryRepo()
	leads := newFakeLeadRepo()
	svc := NewLeadImportService(partners, categories, leads)

	stats, err := svc.Import(context.Background(), strings.NewReader(sampleCSV), "Fort Worth Construction", "Construction")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.LeadsCreated)
	assert.Equal(t, 2, stats.Skipped)

	// category tree: parent, For Sale, Outreach Target, industry, four tiers
	assert.Contains(t, categories.created, "Lead List")
	assert.Contains(t, categories.created, "For Sale")
	assert.Contains(t, categories.created, "Outreach Target")
	assert.Contains(t, categories.created, "Construction")
	assert.Contains(t, categories.created, "Premium")
	assert.Contains(t, categories.created, "Low Value")

	assert.Equal(t, 10, categories.categories["Lead List"].Color)
	assert.Equal(t, 6, categories.categories["Premium"].Color)
	assert.Equal(t, categories.categories["Lead List"].ID, categories.categories["For Sale"].ParentID)

	// umbrella and list companies
	umbrella, err := partners.FindCompanyByName(context.Background(), "Lead Lists")
	require.NoError(t, err)
	require.NotNil(t, umbrella)
	list, err := partners.FindCompanyByName(context.Background(), "Fort Worth Construction")
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Equal(t, umbrella.ID, list.ParentID)

	// row company and contact
	company, err := partners.FindCompanyByName(context.Background(), "Smith Builders")
	require.NoError(t, err)
	require.NotNil(t, company)
	contact, err := partners.FindByEmail(context.Background(), "jane@smithbuilders.com")
	require.NoError(t, err)
	require.NotNil(t, contact)
	assert.Equal(t, company.ID, contact.ParentID)
	assert.Contains(t, contact.Comment, "Permit: PB2024-001")
	assert.Contains(t, contact.Comment, "Property Owner: City of Fort Worth")
	assert.Contains(t, contact.Comment, "Lead Score: 85")
}

func TestImportLeadNamingAndValuation(t *testing.T) {
	partners := newFakePartnerRepo()
	leads := newFakeLeadRepo()
	svc := NewLeadImportService(partners, newFakeCategoryRepo(), leads)

	_, err := svc.Import(context.Background(), strings.NewReader(sampleCSV), "FW List", "")
	require.NoError(t, err)

	require.Len(t, leads.created, 2)
	first := leads.created[0]
	assert.Equal(t, "[PB2024-001] Smith Builders - Jane Smith", first.Name)
	assert.Equal(t, float64(1250000), first.ExpectedRevenue)
	assert.Contains(t, first.Description, "**Permit Type:** Commercial New")
	assert.Contains(t, first.Description, "**Contact Role:** General Contractor")
	assert.Contains(t, first.Description, "**Source:** FW List")

	second := leads.created[1]
	assert.Equal(t, "[PB2024-002] Bob Jones", second.Name)
	assert.Equal(t, float64(40000), second.ExpectedRevenue)
}

func TestImportReusesExistingContactsByEmail(t *testing.T) {
	partners := newFakePartnerRepo(&entity.Partner{ID: 40, Name: "Jane S", Email: "jane@smithbuilders.com"})
	svc := NewLeadImportService(partners, newFakeCategoryRepo(), newFakeLeadRepo())

	stats, err := svc.Import(context.Background(), strings.NewReader(sampleCSV), "FW List", "")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.LeadsCreated)
	assert.NotEmpty(t, partners.addedCategories[40], "existing contact should be re-tagged")
	// no second Jane
	count := 0
	for _, p := range partners.partners {
		if p.Email == "jane@smithbuilders.com" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestImportAlternateColumnHeaders(t *testing.T) {
	csvData := `Contact Name,Email,Phone,Contact Company,Valuation,Value Tier,Permit #
Alice Brown,alice@x.com,8175550000,Brown Co,"$90,000",MEDIUM,FW-77
`
	leads := newFakeLeadRepo()
	svc := NewLeadImportService(newFakePartnerRepo(), newFakeCategoryRepo(), leads)

	stats, err := svc.Import(context.Background(), strings.NewReader(csvData), "Alt Headers", "")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LeadsCreated)
	require.Len(t, leads.created, 1)
	assert.Equal(t, "[FW-77] Brown Co - Alice Brown", leads.created[0].Name)
	assert.Equal(t, float64(90000), leads.created[0].ExpectedRevenue)
}

func TestParseValuation(t *testing.T) {
	assert.Equal(t, float64(1250000), parseValuation("$1,250,000"))
	assert.Equal(t, float64(40000), parseValuation("40000"))
	assert.Equal(t, 99.5, parseValuation(" $99.50 "))
	assert.Zero(t, parseValuation(""))
	assert.Zero(t, parseValuation("N/A"))
}
