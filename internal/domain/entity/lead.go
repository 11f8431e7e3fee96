package entity

// Lead represents a crm.lead pipeline record.
type Lead struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	PartnerID       int64   `json:"partner_id,omitempty"`
	PartnerName     string  `json:"partner_name,omitempty"`
	ContactName     string  `json:"contact_name,omitempty"`
	Email           string  `json:"email_from,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Street          string  `json:"street,omitempty"`
	ExpectedRevenue float64 `json:"expected_revenue"`
	Description     string  `json:"description,omitempty"`
}

// LeadUpdate holds a partial update of a crm.lead. Empty fields are left
// untouched on the remote record.
type LeadUpdate struct {
	Email       string
	Phone       string
	ContactName string
	PartnerName string
	Description string
}

// EnrichedLead is a row from the scraper's permits database: a commercial
// permit lead that has been enriched with contact information.
type EnrichedLead struct {
	LeadID           int64   `gorm:"column:lead_id"`
	PermitNumber     string  `gorm:"column:permit_number"`
	CityName         string  `gorm:"column:city_name"`
	AddressLine1     string  `gorm:"column:address_line1"`
	ProjectValuation float64 `gorm:"column:project_valuation"`
	PermitType       string  `gorm:"column:permit_type"`
	OwnerName        string  `gorm:"column:owner_name"`
	ContactName      string  `gorm:"column:contact_name"`
	ContactEmail     string  `gorm:"column:contact_email"`
	ContactPhone     string  `gorm:"column:contact_phone"`
	CompanyName      string  `gorm:"column:company_name"`
	ContactRole      string  `gorm:"column:contact_role"`
	Score            int     `gorm:"column:score"`
	ValuationTier    string  `gorm:"column:valuation_tier"`
}
