package entity

// Partner represents a res.partner record: a customer, a contact person or a
// company. Partners are long-lived; they are looked up by email (contacts) or
// name (companies) and created lazily on first use.
type Partner struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	IsCompany    bool    `json:"is_company"`
	CompanyName  string  `json:"company_name,omitempty"`
	ParentID     int64   `json:"parent_id,omitempty"`
	CustomerRank int     `json:"customer_rank"`
	Comment      string  `json:"comment,omitempty"`
	CategoryIDs  []int64 `json:"category_ids,omitempty"`
}

// Category represents a res.partner.category tag. Categories form a tree under
// the "Lead List" parent used to organize imported leads.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parent_id,omitempty"`
	Color    int    `json:"color,omitempty"`
}
