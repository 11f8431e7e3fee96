package entity

// GenericProductCode is the default_code of the fallback payment product used
// for invoices that do not name a specific service.
const GenericProductCode = "STRIPE-PAYMENT"

// Product represents a sellable product.product variant.
type Product struct {
	ID          int64   `json:"id"`
	TemplateID  int64   `json:"template_id,omitempty"`
	Name        string  `json:"name"`
	DefaultCode string  `json:"default_code"`
	ListPrice   float64 `json:"list_price"`
	Type        string  `json:"type"`
}

// ProductTemplate holds the values for creating a product.template; Odoo
// derives the sellable variant from it.
type ProductTemplate struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	DefaultCode     string  `json:"default_code"`
	ListPrice       float64 `json:"list_price"`
	InvoicePolicy   string  `json:"invoice_policy"`
	DescriptionSale string  `json:"description_sale,omitempty"`
	CategoryID      int64   `json:"categ_id,omitempty"`
}
