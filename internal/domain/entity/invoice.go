package entity

import "github.com/aiqso/odoo-bridge/internal/domain/enum"

// Invoice represents a customer invoice (account.move, move_type out_invoice).
// The Ref field carries the external payment session id, which is the only
// correlation key between the payment processor and the ERP.
type Invoice struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	PartnerID      int64             `json:"partner_id"`
	PartnerName    string            `json:"partner_name"`
	CurrencyID     int64             `json:"currency_id"`
	AmountTotal    float64           `json:"amount_total"`
	AmountResidual float64           `json:"amount_residual"`
	State          enum.InvoiceState `json:"state"`
	PaymentState   enum.PaymentState `json:"payment_state"`
	InvoiceDate    string            `json:"invoice_date,omitempty"`
	Ref            string            `json:"ref,omitempty"`
}

// InvoiceLine holds the values for one invoice line at creation time.
type InvoiceLine struct {
	ProductID   int64   `json:"product_id"`
	Description string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	PriceUnit   float64 `json:"price_unit"`
}

// NewInvoice holds the values for creating a draft invoice.
type NewInvoice struct {
	PartnerID   int64
	InvoiceDate string
	Ref         string
	Narration   string
	Lines       []InvoiceLine
}

// LedgerLine is a receivable account.move.line. Reconciliation pairs the open
// receivable line of an invoice's move with the one of a payment's move.
type LedgerLine struct {
	ID         int64 `json:"id"`
	MoveID     int64 `json:"move_id"`
	Reconciled bool  `json:"reconciled"`
}
