package enum

// InvoiceState represents the lifecycle state of an account.move in Odoo.
// The state advances monotonically: draft -> posted. Posting is irreversible.
type InvoiceState string

const (
	InvoiceStateDraft  InvoiceState = "draft"
	InvoiceStatePosted InvoiceState = "posted"
	InvoiceStateCancel InvoiceState = "cancel"
)

func (s InvoiceState) String() string {
	return string(s)
}

// IsPosted reports whether the invoice has been validated into the ledger.
func (s InvoiceState) IsPosted() bool {
	return s == InvoiceStatePosted
}
