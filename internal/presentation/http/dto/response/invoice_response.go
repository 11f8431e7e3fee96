package response

// CreateInvoiceResponse reports a created and posted invoice. The shape is
// consumed by the automation workflows and must stay flat.
type CreateInvoiceResponse struct {
	Success       bool   `json:"success"`
	InvoiceID     int64  `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	Message       string `json:"message"`
}

// MarkPaidResponse reports a registered payment. PaymentID is zero when the
// invoice was already paid.
type MarkPaidResponse struct {
	Success   bool   `json:"success"`
	InvoiceID int64  `json:"invoice_id"`
	PaymentID int64  `json:"payment_id"`
	Message   string `json:"message"`
}

// InvoiceResponse is the flat invoice projection.
type InvoiceResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	PartnerName    string  `json:"partner_name"`
	PartnerEmail   string  `json:"partner_email"`
	AmountTotal    float64 `json:"amount_total"`
	AmountResidual float64 `json:"amount_residual"`
	State          string  `json:"state"`
	PaymentState   string  `json:"payment_state"`
	InvoiceDate    string  `json:"invoice_date,omitempty"`
	SessionID      string  `json:"stripe_session_id,omitempty"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status    string `json:"status"`
	Odoo      string `json:"odoo"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}
