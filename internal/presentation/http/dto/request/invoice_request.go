package request

// CreateInvoiceRequest is the webhook payload for a completed checkout
// session.
type CreateInvoiceRequest struct {
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	SessionID     string  `json:"stripe_session_id" binding:"required"`
	Description   string  `json:"description"`
	ProductCode   string  `json:"product_code"`
}

// MarkPaidRequest is the webhook payload for a confirmed payment. The invoice
// is located by id when given, else by the session id stored in its ref.
type MarkPaidRequest struct {
	InvoiceID int64   `json:"invoice_id"`
	SessionID string  `json:"stripe_session_id"`
	PaymentID string  `json:"payment_id" binding:"required"`
	Amount    float64 `json:"amount"`
}
