package entity

import "github.com/aiqso/odoo-bridge/internal/domain/enum"

// Payment represents an account.payment record. Payments registered by the
// bridge are always inbound customer payments against a bank journal.
type Payment struct {
	ID     int64             `json:"id"`
	Amount float64           `json:"amount"`
	State  enum.InvoiceState `json:"state"`
	MoveID int64             `json:"move_id"`
}

// NewPayment holds the values for creating an inbound customer payment.
type NewPayment struct {
	PartnerID    int64
	Amount       float64
	CurrencyID   int64
	JournalID    int64
	MethodLineID int64 // optional, 0 when no inbound method line was found
	Ref          string
}

// Journal represents an account.journal, the ledger channel a payment is
// posted through.
type Journal struct {
	ID   int64            `json:"id"`
	Name string           `json:"name"`
	Type enum.JournalType `json:"type"`
}
