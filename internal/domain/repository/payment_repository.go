package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

// PaymentRepository defines the typed operations against account.payment and
// the journal configuration payments depend on.
type PaymentRepository interface {
	// DefaultBankJournal returns the first bank-type journal, or nil when
	// none is configured.
	DefaultBankJournal(ctx context.Context) (*entity.Journal, error)
	// InboundMethodLine returns the id of an inbound payment method line
	// for the journal, or 0 when none exists. Best effort.
	InboundMethodLine(ctx context.Context, journalID int64) (int64, error)
	Create(ctx context.Context, p *entity.NewPayment) (int64, error)
	// Post transitions the payment to posted. Odoo is known to return an
	// empty acknowledgment here that the transport reports as a fault even
	// though the transition succeeded; that fault class is tolerated.
	// Callers verify by re-reading the payment state.
	Post(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
}
