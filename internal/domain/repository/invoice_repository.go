package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

// InvoiceRepository defines the typed operations against account.move and its
// receivable account.move.line records. Lookups return nil when no record
// matches.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.NewInvoice) (int64, error)
	// Post transitions a draft invoice into the ledger. Validation errors
	// from the accounting rules are surfaced, never swallowed.
	Post(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	// FindByRef locates an out_invoice by the payment session id stored in
	// its reference field.
	FindByRef(ctx context.Context, ref string) (*entity.Invoice, error)
	OpenReceivableLines(ctx context.Context, moveID int64) ([]entity.LedgerLine, error)
	// Reconcile pairs open receivable lines across moves. The call is
	// fire-and-verify: a benign empty-acknowledgment fault from the
	// transport is not reported as failure.
	Reconcile(ctx context.Context, lineIDs []int64) error
}
