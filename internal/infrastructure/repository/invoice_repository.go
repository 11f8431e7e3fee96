package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/domain/enum"
	domainRepo "github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
)

var invoiceFields = []string{
	"name", "partner_id", "currency_id", "amount_total", "amount_residual",
	"state", "payment_state", "invoice_date", "ref",
}

type invoiceRepository struct {
	client *odoo.Client
}

// NewInvoiceRepository creates an invoice repository backed by Odoo
func NewInvoiceRepository(client *odoo.Client) domainRepo.InvoiceRepository {
	return &invoiceRepository{client: client}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *entity.NewInvoice) (int64, error) {
	lines := make([]interface{}, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		values := map[string]interface{}{
			"quantity":   line.Quantity,
			"price_unit": line.PriceUnit,
		}
		if line.ProductID != 0 {
			values["product_id"] = line.ProductID
		}
		if line.Description != "" {
			values["name"] = line.Description
		}
		// (0, 0, values) creates the line inline with the move.
		lines = append(lines, []interface{}{0, 0, values})
	}

	values := map[string]interface{}{
		"move_type":        "out_invoice",
		"partner_id":       inv.PartnerID,
		"invoice_date":     inv.InvoiceDate,
		"invoice_line_ids": lines,
	}
	if inv.Ref != "" {
		values["ref"] = inv.Ref
	}
	if inv.Narration != "" {
		values["narration"] = inv.Narration
	}
	return r.client.Create(ctx, "account.move", values)
}

func (r *invoiceRepository) Post(ctx context.Context, id int64) error {
	return r.client.Call(ctx, "account.move", "action_post", []int64{id})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	records, err := r.client.Read(ctx, "account.move", []int64{id}, invoiceFields)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return decodeInvoice(records[0]), nil
}

func (r *invoiceRepository) FindByRef(ctx context.Context, ref string) (*entity.Invoice, error) {
	domain := []interface{}{
		cond("ref", "=", ref),
		cond("move_type", "=", "out_invoice"),
	}
	records, err := r.client.SearchRead(ctx, "account.move", domain, invoiceFields, map[string]interface{}{"limit": 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return decodeInvoice(records[0]), nil
}

func (r *invoiceRepository) OpenReceivableLines(ctx context.Context, moveID int64) ([]entity.LedgerLine, error) {
	domain := []interface{}{
		cond("move_id", "=", moveID),
		cond("account_type", "=", "asset_receivable"),
		cond("reconciled", "=", false),
	}
	records, err := r.client.SearchRead(ctx, "account.move.line", domain, []string{"move_id", "reconciled"}, nil)
	if err != nil {
		return nil, err
	}
	lines := make([]entity.LedgerLine, 0, len(records))
	for _, rec := range records {
		lines = append(lines, entity.LedgerLine{
			ID:         recInt64(rec, "id"),
			MoveID:     relID(rec, "move_id"),
			Reconciled: recBool(rec, "reconciled"),
		})
	}
	return lines, nil
}

// Reconcile matches receivable lines against each other. Odoo acknowledges
// with None, which the transport rejects, so that fault is treated as success
// and callers verify the residual afterwards.
func (r *invoiceRepository) Reconcile(ctx context.Context, lineIDs []int64) error {
	err := r.client.Call(ctx, "account.move.line", "reconcile", lineIDs)
	if err != nil && odoo.IsNilAck(err) {
		return nil
	}
	return err
}

func decodeInvoice(rec map[string]interface{}) *entity.Invoice {
	return &entity.Invoice{
		ID:             recInt64(rec, "id"),
		Name:           recString(rec, "name"),
		PartnerID:      relID(rec, "partner_id"),
		PartnerName:    relName(rec, "partner_id"),
		CurrencyID:     relID(rec, "currency_id"),
		AmountTotal:    recFloat(rec, "amount_total"),
		AmountResidual: recFloat(rec, "amount_residual"),
		State:          enum.InvoiceState(recString(rec, "state")),
		PaymentState:   enum.PaymentState(recString(rec, "payment_state")),
		InvoiceDate:    recString(rec, "invoice_date"),
		Ref:            recString(rec, "ref"),
	}
}
