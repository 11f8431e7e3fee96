package repository

import (
	"context"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/domain/enum"
	domainRepo "github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
)

type paymentRepository struct {
	client *odoo.Client
}

// NewPaymentRepository creates a payment repository backed by Odoo
func NewPaymentRepository(client *odoo.Client) domainRepo.PaymentRepository {
	return &paymentRepository{client: client}
}

func (r *paymentRepository) DefaultBankJournal(ctx context.Context) (*entity.Journal, error) {
	domain := []interface{}{cond("type", "=", string(enum.JournalTypeBank))}
	records, err := r.client.SearchRead(ctx, "account.journal", domain, []string{"name", "type"}, map[string]interface{}{"limit": 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &entity.Journal{
		ID:   recInt64(records[0], "id"),
		Name: recString(records[0], "name"),
		Type: enum.JournalType(recString(records[0], "type")),
	}, nil
}

func (r *paymentRepository) InboundMethodLine(ctx context.Context, journalID int64) (int64, error) {
	domain := []interface{}{
		cond("journal_id", "=", journalID),
		cond("payment_type", "=", "inbound"),
	}
	ids, err := r.client.Search(ctx, "account.payment.method.line", domain, map[string]interface{}{"limit": 1})
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

func (r *paymentRepository) Create(ctx context.Context, pay *entity.NewPayment) (int64, error) {
	values := map[string]interface{}{
		"payment_type": "inbound",
		"partner_type": "customer",
		"partner_id":   pay.PartnerID,
		"amount":       pay.Amount,
		"currency_id":  pay.CurrencyID,
		"journal_id":   pay.JournalID,
	}
	if pay.MethodLineID != 0 {
		values["payment_method_line_id"] = pay.MethodLineID
	}
	if pay.Ref != "" {
		values["ref"] = pay.Ref
	}
	return r.client.Create(ctx, "account.payment", values)
}

// Post confirms the payment. Odoo 17 returns None from action_post, which
// the transport reports as a fault even though the posting succeeded, so
// that fault is swallowed and callers re-read the payment state to verify.
func (r *paymentRepository) Post(ctx context.Context, id int64) error {
	err := r.client.Call(ctx, "account.payment", "action_post", []int64{id})
	if err != nil && odoo.IsNilAck(err) {
		return nil
	}
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	records, err := r.client.Read(ctx, "account.payment", []int64{id}, []string{"amount", "state", "move_id"})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &entity.Payment{
		ID:     recInt64(records[0], "id"),
		Amount: recFloat(records[0], "amount"),
		State:  enum.InvoiceState(recString(records[0], "state")),
		MoveID: relID(records[0], "move_id"),
	}, nil
}
