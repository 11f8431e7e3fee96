package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/domain/repository"
	"github.com/aiqso/odoo-bridge/pkg/apperror"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

// BillingService handles invoice creation, payment registration and invoice
// lookup against the ERP.
type BillingService struct {
	partnerRepo repository.PartnerRepository
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	sessions    keyedMutex
	log         zerolog.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	partnerRepo repository.PartnerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *BillingService {
	return &BillingService{
		partnerRepo: partnerRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		log:         logger.WithComponent("billing"),
	}
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	CustomerEmail string
	Amount        float64
	SessionID     string
	Description   string
	ProductCode   string
}

// CreateInvoiceResult is the outcome of a successful invoice creation.
type CreateInvoiceResult struct {
	InvoiceID     int64
	InvoiceNumber string
}

// CreateInvoice creates and posts a customer invoice for a completed checkout
// session. The partner is resolved by email and created on first sight; the
// product is resolved by code with a generic payment product as fallback.
// There is no compensating cleanup: a failure after the draft was created
// leaves the draft behind for manual review.
func (s *BillingService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*CreateInvoiceResult, error) {
	unlock := s.sessions.Lock(input.SessionID)
	defer unlock()

	partnerID, err := s.resolvePartner(ctx, input.CustomerEmail)
	if err != nil {
		return nil, err
	}

	productID, err := s.resolveProduct(ctx, input.ProductCode)
	if err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = "Stripe Payment"
	}

	invoiceID, err := s.invoiceRepo.Create(ctx, &entity.NewInvoice{
		PartnerID:   partnerID,
		InvoiceDate: time.Now().Format("2006-01-02"),
		Ref:         input.SessionID,
		Narration:   fmt.Sprintf("Stripe Session: %s", input.SessionID),
		Lines: []entity.InvoiceLine{{
			ProductID:   productID,
			Description: description,
			Quantity:    1,
			PriceUnit:   input.Amount,
		}},
	})
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}

	if err := s.invoiceRepo.Post(ctx, invoiceID); err != nil {
		return nil, apperror.NewUpstreamError(err)
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	if invoice == nil {
		return nil, apperror.NewUpstreamError(fmt.Errorf("invoice %d vanished after posting", invoiceID))
	}

	s.log.Info().
		Int64("invoice_id", invoiceID).
		Str("invoice_number", invoice.Name).
		Str("session_id", input.SessionID).
		Float64("amount", input.Amount).
		Msg("invoice created and posted")

	return &CreateInvoiceResult{InvoiceID: invoiceID, InvoiceNumber: invoice.Name}, nil
}

// resolvePartner finds the partner by email or creates one named after the
// capitalized local part of the address.
func (s *BillingService) resolvePartner(ctx context.Context, email string) (int64, error) {
	partner, err := s.partnerRepo.FindByEmail(ctx, email)
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	if partner != nil {
		return partner.ID, nil
	}

	id, err := s.partnerRepo.Create(ctx, &entity.Partner{
		Name:         nameFromEmail(email),
		Email:        email,
		CustomerRank: 1,
	})
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	s.log.Info().Int64("partner_id", id).Str("email", email).Msg("created partner")
	return id, nil
}

// resolveProduct resolves the requested product code, falling back to the
// generic payment product and bootstrapping it on first use. Concurrent first
// uses may each create a template; the duplicate is harmless.
func (s *BillingService) resolveProduct(ctx context.Context, code string) (int64, error) {
	if code != "" {
		product, err := s.productRepo.FindVariantByCode(ctx, code)
		if err != nil {
			return 0, apperror.NewUpstreamError(err)
		}
		if product != nil {
			return product.ID, nil
		}
	}

	product, err := s.productRepo.FindVariantByCode(ctx, entity.GenericProductCode)
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	if product != nil {
		return product.ID, nil
	}

	templateID, err := s.productRepo.CreateTemplate(ctx, &entity.ProductTemplate{
		Name:          "Stripe Payment",
		Type:          "service",
		DefaultCode:   entity.GenericProductCode,
		ListPrice:     0,
		InvoicePolicy: "order",
	})
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	variant, err := s.productRepo.FindVariantByTemplate(ctx, templateID)
	if err != nil {
		return 0, apperror.NewUpstreamError(err)
	}
	if variant == nil {
		return 0, apperror.NewUpstreamError(fmt.Errorf("no variant derived from product template %d", templateID))
	}
	s.log.Info().Int64("product_id", variant.ID).Msg("bootstrapped generic payment product")
	return variant.ID, nil
}

// RegisterPaymentInput represents the register payment input
type RegisterPaymentInput struct {
	InvoiceID  int64
	SessionID  string
	PaymentRef string
	Amount     float64
}

// RegisterPaymentResult is the outcome of a payment registration. PaymentID
// is zero when the invoice was already paid.
type RegisterPaymentResult struct {
	InvoiceID   int64
	PaymentID   int64
	AlreadyPaid bool
	Message     string
}

// RegisterPayment registers an inbound customer payment against a posted
// invoice and reconciles it. Registering against an already-paid invoice is
// an idempotent success.
func (s *BillingService) RegisterPayment(ctx context.Context, input *RegisterPaymentInput) (*RegisterPaymentResult, error) {
	if input.SessionID != "" {
		unlock := s.sessions.Lock(input.SessionID)
		defer unlock()
	}

	invoice, err := s.locateInvoice(ctx, input.InvoiceID, input.SessionID)
	if err != nil {
		return nil, err
	}

	if invoice.PaymentState.IsPaid() {
		return &RegisterPaymentResult{
			InvoiceID:   invoice.ID,
			PaymentID:   0,
			AlreadyPaid: true,
			Message:     fmt.Sprintf("Invoice %s is already paid", invoice.Name),
		}, nil
	}

	if !invoice.State.IsPosted() {
		return nil, apperror.NewPreconditionError(fmt.Sprintf("Invoice is not posted (state: %s)", invoice.State))
	}

	journal, err := s.paymentRepo.DefaultBankJournal(ctx)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	if journal == nil {
		return nil, apperror.NewConfigError("No bank journal found")
	}

	amount := input.Amount
	if amount == 0 {
		amount = invoice.AmountResidual
	}

	// Best effort; payments post fine without an explicit method line.
	methodLineID, err := s.paymentRepo.InboundMethodLine(ctx, journal.ID)
	if err != nil {
		s.log.Warn().Err(err).Int64("journal_id", journal.ID).Msg("payment method line lookup failed")
		methodLineID = 0
	}

	paymentID, err := s.paymentRepo.Create(ctx, &entity.NewPayment{
		PartnerID:    invoice.PartnerID,
		Amount:       amount,
		CurrencyID:   invoice.CurrencyID,
		JournalID:    journal.ID,
		MethodLineID: methodLineID,
		Ref:          input.PaymentRef,
	})
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}

	if err := s.paymentRepo.Post(ctx, paymentID); err != nil {
		return nil, apperror.NewUpstreamError(err)
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	if payment == nil || !payment.State.IsPosted() {
		return nil, apperror.NewUpstreamError(fmt.Errorf("failed to post payment %d", paymentID))
	}

	s.reconcile(ctx, invoice, payment)

	s.log.Info().
		Int64("invoice_id", invoice.ID).
		Int64("payment_id", paymentID).
		Float64("amount", amount).
		Str("payment_ref", input.PaymentRef).
		Msg("payment registered")

	return &RegisterPaymentResult{
		InvoiceID: invoice.ID,
		PaymentID: paymentID,
		Message:   fmt.Sprintf("Payment registered for invoice %s", invoice.Name),
	}, nil
}

func (s *BillingService) locateInvoice(ctx context.Context, id int64, sessionID string) (*entity.Invoice, error) {
	if id != 0 {
		invoice, err := s.invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return nil, apperror.NewUpstreamError(err)
		}
		if invoice == nil {
			return nil, apperror.NewNotFoundError("Invoice")
		}
		return invoice, nil
	}
	if sessionID != "" {
		invoice, err := s.invoiceRepo.FindByRef(ctx, sessionID)
		if err != nil {
			return nil, apperror.NewUpstreamError(err)
		}
		if invoice == nil {
			return nil, apperror.NewNotFoundError("Invoice")
		}
		return invoice, nil
	}
	return nil, apperror.NewNotFoundError("Invoice")
}

// reconcile pairs the open receivable lines of the invoice and payment moves.
// The operation is fire-and-verify: failures are logged, and a residual left
// after reconciliation is surfaced as a warning rather than an error.
func (s *BillingService) reconcile(ctx context.Context, invoice *entity.Invoice, payment *entity.Payment) {
	invoiceLines, err := s.invoiceRepo.OpenReceivableLines(ctx, invoice.ID)
	if err != nil {
		s.log.Warn().Err(err).Int64("invoice_id", invoice.ID).Msg("receivable line lookup failed")
		return
	}
	paymentLines, err := s.invoiceRepo.OpenReceivableLines(ctx, payment.MoveID)
	if err != nil {
		s.log.Warn().Err(err).Int64("move_id", payment.MoveID).Msg("receivable line lookup failed")
		return
	}
	if len(invoiceLines) == 0 || len(paymentLines) == 0 {
		return
	}

	lineIDs := make([]int64, 0, len(invoiceLines)+len(paymentLines))
	for _, line := range invoiceLines {
		lineIDs = append(lineIDs, line.ID)
	}
	for _, line := range paymentLines {
		lineIDs = append(lineIDs, line.ID)
	}

	if err := s.invoiceRepo.Reconcile(ctx, lineIDs); err != nil {
		s.log.Warn().Err(err).Int64("invoice_id", invoice.ID).Msg("reconciliation failed")
		return
	}

	after, err := s.invoiceRepo.GetByID(ctx, invoice.ID)
	if err != nil {
		s.log.Warn().Err(err).Int64("invoice_id", invoice.ID).Msg("post-reconciliation read failed")
		return
	}
	if after != nil && after.AmountResidual != 0 {
		s.log.Warn().
			Int64("invoice_id", invoice.ID).
			Float64("amount_residual", after.AmountResidual).
			Msg("residual remains after reconciliation")
	}
}

// InvoiceDetail is the flat invoice projection returned by lookups.
type InvoiceDetail struct {
	ID             int64
	Name           string
	PartnerName    string
	PartnerEmail   string
	AmountTotal    float64
	AmountResidual float64
	State          string
	PaymentState   string
	InvoiceDate    string
	SessionID      string
}

// GetInvoice retrieves an invoice by ID
func (s *BillingService) GetInvoice(ctx context.Context, id int64) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.toDetail(ctx, invoice)
}

// GetInvoiceBySession retrieves an invoice by the checkout session id stored
// in its reference field.
func (s *BillingService) GetInvoiceBySession(ctx context.Context, sessionID string) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.FindByRef(ctx, sessionID)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.toDetail(ctx, invoice)
}

func (s *BillingService) toDetail(ctx context.Context, invoice *entity.Invoice) (*InvoiceDetail, error) {
	email := ""
	if invoice.PartnerID != 0 {
		partner, err := s.partnerRepo.GetByID(ctx, invoice.PartnerID)
		if err != nil {
			return nil, apperror.NewUpstreamError(err)
		}
		if partner != nil {
			email = partner.Email
		}
	}
	return &InvoiceDetail{
		ID:             invoice.ID,
		Name:           invoice.Name,
		PartnerName:    invoice.PartnerName,
		PartnerEmail:   email,
		AmountTotal:    invoice.AmountTotal,
		AmountResidual: invoice.AmountResidual,
		State:          string(invoice.State),
		PaymentState:   string(invoice.PaymentState),
		InvoiceDate:    invoice.InvoiceDate,
		SessionID:      invoice.Ref,
	}, nil
}

// nameFromEmail derives a display name from the local part of an email
// address, capitalizing each dot- or space-separated word.
func nameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	words := strings.FieldsFunc(local, func(r rune) bool { return r == '.' || r == '_' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return local
	}
	return strings.Join(words, " ")
}

// keyedMutex serializes work per correlation key within this process. It is
// best effort: it does not protect against concurrent replicas. Entries are
// refcounted and dropped on last release so the map does not grow with every
// session id the service ever saw.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
