package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

// fakePartnerRepo is an in-memory PartnerRepository.
type fakePartnerRepo struct {
	partners map[int64]*entity.Partner
	nextID   int64
	findErr  error

	addedCategories map[int64][]int64
	parentSet       map[int64]int64
	phoneSet        map[int64]string
}

func newFakePartnerRepo(partners ...*entity.Partner) *fakePartnerRepo {
	repo := &fakePartnerRepo{
		partners:        make(map[int64]*entity.Partner),
		nextID:          100,
		addedCategories: make(map[int64][]int64),
		parentSet:       make(map[int64]int64),
		phoneSet:        make(map[int64]string),
	}
	for _, p := range partners {
		repo.partners[p.ID] = p
	}
	return repo
}

func (f *fakePartnerRepo) GetByID(ctx context.Context, id int64) (*entity.Partner, error) {
	return f.partners[id], nil
}

func (f *fakePartnerRepo) FindByEmail(ctx context.Context, email string) (*entity.Partner, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, p := range f.partners {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePartnerRepo) FindPersonByName(ctx context.Context, name string) (*entity.Partner, error) {
	for _, p := range f.partners {
		if p.Name == name && !p.IsCompany {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePartnerRepo) FindCompanyByName(ctx context.Context, name string) (*entity.Partner, error) {
	for _, p := range f.partners {
		if p.Name == name && p.IsCompany {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePartnerRepo) Create(ctx context.Context, partner *entity.Partner) (int64, error) {
	f.nextID++
	partner.ID = f.nextID
	f.partners[partner.ID] = partner
	return partner.ID, nil
}

func (f *fakePartnerRepo) AddCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	f.addedCategories[id] = append(f.addedCategories[id], categoryIDs...)
	return nil
}

func (f *fakePartnerRepo) SetParentCompany(ctx context.Context, id, parentID int64) error {
	f.parentSet[id] = parentID
	return nil
}

func (f *fakePartnerRepo) SetPhone(ctx context.Context, id int64, phone string) error {
	f.phoneSet[id] = phone
	return nil
}

// fakeCategoryRepo is an in-memory CategoryRepository.
type fakeCategoryRepo struct {
	categories map[string]*entity.Category
	nextID     int64
	created    []string
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category), nextID: 200}
}

func (f *fakeCategoryRepo) FindByName(ctx context.Context, name string, parentID int64) (*entity.Category, error) {
	return f.categories[name], nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) (int64, error) {
	f.nextID++
	category.ID = f.nextID
	f.categories[category.Name] = category
	f.created = append(f.created, category.Name)
	return category.ID, nil
}

// fakeProductRepo is an in-memory ProductRepository.
type fakeProductRepo struct {
	variantsByCode map[string]*entity.Product
	templates      map[string]*entity.ProductTemplate
	nextID         int64
	createdCodes   []string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		variantsByCode: make(map[string]*entity.Product),
		templates:      make(map[string]*entity.ProductTemplate),
		nextID:         300,
	}
}

func (f *fakeProductRepo) FindVariantByCode(ctx context.Context, code string) (*entity.Product, error) {
	return f.variantsByCode[code], nil
}

func (f *fakeProductRepo) FindVariantByTemplate(ctx context.Context, templateID int64) (*entity.Product, error) {
	for _, p := range f.variantsByCode {
		if p.TemplateID == templateID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) TemplateExists(ctx context.Context, code string) (bool, error) {
	_, ok := f.templates[code]
	return ok, nil
}

func (f *fakeProductRepo) CreateTemplate(ctx context.Context, tmpl *entity.ProductTemplate) (int64, error) {
	f.nextID++
	f.templates[tmpl.DefaultCode] = tmpl
	f.createdCodes = append(f.createdCodes, tmpl.DefaultCode)
	// Odoo derives one sellable variant per template.
	f.variantsByCode[tmpl.DefaultCode] = &entity.Product{
		ID:          f.nextID + 1000,
		TemplateID:  f.nextID,
		Name:        tmpl.Name,
		DefaultCode: tmpl.DefaultCode,
		ListPrice:   tmpl.ListPrice,
		Type:        tmpl.Type,
	}
	return f.nextID, nil
}

func (f *fakeProductRepo) ListTemplatesByPrefix(ctx context.Context, prefix string) ([]entity.Product, error) {
	var out []entity.Product
	for code, tmpl := range f.templates {
		if len(code) >= len(prefix) && code[:len(prefix)] == prefix {
			out = append(out, entity.Product{Name: tmpl.Name, DefaultCode: code, ListPrice: tmpl.ListPrice})
		}
	}
	return out, nil
}

func (f *fakeProductRepo) ListTemplatesByCodes(ctx context.Context, codes []string) ([]entity.Product, error) {
	var out []entity.Product
	for _, code := range codes {
		if tmpl, ok := f.templates[code]; ok {
			out = append(out, entity.Product{Name: tmpl.Name, DefaultCode: code, ListPrice: tmpl.ListPrice})
		}
	}
	return out, nil
}

// fakeInvoiceRepo is an in-memory InvoiceRepository.
type fakeInvoiceRepo struct {
	invoices   map[int64]*entity.Invoice
	lines      map[int64][]entity.LedgerLine
	nextID     int64
	postErr    error
	posted     []int64
	reconciled [][]int64
	created    []*entity.NewInvoice
}

func newFakeInvoiceRepo(invoices ...*entity.Invoice) *fakeInvoiceRepo {
	repo := &fakeInvoiceRepo{
		invoices: make(map[int64]*entity.Invoice),
		lines:    make(map[int64][]entity.LedgerLine),
		nextID:   400,
	}
	for _, inv := range invoices {
		repo.invoices[inv.ID] = inv
	}
	return repo
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *entity.NewInvoice) (int64, error) {
	f.nextID++
	f.created = append(f.created, inv)
	f.invoices[f.nextID] = &entity.Invoice{
		ID:           f.nextID,
		Name:         fmt.Sprintf("INV/%d", f.nextID),
		PartnerID:    inv.PartnerID,
		InvoiceDate:  inv.InvoiceDate,
		Ref:          inv.Ref,
		State:        "draft",
		PaymentState: "not_paid",
	}
	return f.nextID, nil
}

func (f *fakeInvoiceRepo) Post(ctx context.Context, id int64) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.posted = append(f.posted, id)
	if inv, ok := f.invoices[id]; ok {
		inv.State = "posted"
	}
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) FindByRef(ctx context.Context, ref string) (*entity.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.Ref == ref {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) OpenReceivableLines(ctx context.Context, moveID int64) ([]entity.LedgerLine, error) {
	return f.lines[moveID], nil
}

func (f *fakeInvoiceRepo) Reconcile(ctx context.Context, lineIDs []int64) error {
	f.reconciled = append(f.reconciled, lineIDs)
	return nil
}

// fakePaymentRepo is an in-memory PaymentRepository.
type fakePaymentRepo struct {
	journal      *entity.Journal
	methodLineID int64
	nextID       int64
	payments     map[int64]*entity.Payment
	created      []*entity.NewPayment
	postFails    bool
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		journal:      &entity.Journal{ID: 7, Name: "Bank", Type: "bank"},
		methodLineID: 3,
		nextID:       500,
		payments:     make(map[int64]*entity.Payment),
	}
}

func (f *fakePaymentRepo) DefaultBankJournal(ctx context.Context) (*entity.Journal, error) {
	return f.journal, nil
}

func (f *fakePaymentRepo) InboundMethodLine(ctx context.Context, journalID int64) (int64, error) {
	return f.methodLineID, nil
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *entity.NewPayment) (int64, error) {
	f.nextID++
	f.created = append(f.created, p)
	f.payments[f.nextID] = &entity.Payment{ID: f.nextID, Amount: p.Amount, State: "draft", MoveID: f.nextID + 1000}
	return f.nextID, nil
}

func (f *fakePaymentRepo) Post(ctx context.Context, id int64) error {
	if pay, ok := f.payments[id]; ok && !f.postFails {
		pay.State = "posted"
	}
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	return f.payments[id], nil
}

// fakeLeadRepo is an in-memory LeadRepository.
type fakeLeadRepo struct {
	leads        map[int64]*entity.Lead
	descriptions map[int64]string
	updates      map[int64]*entity.LeadUpdate
	nextID       int64
	created      []*entity.Lead
}

func newFakeLeadRepo(leads ...*entity.Lead) *fakeLeadRepo {
	repo := &fakeLeadRepo{
		leads:        make(map[int64]*entity.Lead),
		descriptions: make(map[int64]string),
		updates:      make(map[int64]*entity.LeadUpdate),
		nextID:       600,
	}
	for _, l := range leads {
		repo.leads[l.ID] = l
	}
	return repo
}

func (f *fakeLeadRepo) Create(ctx context.Context, lead *entity.Lead) (int64, error) {
	f.nextID++
	lead.ID = f.nextID
	f.leads[lead.ID] = lead
	f.created = append(f.created, lead)
	return lead.ID, nil
}

func (f *fakeLeadRepo) FindByPermitRef(ctx context.Context, permitNumber string) (*entity.Lead, error) {
	marker := strings.ToLower("[" + permitNumber + "]")
	for _, l := range f.leads {
		if strings.Contains(strings.ToLower(l.Name), marker) {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLeadRepo) Description(ctx context.Context, id int64) (string, error) {
	return f.descriptions[id], nil
}

func (f *fakeLeadRepo) Update(ctx context.Context, id int64, u *entity.LeadUpdate) error {
	f.updates[id] = u
	return nil
}

// fakePermitRepo is an in-memory PermitRepository.
type fakePermitRepo struct {
	leads []entity.EnrichedLead
}

func (f *fakePermitRepo) EnrichedLeads(ctx context.Context, city string, minScore int) ([]entity.EnrichedLead, error) {
	return f.leads, nil
}

// fakePortalRepo records portal invitations.
type fakePortalRepo struct {
	invited [][]int64
}

func (f *fakePortalRepo) Invite(ctx context.Context, partnerIDs []int64) error {
	f.invited = append(f.invited, partnerIDs)
	return nil
}

// fakeSystemRepo is an in-memory SystemRepository.
type fakeSystemRepo struct {
	version   string
	modules   map[string]bool
	provider  *entity.PaymentProvider
	enabledID int64
}

func (f *fakeSystemRepo) Version(ctx context.Context) (string, error) {
	return f.version, nil
}

func (f *fakeSystemRepo) ModuleInstalled(ctx context.Context, name string) (bool, error) {
	return f.modules[name], nil
}

func (f *fakeSystemRepo) ProviderByCode(ctx context.Context, code string) (*entity.PaymentProvider, error) {
	return f.provider, nil
}

func (f *fakeSystemRepo) EnableStripeProvider(ctx context.Context, id int64, secretKey, publishableKey string) error {
	f.enabledID = id
	if f.provider != nil {
		f.provider.State = entity.ProviderEnabled
	}
	return nil
}
