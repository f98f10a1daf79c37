package service

import (
	"context"
	"sync"
	"time"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/repository/contract"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. Each one stores entities keyed by id and
// interprets only the specifications the services actually pass.

func idFromSpecs(specs []specification.Specification) (uuid.UUID, bool) {
	for _, sp := range specs {
		if byID, ok := sp.(specification.ByID); ok {
			return byID.ID, true
		}
	}
	return uuid.Nil, false
}

type fakeRequestRepo struct {
	contract.RequestRepository
	requests map[uuid.UUID]*entity.ServiceRequest
	updated  []*entity.ServiceRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[uuid.UUID]*entity.ServiceRequest{}}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request *entity.ServiceRequest) error {
	f.requests[request.Id] = request
	return nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, request *entity.ServiceRequest) error {
	f.requests[request.Id] = request
	f.updated = append(f.updated, request)
	return nil
}

func (f *fakeRequestRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceRequest, error) {
	if id, ok := idFromSpecs(specs); ok {
		return f.requests[id], nil
	}
	return nil, nil
}

func (f *fakeRequestRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ServiceRequest, error) {
	out := []*entity.ServiceRequest{}
	for _, r := range f.requests {
		out = append(out, r)
	}
	return out, nil
}

type fakeCompanyRepo struct {
	contract.CompanyRepository
	companies map[uuid.UUID]*entity.Company
	branches  map[uuid.UUID]*entity.Branch
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		companies: map[uuid.UUID]*entity.Company{},
		branches:  map[uuid.UUID]*entity.Branch{},
	}
}

func (f *fakeCompanyRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Company, error) {
	if id, ok := idFromSpecs(specs); ok {
		return f.companies[id], nil
	}
	return nil, nil
}

func (f *fakeCompanyRepo) FindBranch(ctx context.Context, specs ...specification.Specification) (*entity.Branch, error) {
	if id, ok := idFromSpecs(specs); ok {
		return f.branches[id], nil
	}
	return nil, nil
}

type fakeCatalogRepo struct {
	contract.CatalogRepository
	items map[uuid.UUID]*entity.ServiceCatalogItem
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{items: map[uuid.UUID]*entity.ServiceCatalogItem{}}
}

func (f *fakeCatalogRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceCatalogItem, error) {
	id, ok := idFromSpecs(specs)
	if !ok {
		return nil, nil
	}
	item := f.items[id]
	if item == nil {
		return nil, nil
	}
	for _, sp := range specs {
		if _, activeOnly := sp.(specification.ActiveOnly); activeOnly && !item.IsActive {
			return nil, nil
		}
	}
	return item, nil
}

type fakeUserRepo struct {
	contract.UserRepository
	users         map[uuid.UUID]*entity.User
	areaIds       map[uuid.UUID][]uuid.UUID
	refreshTokens map[string]*entity.UserRefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         map[uuid.UUID]*entity.User{},
		areaIds:       map[uuid.UUID][]uuid.UUID{},
		refreshTokens: map[string]*entity.UserRefreshToken{},
	}
}

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if id, ok := idFromSpecs(specs); ok {
		return f.users[id], nil
	}
	for _, sp := range specs {
		if byEmail, ok := sp.(specification.ByEmail); ok {
			for _, user := range f.users {
				if user.Email == byEmail.Email {
					return user, nil
				}
			}
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAreaIdsByUser(ctx context.Context, userId uuid.UUID) ([]uuid.UUID, error) {
	return f.areaIds[userId], nil
}

func (f *fakeUserRepo) CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error {
	f.refreshTokens[token.TokenHash] = token
	return nil
}

func (f *fakeUserRepo) FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.UserRefreshToken, error) {
	return f.refreshTokens[hash], nil
}

func (f *fakeUserRepo) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	for _, token := range f.refreshTokens {
		if token.Id == id {
			token.Revoked = true
		}
	}
	return nil
}

type fakeScheduleRepo struct {
	contract.ScheduleRepository
	schedules map[uuid.UUID]*entity.ScheduledService
	updated   []*entity.ScheduledService
	photos    []*entity.ServicePhoto
	updateErr error
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: map[uuid.UUID]*entity.ScheduledService{}}
}

func (f *fakeScheduleRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScheduledService, error) {
	if id, ok := idFromSpecs(specs); ok {
		return f.schedules[id], nil
	}
	for _, sp := range specs {
		if byRequest, ok := sp.(specification.ByServiceRequestID); ok {
			for _, s := range f.schedules {
				if s.ServiceRequestId == byRequest.ServiceRequestID {
					return s, nil
				}
			}
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScheduledService, error) {
	out := []*entity.ScheduledService{}
	for _, sp := range specs {
		if byCompany, ok := sp.(specification.ByCompanyID); ok {
			for _, s := range f.schedules {
				if s.CompanyId == byCompany.CompanyID {
					out = append(out, s)
				}
			}
			return out, nil
		}
	}
	for _, s := range f.schedules {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeScheduleRepo) Create(ctx context.Context, service *entity.ScheduledService) error {
	f.schedules[service.Id] = service
	return nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, service *entity.ScheduledService) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.schedules[service.Id] = service
	f.updated = append(f.updated, service)
	return nil
}

func (f *fakeScheduleRepo) CountByStatus(ctx context.Context, specs ...specification.Specification) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, s := range f.schedules {
		counts[string(s.Status)]++
	}
	return counts, nil
}

func (f *fakeScheduleRepo) CreatePhoto(ctx context.Context, photo *entity.ServicePhoto) error {
	f.photos = append(f.photos, photo)
	return nil
}

func (f *fakeScheduleRepo) FindPhotos(ctx context.Context, scheduledServiceId uuid.UUID) ([]*entity.ServicePhoto, error) {
	out := []*entity.ServicePhoto{}
	for _, p := range f.photos {
		if p.ScheduledServiceId == scheduledServiceId {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeConfirmationRepo struct {
	contract.ConfirmationRepository
	confirmations map[uuid.UUID]*entity.Confirmation
}

func newFakeConfirmationRepo() *fakeConfirmationRepo {
	return &fakeConfirmationRepo{confirmations: map[uuid.UUID]*entity.Confirmation{}}
}

func (f *fakeConfirmationRepo) Create(ctx context.Context, confirmation *entity.Confirmation) error {
	f.confirmations[confirmation.Id] = confirmation
	return nil
}

func (f *fakeConfirmationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Confirmation, error) {
	if id, ok := idFromSpecs(specs); ok {
		return f.confirmations[id], nil
	}
	return nil, nil
}

func (f *fakeConfirmationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Confirmation, error) {
	out := []*entity.Confirmation{}
	for _, c := range f.confirmations {
		match := true
		for _, sp := range specs {
			switch v := sp.(type) {
			case specification.ByScheduledServiceID:
				if c.ScheduledServiceId != v.ScheduledServiceID {
					match = false
				}
			case specification.ByStatus:
				if string(c.Status) != v.Status {
					match = false
				}
			}
		}
		if match {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConfirmationRepo) HasPending(ctx context.Context, scheduledServiceId uuid.UUID) (bool, error) {
	for _, c := range f.confirmations {
		if c.ScheduledServiceId == scheduledServiceId && c.Status == entity.ConfirmationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

// ResolvePending mirrors the conditional UPDATE: it only flips a row that is
// still pending and reports how many rows changed.
func (f *fakeConfirmationRepo) ResolvePending(ctx context.Context, id uuid.UUID, status entity.ConfirmationStatus, responseReason *string, resolvedAt time.Time) (int64, error) {
	c, ok := f.confirmations[id]
	if !ok || c.Status != entity.ConfirmationStatusPending {
		return 0, nil
	}
	c.Status = status
	c.ResponseReason = responseReason
	c.ResolvedAt = &resolvedAt
	return 1, nil
}

// fakeInvoiceRepo is written from the consumer goroutine in the pipeline
// tests, so its state sits behind a mutex.
type fakeInvoiceRepo struct {
	contract.InvoiceRepository
	mu       sync.Mutex
	invoices map[uuid.UUID]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[uuid.UUID]*entity.Invoice{}}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.invoices {
		if existing.Number == invoice.Number {
			return gorm.ErrDuplicatedKey
		}
	}
	f.invoices[invoice.Id] = invoice
	return nil
}

func (f *fakeInvoiceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := idFromSpecs(specs)
	if !ok {
		return nil, nil
	}
	invoice := f.invoices[id]
	if invoice == nil {
		return nil, nil
	}
	for _, sp := range specs {
		if byCompany, isCompany := sp.(specification.ByCompanyID); isCompany && invoice.CompanyId != byCompany.CompanyID {
			return nil, nil
		}
	}
	return invoice, nil
}

func (f *fakeInvoiceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Invoice{}
	for _, invoice := range f.invoices {
		match := true
		for _, sp := range specs {
			switch v := sp.(type) {
			case specification.ByCompanyID:
				if invoice.CompanyId != v.CompanyID {
					match = false
				}
			case specification.ByStatus:
				if string(invoice.Status) != v.Status {
					match = false
				}
			}
		}
		if match {
			out = append(out, invoice)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.invoices)), nil
}

func (f *fakeInvoiceRepo) all() []*entity.Invoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Invoice, 0, len(f.invoices))
	for _, invoice := range f.invoices {
		out = append(out, invoice)
	}
	return out
}

// fakeUow hands out the fakes. The services mutate entities in place through
// shared pointers, so Begin snapshots the stores by value and Rollback copies
// the old values back and drops rows created inside the transaction.
type fakeUow struct {
	unitofwork.UnitOfWork
	requests      *fakeRequestRepo
	companies     *fakeCompanyRepo
	catalog       *fakeCatalogRepo
	users         *fakeUserRepo
	schedules     *fakeScheduleRepo
	confirmations *fakeConfirmationRepo
	invoices      *fakeInvoiceRepo

	inTx             bool
	requestSnap      map[uuid.UUID]entity.ServiceRequest
	scheduleSnap     map[uuid.UUID]entity.ScheduledService
	confirmationSnap map[uuid.UUID]entity.Confirmation
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		requests:      newFakeRequestRepo(),
		companies:     newFakeCompanyRepo(),
		catalog:       newFakeCatalogRepo(),
		users:         newFakeUserRepo(),
		schedules:     newFakeScheduleRepo(),
		confirmations: newFakeConfirmationRepo(),
		invoices:      newFakeInvoiceRepo(),
	}
}

func (f *fakeUow) Begin(ctx context.Context) error {
	f.requestSnap = map[uuid.UUID]entity.ServiceRequest{}
	for id, r := range f.requests.requests {
		f.requestSnap[id] = *r
	}
	f.scheduleSnap = map[uuid.UUID]entity.ScheduledService{}
	for id, s := range f.schedules.schedules {
		f.scheduleSnap[id] = *s
	}
	f.confirmationSnap = map[uuid.UUID]entity.Confirmation{}
	for id, c := range f.confirmations.confirmations {
		f.confirmationSnap[id] = *c
	}
	f.inTx = true
	return nil
}

func (f *fakeUow) Commit() error {
	f.inTx = false
	return nil
}

func (f *fakeUow) Rollback() error {
	if !f.inTx {
		return nil
	}
	for id, r := range f.requests.requests {
		if snap, ok := f.requestSnap[id]; ok {
			*r = snap
		} else {
			delete(f.requests.requests, id)
		}
	}
	for id, s := range f.schedules.schedules {
		if snap, ok := f.scheduleSnap[id]; ok {
			*s = snap
		} else {
			delete(f.schedules.schedules, id)
		}
	}
	for id, c := range f.confirmations.confirmations {
		if snap, ok := f.confirmationSnap[id]; ok {
			*c = snap
		} else {
			delete(f.confirmations.confirmations, id)
		}
	}
	f.inTx = false
	return nil
}

func (f *fakeUow) RequestRepository() contract.RequestRepository           { return f.requests }
func (f *fakeUow) CompanyRepository() contract.CompanyRepository           { return f.companies }
func (f *fakeUow) CatalogRepository() contract.CatalogRepository           { return f.catalog }
func (f *fakeUow) UserRepository() contract.UserRepository                 { return f.users }
func (f *fakeUow) ScheduleRepository() contract.ScheduleRepository         { return f.schedules }
func (f *fakeUow) ConfirmationRepository() contract.ConfirmationRepository { return f.confirmations }
func (f *fakeUow) InvoiceRepository() contract.InvoiceRepository           { return f.invoices }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// recordingPublisher captures watermill payloads handed to the invoice pipeline.
type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// noopMailer satisfies mailer.IEmailService without touching the network.
type noopMailer struct{}

func (noopMailer) SendRescheduleProposal(toEmail, serviceName string, currentDate, proposedDate time.Time, reason string) error {
	return nil
}

func (noopMailer) SendRescheduleResolution(toEmail, serviceName string, accepted bool, finalDate time.Time) error {
	return nil
}
