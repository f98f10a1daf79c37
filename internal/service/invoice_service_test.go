package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/pkg/pdf"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newInvoiceSvc(uow *fakeUow) IInvoiceService {
	return NewInvoiceService(&fakeFactory{uow: uow}, pdf.NewInvoiceRenderer("Facility Services"))
}

func seedInvoice(uow *fakeUow, companyId uuid.UUID, status entity.InvoiceStatus, dueDate time.Time) *entity.Invoice {
	invoice := &entity.Invoice{
		Id:          uuid.New(),
		CompanyId:   companyId,
		Number:      fmt.Sprintf("INV-%d-%05d", dueDate.Year(), len(uow.invoices.invoices)+1),
		IssueDate:   dueDate.AddDate(0, -1, 0),
		DueDate:     dueDate,
		Status:      status,
		TotalAmount: 150,
		Lines:       []entity.InvoiceLine{{Description: "Limpeza Geral", Quantity: 1, UnitPrice: 150, Amount: 150}},
		CreatedAt:   time.Now(),
	}
	uow.invoices.invoices[invoice.Id] = invoice
	return invoice
}

func TestInvoiceCreateRequiresAdmin(t *testing.T) {
	uow := newFakeUow()
	svc := newInvoiceSvc(uow)

	companyId := uuid.New()
	user := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	_, err := svc.Create(context.Background(), user, &dto.CreateInvoiceRequest{})
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestInvoiceCreateNumbersSequentially(t *testing.T) {
	uow := newFakeUow()
	companyId, _, _ := seedRequestFixture(uow)
	seedInvoice(uow, companyId, entity.InvoiceStatusPaid, time.Now().AddDate(0, -2, 0))
	svc := newInvoiceSvc(uow)

	admin := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleAdmin}
	res, err := svc.Create(context.Background(), admin, &dto.CreateInvoiceRequest{
		CompanyId: companyId,
		DueDate:   "2026-10-15",
		Lines: []dto.InvoiceLineDTO{
			{Description: "Limpeza de vidros", Quantity: 2, UnitPrice: 80},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-%d-00002", time.Now().Year()), res.Number)
	assert.Equal(t, "open", res.Status)
}

func TestInvoiceCreateDerivesLineAmounts(t *testing.T) {
	uow := newFakeUow()
	companyId, _, _ := seedRequestFixture(uow)
	svc := newInvoiceSvc(uow)

	admin := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleAdmin}
	res, err := svc.Create(context.Background(), admin, &dto.CreateInvoiceRequest{
		CompanyId: companyId,
		DueDate:   "2026-10-15",
		Lines: []dto.InvoiceLineDTO{
			{Description: "Jardinagem", Quantity: 3, UnitPrice: 50},
			{Description: "Taxa de deslocamento", Quantity: 1, UnitPrice: 0, Amount: 25},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 150.0, res.Lines[0].Amount)
	assert.Equal(t, 25.0, res.Lines[1].Amount)
	assert.Equal(t, 175.0, res.TotalAmount)
}

func TestInvoiceCreateUnknownCompanyFails(t *testing.T) {
	uow := newFakeUow()
	svc := newInvoiceSvc(uow)

	admin := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleAdmin}
	_, err := svc.Create(context.Background(), admin, &dto.CreateInvoiceRequest{
		CompanyId: uuid.New(),
		DueDate:   "2026-10-15",
		Lines:     []dto.InvoiceLineDTO{{Description: "Limpeza", Quantity: 1, UnitPrice: 100}},
	})
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestInvoiceListIsClientOnly(t *testing.T) {
	uow := newFakeUow()
	svc := newInvoiceSvc(uow)

	_, err := svc.ListForCompany(context.Background(), &AuthContext{UserId: uuid.New(), Role: entity.UserRoleAdmin}, &dto.ListInvoicesQuery{})
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestInvoiceListFlagsOverdueAtReadTime(t *testing.T) {
	uow := newFakeUow()
	companyId, _, _ := seedRequestFixture(uow)
	lapsed := seedInvoice(uow, companyId, entity.InvoiceStatusOpen, time.Now().AddDate(0, 0, -10))
	current := seedInvoice(uow, companyId, entity.InvoiceStatusOpen, time.Now().AddDate(0, 1, 0))
	svc := newInvoiceSvc(uow)

	user := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	res, err := svc.ListForCompany(context.Background(), user, &dto.ListInvoicesQuery{})
	assert.NoError(t, err)
	assert.Len(t, res, 2)

	byId := map[uuid.UUID]string{}
	for _, inv := range res {
		byId[inv.Id] = inv.Status
	}
	assert.Equal(t, "overdue", byId[lapsed.Id])
	assert.Equal(t, "open", byId[current.Id])
}

func TestInvoiceListScopesToOwnCompany(t *testing.T) {
	uow := newFakeUow()
	companyId, _, _ := seedRequestFixture(uow)
	seedInvoice(uow, companyId, entity.InvoiceStatusPaid, time.Now())
	seedInvoice(uow, uuid.New(), entity.InvoiceStatusPaid, time.Now())
	svc := newInvoiceSvc(uow)

	user := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	res, err := svc.ListForCompany(context.Background(), user, &dto.ListInvoicesQuery{Status: "paid"})
	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, companyId, res[0].CompanyId)
}

func TestInvoicePdfForeignInvoiceIsNotFound(t *testing.T) {
	uow := newFakeUow()
	companyId, _, _ := seedRequestFixture(uow)
	foreign := seedInvoice(uow, uuid.New(), entity.InvoiceStatusOpen, time.Now())
	svc := newInvoiceSvc(uow)

	user := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	_, _, err := svc.RenderPdf(context.Background(), user, foreign.Id)
	assert.Equal(t, 404, apiErrorCode(t, err))
}

func TestInvoicePdfRendersOwnInvoice(t *testing.T) {
	uow := newFakeUow()
	companyId, _, _ := seedRequestFixture(uow)
	invoice := seedInvoice(uow, companyId, entity.InvoiceStatusOpen, time.Now().AddDate(0, 1, 0))
	svc := newInvoiceSvc(uow)

	user := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	payload, filename, err := svc.RenderPdf(context.Background(), user, invoice.Id)
	assert.NoError(t, err)
	assert.Equal(t, invoice.Number+".pdf", filename)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestInvoiceCreateRenumbersOnCollision(t *testing.T) {
	uow := newFakeUow()
	companyId, _, _ := seedRequestFixture(uow)
	taken := seedInvoice(uow, companyId, entity.InvoiceStatusPaid, time.Now())
	taken.Number = fmt.Sprintf("INV-%d-%05d", time.Now().Year(), 2)
	svc := newInvoiceSvc(uow)

	// Count says 1 row, so the first attempt mints 00002 and loses to the
	// unique index; the retry lands on 00003.
	admin := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleAdmin}
	res, err := svc.Create(context.Background(), admin, &dto.CreateInvoiceRequest{
		CompanyId: companyId,
		DueDate:   "2026-10-15",
		Lines:     []dto.InvoiceLineDTO{{Description: "Limpeza", Quantity: 1, UnitPrice: 100}},
	})
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-%d-%05d", time.Now().Year(), 3), res.Number)
	assert.Len(t, uow.invoices.all(), 2)
}
