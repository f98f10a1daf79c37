package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/repository/contract"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"
	"facility-services-be/pkg/pdf"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IInvoiceService interface {
	Create(ctx context.Context, user *AuthContext, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	ListForCompany(ctx context.Context, user *AuthContext, query *dto.ListInvoicesQuery) ([]*dto.InvoiceResponse, error)
	RenderPdf(ctx context.Context, user *AuthContext, id uuid.UUID) ([]byte, string, error)
}

type invoiceService struct {
	uowFactory unitofwork.RepositoryFactory
	renderer   *pdf.InvoiceRenderer
}

func NewInvoiceService(uowFactory unitofwork.RepositoryFactory, renderer *pdf.InvoiceRenderer) IInvoiceService {
	return &invoiceService{
		uowFactory: uowFactory,
		renderer:   renderer,
	}
}

func (s *invoiceService) Create(ctx context.Context, user *AuthContext, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if user.Role != entity.UserRoleAdmin {
		return nil, serverutils.NewForbidden("invoice creation requires admin access")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: req.CompanyId})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, serverutils.NewBadRequest("company not found")
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, serverutils.NewBadRequest("due_date must be YYYY-MM-DD")
	}

	lines := make([]entity.InvoiceLine, 0, len(req.Lines))
	var total float64
	for _, l := range req.Lines {
		amount := l.Amount
		if amount == 0 {
			amount = l.Quantity * l.UnitPrice
		}
		total += amount
		lines = append(lines, entity.InvoiceLine{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      amount,
		})
	}

	seq, err := uow.InvoiceRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := &entity.Invoice{
		Id:          uuid.New(),
		CompanyId:   company.Id,
		IssueDate:   now,
		DueDate:     dueDate,
		Status:      entity.InvoiceStatusOpen,
		TotalAmount: total,
		Lines:       lines,
		CreatedAt:   now,
	}

	if err := createNumberedInvoice(ctx, uow.InvoiceRepository(), invoice, seq); err != nil {
		return nil, err
	}

	return s.toResponse(invoice), nil
}

// Invoice numbers come from a count-based sequence, so two concurrent writers
// can mint the same one. The unique index on number arbitrates; the loser
// re-numbers and retries.
func createNumberedInvoice(ctx context.Context, repo contract.InvoiceRepository, invoice *entity.Invoice, seq int64) error {
	for attempt := int64(0); ; attempt++ {
		invoice.Number = fmt.Sprintf("INV-%d-%05d", invoice.IssueDate.Year(), seq+1+attempt)
		err := repo.Create(ctx, invoice)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= 4 {
			return err
		}
	}
}

func (s *invoiceService) ListForCompany(ctx context.Context, user *AuthContext, query *dto.ListInvoicesQuery) ([]*dto.InvoiceResponse, error) {
	if user.Role != entity.UserRoleClient || user.ClientId == nil {
		return nil, serverutils.NewForbidden("invoices are a client-portal view")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.ByCompanyID{CompanyID: *user.ClientId}}
	if query.Status != "" {
		specs = append(specs, specification.ByStatus{Status: query.Status})
	}

	invoices, err := uow.InvoiceRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	// Flag overdue invoices lazily at read time.
	res := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice.Status == entity.InvoiceStatusOpen && invoice.DueDate.Before(time.Now()) {
			invoice.Status = entity.InvoiceStatusOverdue
		}
		res = append(res, s.toResponse(invoice))
	}
	return res, nil
}

func (s *invoiceService) RenderPdf(ctx context.Context, user *AuthContext, id uuid.UUID) ([]byte, string, error) {
	if user.Role != entity.UserRoleClient || user.ClientId == nil {
		return nil, "", serverutils.NewForbidden("invoices are a client-portal view")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Scoping by company makes a foreign invoice indistinguishable from a missing one.
	invoice, err := uow.InvoiceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByCompanyID{CompanyID: *user.ClientId},
	)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", serverutils.NewNotFound("invoice not found")
	}

	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: invoice.CompanyId})
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", serverutils.NewNotFound("invoice not found")
	}

	payload, err := s.renderer.Render(invoice, company)
	if err != nil {
		return nil, "", err
	}
	return payload, fmt.Sprintf("%s.pdf", invoice.Number), nil
}

func (s *invoiceService) toResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	lines := make([]dto.InvoiceLineDTO, 0, len(invoice.Lines))
	for _, l := range invoice.Lines {
		lines = append(lines, dto.InvoiceLineDTO{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
		})
	}
	return &dto.InvoiceResponse{
		Id:          invoice.Id,
		CompanyId:   invoice.CompanyId,
		Number:      invoice.Number,
		IssueDate:   invoice.IssueDate,
		DueDate:     invoice.DueDate,
		Status:      string(invoice.Status),
		TotalAmount: invoice.TotalAmount,
		Lines:       lines,
	}
}
