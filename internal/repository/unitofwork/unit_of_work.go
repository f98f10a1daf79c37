package unitofwork

import (
	"context"

	"facility-services-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CompanyRepository() contract.CompanyRepository
	CatalogRepository() contract.CatalogRepository
	RequestRepository() contract.RequestRepository
	ScheduleRepository() contract.ScheduleRepository
	ConfirmationRepository() contract.ConfirmationRepository
	InvoiceRepository() contract.InvoiceRepository
	ConversationRepository() contract.ConversationRepository
}
