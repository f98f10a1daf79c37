package dto

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceLineDTO struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"required,min=0"`
	UnitPrice   float64 `json:"unit_price" validate:"required,min=0"`
	Amount      float64 `json:"amount"`
}

type CreateInvoiceRequest struct {
	CompanyId uuid.UUID        `json:"company_id" validate:"required"`
	DueDate   string           `json:"due_date" validate:"required,datetime=2006-01-02"`
	Lines     []InvoiceLineDTO `json:"lines" validate:"required,min=1,dive"`
}

type InvoiceResponse struct {
	Id          uuid.UUID        `json:"id"`
	CompanyId   uuid.UUID        `json:"company_id"`
	Number      string           `json:"number"`
	IssueDate   time.Time        `json:"issue_date"`
	DueDate     time.Time        `json:"due_date"`
	Status      string           `json:"status"`
	TotalAmount float64          `json:"total_amount"`
	Lines       []InvoiceLineDTO `json:"lines"`
}

type ListInvoicesQuery struct {
	Status string `query:"status"`
}
