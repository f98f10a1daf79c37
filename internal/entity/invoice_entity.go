package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusOpen      InvoiceStatus = "open"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

type Invoice struct {
	Id          uuid.UUID
	CompanyId   uuid.UUID
	Number      string
	IssueDate   time.Time
	DueDate     time.Time
	Status      InvoiceStatus
	TotalAmount float64
	Lines       []InvoiceLine
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
