package mapper

import (
	"encoding/json"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/model"

	"gorm.io/datatypes"
)

type InvoiceMapper struct{}

func NewInvoiceMapper() *InvoiceMapper {
	return &InvoiceMapper{}
}

func (m *InvoiceMapper) ToEntity(i *model.Invoice) *entity.Invoice {
	if i == nil {
		return nil
	}
	var lines []entity.InvoiceLine
	if len(i.Lines) > 0 {
		_ = json.Unmarshal(i.Lines, &lines)
	}
	return &entity.Invoice{
		Id:          i.Id,
		CompanyId:   i.CompanyId,
		Number:      i.Number,
		IssueDate:   i.IssueDate,
		DueDate:     i.DueDate,
		Status:      entity.InvoiceStatus(i.Status),
		TotalAmount: i.TotalAmount,
		Lines:       lines,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   optionalTime(i.UpdatedAt),
	}
}

func (m *InvoiceMapper) ToModel(i *entity.Invoice) *model.Invoice {
	if i == nil {
		return nil
	}
	var lines datatypes.JSON
	if i.Lines != nil {
		raw, _ := json.Marshal(i.Lines)
		lines = datatypes.JSON(raw)
	}
	out := &model.Invoice{
		Id:          i.Id,
		CompanyId:   i.CompanyId,
		Number:      i.Number,
		IssueDate:   i.IssueDate,
		DueDate:     i.DueDate,
		Status:      string(i.Status),
		TotalAmount: i.TotalAmount,
		Lines:       lines,
		CreatedAt:   i.CreatedAt,
	}
	if i.UpdatedAt != nil {
		out.UpdatedAt = *i.UpdatedAt
	}
	return out
}

func (m *InvoiceMapper) ToEntities(invoices []*model.Invoice) []*entity.Invoice {
	entities := make([]*entity.Invoice, len(invoices))
	for i, inv := range invoices {
		entities[i] = m.ToEntity(inv)
	}
	return entities
}
