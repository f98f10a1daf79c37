package mapper

import (
	"facility-services-be/internal/entity"
	"facility-services-be/internal/model"
)

type ConfirmationMapper struct{}

func NewConfirmationMapper() *ConfirmationMapper {
	return &ConfirmationMapper{}
}

func (m *ConfirmationMapper) ToEntity(c *model.Confirmation) *entity.Confirmation {
	if c == nil {
		return nil
	}
	return &entity.Confirmation{
		Id:                 c.Id,
		ScheduledServiceId: c.ScheduledServiceId,
		RequestedDate:      c.RequestedDate,
		ProposedDate:       c.ProposedDate,
		Reason:             c.Reason,
		Status:             entity.ConfirmationStatus(c.Status),
		ResponseReason:     c.ResponseReason,
		ProposedByUserId:   c.ProposedByUserId,
		ResolvedAt:         c.ResolvedAt,
		CreatedAt:          c.CreatedAt,
	}
}

func (m *ConfirmationMapper) ToModel(c *entity.Confirmation) *model.Confirmation {
	if c == nil {
		return nil
	}
	return &model.Confirmation{
		Id:                 c.Id,
		ScheduledServiceId: c.ScheduledServiceId,
		RequestedDate:      c.RequestedDate,
		ProposedDate:       c.ProposedDate,
		Reason:             c.Reason,
		Status:             string(c.Status),
		ResponseReason:     c.ResponseReason,
		ProposedByUserId:   c.ProposedByUserId,
		ResolvedAt:         c.ResolvedAt,
		CreatedAt:          c.CreatedAt,
	}
}

func (m *ConfirmationMapper) ToEntities(confirmations []*model.Confirmation) []*entity.Confirmation {
	entities := make([]*entity.Confirmation, len(confirmations))
	for i, c := range confirmations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
