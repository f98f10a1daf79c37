package mapper

import (
	"encoding/json"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/model"

	"gorm.io/datatypes"
)

type ScheduleMapper struct{}

func NewScheduleMapper() *ScheduleMapper {
	return &ScheduleMapper{}
}

func (m *ScheduleMapper) ToEntity(s *model.ScheduledService) *entity.ScheduledService {
	if s == nil {
		return nil
	}
	return &entity.ScheduledService{
		Id:                 s.Id,
		ServiceRequestId:   s.ServiceRequestId,
		CompanyId:          s.CompanyId,
		BranchId:           s.BranchId,
		CollaboratorUserId: s.CollaboratorUserId,
		ScheduledDate:      s.ScheduledDate,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		Status:             entity.ScheduleStatus(s.Status),
		Notes:              s.Notes,
		StartedAt:          s.StartedAt,
		CompletedAt:        s.CompletedAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          optionalTime(s.UpdatedAt),
	}
}

func (m *ScheduleMapper) ToModel(s *entity.ScheduledService) *model.ScheduledService {
	if s == nil {
		return nil
	}
	out := &model.ScheduledService{
		Id:                 s.Id,
		ServiceRequestId:   s.ServiceRequestId,
		CompanyId:          s.CompanyId,
		BranchId:           s.BranchId,
		CollaboratorUserId: s.CollaboratorUserId,
		ScheduledDate:      s.ScheduledDate,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		Status:             string(s.Status),
		Notes:              s.Notes,
		StartedAt:          s.StartedAt,
		CompletedAt:        s.CompletedAt,
		CreatedAt:          s.CreatedAt,
	}
	if s.UpdatedAt != nil {
		out.UpdatedAt = *s.UpdatedAt
	}
	return out
}

func (m *ScheduleMapper) ToEntities(services []*model.ScheduledService) []*entity.ScheduledService {
	entities := make([]*entity.ScheduledService, len(services))
	for i, s := range services {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *ScheduleMapper) PhotoToEntity(p *model.ServicePhoto) *entity.ServicePhoto {
	if p == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(p.Metadata) > 0 {
		_ = json.Unmarshal(p.Metadata, &metadata)
	}
	return &entity.ServicePhoto{
		Id:                 p.Id,
		ScheduledServiceId: p.ScheduledServiceId,
		UploaderUserId:     p.UploaderUserId,
		FilePath:           p.FilePath,
		Caption:            p.Caption,
		TakenAt:            p.TakenAt,
		Metadata:           metadata,
		CreatedAt:          p.CreatedAt,
	}
}

func (m *ScheduleMapper) PhotoToModel(p *entity.ServicePhoto) *model.ServicePhoto {
	if p == nil {
		return nil
	}
	var metadata datatypes.JSON
	if p.Metadata != nil {
		raw, _ := json.Marshal(p.Metadata)
		metadata = datatypes.JSON(raw)
	}
	return &model.ServicePhoto{
		Id:                 p.Id,
		ScheduledServiceId: p.ScheduledServiceId,
		UploaderUserId:     p.UploaderUserId,
		FilePath:           p.FilePath,
		Caption:            p.Caption,
		TakenAt:            p.TakenAt,
		Metadata:           metadata,
		CreatedAt:          p.CreatedAt,
	}
}

func (m *ScheduleMapper) PhotosToEntities(photos []*model.ServicePhoto) []*entity.ServicePhoto {
	entities := make([]*entity.ServicePhoto, len(photos))
	for i, p := range photos {
		entities[i] = m.PhotoToEntity(p)
	}
	return entities
}
