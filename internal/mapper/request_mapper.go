package mapper

import (
	"facility-services-be/internal/entity"
	"facility-services-be/internal/model"
)

type RequestMapper struct{}

func NewRequestMapper() *RequestMapper {
	return &RequestMapper{}
}

func (m *RequestMapper) ToEntity(r *model.ServiceRequest) *entity.ServiceRequest {
	if r == nil {
		return nil
	}
	return &entity.ServiceRequest{
		Id:                    r.Id,
		CompanyId:             r.CompanyId,
		BranchId:              r.BranchId,
		ServiceCatalogId:      r.ServiceCatalogId,
		RequesterUserId:       r.RequesterUserId,
		AssignedManagerUserId: r.AssignedManagerUserId,
		Priority:              entity.RequestPriority(r.Priority),
		Status:                entity.RequestStatus(r.Status),
		DesiredDate:           r.DesiredDate,
		Description:           r.Description,
		RejectionReason:       r.RejectionReason,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             optionalTime(r.UpdatedAt),
	}
}

func (m *RequestMapper) ToModel(r *entity.ServiceRequest) *model.ServiceRequest {
	if r == nil {
		return nil
	}
	out := &model.ServiceRequest{
		Id:                    r.Id,
		CompanyId:             r.CompanyId,
		BranchId:              r.BranchId,
		ServiceCatalogId:      r.ServiceCatalogId,
		RequesterUserId:       r.RequesterUserId,
		AssignedManagerUserId: r.AssignedManagerUserId,
		Priority:              string(r.Priority),
		Status:                string(r.Status),
		DesiredDate:           r.DesiredDate,
		Description:           r.Description,
		RejectionReason:       r.RejectionReason,
		CreatedAt:             r.CreatedAt,
	}
	if r.UpdatedAt != nil {
		out.UpdatedAt = *r.UpdatedAt
	}
	return out
}

func (m *RequestMapper) ToEntities(requests []*model.ServiceRequest) []*entity.ServiceRequest {
	entities := make([]*entity.ServiceRequest, len(requests))
	for i, r := range requests {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
