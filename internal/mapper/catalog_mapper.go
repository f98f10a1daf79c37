package mapper

import (
	"facility-services-be/internal/entity"
	"facility-services-be/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) ToEntity(i *model.ServiceCatalogItem) *entity.ServiceCatalogItem {
	if i == nil {
		return nil
	}
	return &entity.ServiceCatalogItem{
		Id:                  i.Id,
		Code:                i.Code,
		Name:                i.Name,
		Description:         i.Description,
		Category:            i.Category,
		BaseDurationMinutes: i.BaseDurationMinutes,
		IsActive:            i.IsActive,
		CreatedAt:           i.CreatedAt,
		UpdatedAt:           optionalTime(i.UpdatedAt),
	}
}

func (m *CatalogMapper) ToModel(i *entity.ServiceCatalogItem) *model.ServiceCatalogItem {
	if i == nil {
		return nil
	}
	out := &model.ServiceCatalogItem{
		Id:                  i.Id,
		Code:                i.Code,
		Name:                i.Name,
		Description:         i.Description,
		Category:            i.Category,
		BaseDurationMinutes: i.BaseDurationMinutes,
		IsActive:            i.IsActive,
		CreatedAt:           i.CreatedAt,
	}
	if i.UpdatedAt != nil {
		out.UpdatedAt = *i.UpdatedAt
	}
	return out
}

func (m *CatalogMapper) ToEntities(items []*model.ServiceCatalogItem) []*entity.ServiceCatalogItem {
	entities := make([]*entity.ServiceCatalogItem, len(items))
	for i, item := range items {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
