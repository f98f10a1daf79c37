package mapper

import (
	"time"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/model"
)

type CompanyMapper struct{}

func NewCompanyMapper() *CompanyMapper {
	return &CompanyMapper{}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	out := t
	return &out
}

func (m *CompanyMapper) AreaToEntity(a *model.Area) *entity.Area {
	if a == nil {
		return nil
	}
	return &entity.Area{Id: a.Id, Code: a.Code, Name: a.Name}
}

func (m *CompanyMapper) AreasToEntities(areas []*model.Area) []*entity.Area {
	entities := make([]*entity.Area, len(areas))
	for i, a := range areas {
		entities[i] = m.AreaToEntity(a)
	}
	return entities
}

func (m *CompanyMapper) ToEntity(c *model.Company) *entity.Company {
	if c == nil {
		return nil
	}
	return &entity.Company{
		Id:        c.Id,
		Name:      c.Name,
		TradeName: c.TradeName,
		Document:  c.Document,
		Email:     c.Email,
		Phone:     c.Phone,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: optionalTime(c.UpdatedAt),
	}
}

func (m *CompanyMapper) ToModel(c *entity.Company) *model.Company {
	if c == nil {
		return nil
	}
	out := &model.Company{
		Id:        c.Id,
		Name:      c.Name,
		TradeName: c.TradeName,
		Document:  c.Document,
		Email:     c.Email,
		Phone:     c.Phone,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
	if c.UpdatedAt != nil {
		out.UpdatedAt = *c.UpdatedAt
	}
	return out
}

func (m *CompanyMapper) ToEntities(companies []*model.Company) []*entity.Company {
	entities := make([]*entity.Company, len(companies))
	for i, c := range companies {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CompanyMapper) BranchToEntity(b *model.Branch) *entity.Branch {
	if b == nil {
		return nil
	}
	return &entity.Branch{
		Id:        b.Id,
		CompanyId: b.CompanyId,
		AreaId:    b.AreaId,
		Name:      b.Name,
		Address:   b.Address,
		City:      b.City,
		CreatedAt: b.CreatedAt,
		UpdatedAt: optionalTime(b.UpdatedAt),
	}
}

func (m *CompanyMapper) BranchToModel(b *entity.Branch) *model.Branch {
	if b == nil {
		return nil
	}
	out := &model.Branch{
		Id:        b.Id,
		CompanyId: b.CompanyId,
		AreaId:    b.AreaId,
		Name:      b.Name,
		Address:   b.Address,
		City:      b.City,
		CreatedAt: b.CreatedAt,
	}
	if b.UpdatedAt != nil {
		out.UpdatedAt = *b.UpdatedAt
	}
	return out
}

func (m *CompanyMapper) BranchesToEntities(branches []*model.Branch) []*entity.Branch {
	entities := make([]*entity.Branch, len(branches))
	for i, b := range branches {
		entities[i] = m.BranchToEntity(b)
	}
	return entities
}
