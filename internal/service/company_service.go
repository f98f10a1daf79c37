package service

import (
	"context"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	List(ctx context.Context) ([]*dto.CompanyResponse, error)
	CreateBranch(ctx context.Context, req *dto.CreateBranchRequest) (*dto.BranchResponse, error)
	ListBranches(ctx context.Context, user *AuthContext, companyId *uuid.UUID) ([]*dto.BranchResponse, error)
	ListAreas(ctx context.Context) ([]*dto.AreaResponse, error)
}

type companyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCompanyService(uowFactory unitofwork.RepositoryFactory) ICompanyService {
	return &companyService{uowFactory: uowFactory}
}

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company := &entity.Company{
		Id:        uuid.New(),
		Name:      req.Name,
		Document:  req.Document,
		Email:     req.Email,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if req.TradeName != "" {
		company.TradeName = &req.TradeName
	}
	if req.Phone != "" {
		company.Phone = &req.Phone
	}

	if err := uow.CompanyRepository().Create(ctx, company); err != nil {
		return nil, err
	}
	return s.toResponse(company), nil
}

func (s *companyService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, serverutils.NewNotFound("company not found")
	}

	company.Name = req.Name
	company.Email = req.Email
	if req.TradeName != "" {
		company.TradeName = &req.TradeName
	}
	if req.Phone != "" {
		company.Phone = &req.Phone
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	if err := uow.CompanyRepository().Update(ctx, company); err != nil {
		return nil, err
	}
	return s.toResponse(company), nil
}

func (s *companyService) List(ctx context.Context) ([]*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	companies, err := uow.CompanyRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		res = append(res, s.toResponse(company))
	}
	return res, nil
}

func (s *companyService) CreateBranch(ctx context.Context, req *dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: req.CompanyId})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, serverutils.NewBadRequest("company not found")
	}

	branch := &entity.Branch{
		Id:        uuid.New(),
		CompanyId: req.CompanyId,
		AreaId:    req.AreaId,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		CreatedAt: time.Now(),
	}

	if err := uow.CompanyRepository().CreateBranch(ctx, branch); err != nil {
		return nil, err
	}
	return s.toBranchResponse(ctx, uow, branch), nil
}

func (s *companyService) ListBranches(ctx context.Context, user *AuthContext, companyId *uuid.UUID) ([]*dto.BranchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Clients always see their own branches only.
	if user.Role == entity.UserRoleClient {
		if user.ClientId == nil {
			return nil, serverutils.NewForbidden("no company bound to this account")
		}
		companyId = user.ClientId
	}

	specs := []specification.Specification{}
	if companyId != nil {
		specs = append(specs, specification.ByCompanyID{CompanyID: *companyId})
	}

	branches, err := uow.CompanyRepository().FindBranches(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.BranchResponse, 0, len(branches))
	for _, branch := range branches {
		res = append(res, s.toBranchResponse(ctx, uow, branch))
	}
	return res, nil
}

func (s *companyService) ListAreas(ctx context.Context) ([]*dto.AreaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	areas, err := uow.CompanyRepository().FindAreas(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AreaResponse, 0, len(areas))
	for _, area := range areas {
		res = append(res, &dto.AreaResponse{Id: area.Id, Code: area.Code, Name: area.Name})
	}
	return res, nil
}

func (s *companyService) toResponse(company *entity.Company) *dto.CompanyResponse {
	res := &dto.CompanyResponse{
		Id:        company.Id,
		Name:      company.Name,
		Document:  company.Document,
		Email:     company.Email,
		IsActive:  company.IsActive,
		CreatedAt: company.CreatedAt,
	}
	if company.TradeName != nil {
		res.TradeName = *company.TradeName
	}
	if company.Phone != nil {
		res.Phone = *company.Phone
	}
	return res
}

func (s *companyService) toBranchResponse(ctx context.Context, uow unitofwork.UnitOfWork, branch *entity.Branch) *dto.BranchResponse {
	res := &dto.BranchResponse{
		Id:        branch.Id,
		CompanyId: branch.CompanyId,
		AreaId:    branch.AreaId,
		Name:      branch.Name,
		Address:   branch.Address,
		City:      branch.City,
	}
	if areas, err := uow.CompanyRepository().FindAreas(ctx); err == nil {
		for _, area := range areas {
			if area.Id == branch.AreaId {
				res.AreaCode = area.Code
				break
			}
		}
	}
	return res
}
