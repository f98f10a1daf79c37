package service

import (
	"context"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/repository/memory"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICatalogService interface {
	ListActive(ctx context.Context) ([]*dto.CatalogItemResponse, error)
	ListAll(ctx context.Context) ([]*dto.CatalogItemResponse, error)
	Create(ctx context.Context, req *dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory, cache *memory.CatalogCache) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *catalogService) ListActive(ctx context.Context) ([]*dto.CatalogItemResponse, error) {
	if items, found := s.cache.Get(); found {
		return s.toResponses(items), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, err := uow.CatalogRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	s.cache.Save(items)
	return s.toResponses(items), nil
}

func (s *catalogService) ListAll(ctx context.Context) ([]*dto.CatalogItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, err := uow.CatalogRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(items), nil
}

func (s *catalogService) Create(ctx context.Context, req *dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item := &entity.ServiceCatalogItem{
		Id:                  uuid.New(),
		Code:                req.Code,
		Name:                req.Name,
		Description:         req.Description,
		Category:            req.Category,
		BaseDurationMinutes: req.BaseDurationMinutes,
		IsActive:            true,
		CreatedAt:           time.Now(),
	}

	if err := uow.CatalogRepository().Create(ctx, item); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return s.toResponse(item), nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.CatalogRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, serverutils.NewNotFound("catalog item not found")
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.BaseDurationMinutes = req.BaseDurationMinutes
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := uow.CatalogRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return s.toResponse(item), nil
}

func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.CatalogRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if item == nil {
		return serverutils.NewNotFound("catalog item not found")
	}

	if err := uow.CatalogRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

func (s *catalogService) toResponse(item *entity.ServiceCatalogItem) *dto.CatalogItemResponse {
	return &dto.CatalogItemResponse{
		Id:                  item.Id,
		Code:                item.Code,
		Name:                item.Name,
		Description:         item.Description,
		Category:            item.Category,
		BaseDurationMinutes: item.BaseDurationMinutes,
		IsActive:            item.IsActive,
	}
}

func (s *catalogService) toResponses(items []*entity.ServiceCatalogItem) []*dto.CatalogItemResponse {
	res := make([]*dto.CatalogItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, s.toResponse(item))
	}
	return res
}
