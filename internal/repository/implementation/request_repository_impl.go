package implementation

import (
	"context"
	"errors"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/mapper"
	"facility-services-be/internal/model"
	"facility-services-be/internal/repository/contract"
	"facility-services-be/internal/repository/specification"

	"gorm.io/gorm"
)

type RequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestMapper
}

func NewRequestRepository(db *gorm.DB) contract.RequestRepository {
	return &RequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewRequestMapper(),
	}
}

func (r *RequestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RequestRepositoryImpl) Create(ctx context.Context, request *entity.ServiceRequest) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *RequestRepositoryImpl) Update(ctx context.Context, request *entity.ServiceRequest) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *RequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceRequest, error) {
	var m model.ServiceRequest
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ServiceRequest{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ServiceRequest, error) {
	var models []*model.ServiceRequest
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ServiceRequest{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ServiceRequest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
