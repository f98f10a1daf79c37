package implementation

import (
	"context"
	"errors"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/mapper"
	"facility-services-be/internal/model"
	"facility-services-be/internal/repository/contract"
	"facility-services-be/internal/repository/scope"
	"facility-services-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ScheduleMapper
}

func NewScheduleRepository(db *gorm.DB) contract.ScheduleRepository {
	return &ScheduleRepositoryImpl{
		db:     db,
		mapper: mapper.NewScheduleMapper(),
	}
}

func (r *ScheduleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ScheduleRepositoryImpl) Create(ctx context.Context, service *entity.ScheduledService) error {
	m := r.mapper.ToModel(service)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*service = *r.mapper.ToEntity(m)
	return nil
}

func (r *ScheduleRepositoryImpl) Update(ctx context.Context, service *entity.ScheduledService) error {
	m := r.mapper.ToModel(service)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*service = *r.mapper.ToEntity(m)
	return nil
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ScheduledService{}, id).Error
}

func (r *ScheduleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScheduledService, error) {
	var m model.ScheduledService
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ScheduledService{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ScheduleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScheduledService, error) {
	var models []*model.ScheduledService
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ScheduledService{}), specs...)
	if err := query.Scopes(scope.OrderByScheduledDateAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ScheduleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ScheduledService{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ScheduleRepositoryImpl) CountByStatus(ctx context.Context, specs ...specification.Specification) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ScheduledService{}), specs...)
	err := query.
		Select("scheduled_services.status AS status, COUNT(*) AS total").
		Group("scheduled_services.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Status] = r.Total
	}
	return result, nil
}

func (r *ScheduleRepositoryImpl) CreatePhoto(ctx context.Context, photo *entity.ServicePhoto) error {
	m := r.mapper.PhotoToModel(photo)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*photo = *r.mapper.PhotoToEntity(m)
	return nil
}

func (r *ScheduleRepositoryImpl) FindPhotos(ctx context.Context, scheduledServiceId uuid.UUID) ([]*entity.ServicePhoto, error) {
	var models []*model.ServicePhoto
	err := r.db.WithContext(ctx).
		Where("scheduled_service_id = ?", scheduledServiceId).
		Scopes(scope.OrderByCreatedAsc).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.PhotosToEntities(models), nil
}
