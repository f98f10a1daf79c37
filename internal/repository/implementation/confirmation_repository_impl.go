package implementation

import (
	"context"
	"errors"
	"time"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/mapper"
	"facility-services-be/internal/model"
	"facility-services-be/internal/repository/contract"
	"facility-services-be/internal/repository/scope"
	"facility-services-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConfirmationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConfirmationMapper
}

func NewConfirmationRepository(db *gorm.DB) contract.ConfirmationRepository {
	return &ConfirmationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConfirmationMapper(),
	}
}

func (r *ConfirmationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConfirmationRepositoryImpl) Create(ctx context.Context, confirmation *entity.Confirmation) error {
	m := r.mapper.ToModel(confirmation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*confirmation = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConfirmationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Confirmation, error) {
	var m model.Confirmation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConfirmationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Confirmation, error) {
	var models []*model.Confirmation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Scopes(scope.OrderByCreatedDesc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConfirmationRepositoryImpl) HasPending(ctx context.Context, scheduledServiceId uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Confirmation{}).
		Where("scheduled_service_id = ? AND status = ?", scheduledServiceId, string(entity.ConfirmationStatusPending)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ResolvePending is the single-winner guard for concurrent client responses:
// the WHERE status='pending' clause makes the first UPDATE win and every later
// one a no-op (RowsAffected == 0).
func (r *ConfirmationRepositoryImpl) ResolvePending(ctx context.Context, id uuid.UUID, status entity.ConfirmationStatus, responseReason *string, resolvedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Confirmation{}).
		Where("id = ? AND status = ?", id, string(entity.ConfirmationStatusPending)).
		Updates(map[string]interface{}{
			"status":          string(status),
			"response_reason": responseReason,
			"resolved_at":     resolvedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
