package contract

import (
	"context"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ScheduleRepository interface {
	Create(ctx context.Context, service *entity.ScheduledService) error
	Update(ctx context.Context, service *entity.ScheduledService) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScheduledService, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScheduledService, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountByStatus(ctx context.Context, specs ...specification.Specification) (map[string]int64, error)

	// Photo documentation
	CreatePhoto(ctx context.Context, photo *entity.ServicePhoto) error
	FindPhotos(ctx context.Context, scheduledServiceId uuid.UUID) ([]*entity.ServicePhoto, error)
}
