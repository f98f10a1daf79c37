package contract

import (
	"context"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CatalogRepository interface {
	Create(ctx context.Context, item *entity.ServiceCatalogItem) error
	Update(ctx context.Context, item *entity.ServiceCatalogItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceCatalogItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ServiceCatalogItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
