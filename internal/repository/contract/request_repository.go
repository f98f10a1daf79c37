package contract

import (
	"context"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/repository/specification"
)

type RequestRepository interface {
	Create(ctx context.Context, request *entity.ServiceRequest) error
	Update(ctx context.Context, request *entity.ServiceRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ServiceRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
