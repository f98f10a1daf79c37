package contract

import (
	"context"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Company, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Company, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Branches
	CreateBranch(ctx context.Context, branch *entity.Branch) error
	UpdateBranch(ctx context.Context, branch *entity.Branch) error
	FindBranch(ctx context.Context, specs ...specification.Specification) (*entity.Branch, error)
	FindBranches(ctx context.Context, specs ...specification.Specification) ([]*entity.Branch, error)

	// Areas
	CreateArea(ctx context.Context, area *entity.Area) error
	FindAreaByCode(ctx context.Context, code string) (*entity.Area, error)
	FindAreas(ctx context.Context) ([]*entity.Area, error)
}
