package contract

import (
	"context"
	"time"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConfirmationRepository interface {
	Create(ctx context.Context, confirmation *entity.Confirmation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Confirmation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Confirmation, error)

	// HasPending reports whether the scheduled service has an unresolved proposal.
	HasPending(ctx context.Context, scheduledServiceId uuid.UUID) (bool, error)

	// ResolvePending flips a pending confirmation to the given terminal status in a
	// single conditional UPDATE. It returns the number of rows changed: 0 means the
	// confirmation was already resolved (or does not exist) and the caller must
	// re-read it to surface the prior resolution.
	ResolvePending(ctx context.Context, id uuid.UUID, status entity.ConfirmationStatus, responseReason *string, resolvedAt time.Time) (int64, error)
}
