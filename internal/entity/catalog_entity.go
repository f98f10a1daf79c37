package entity

import (
	"time"

	"github.com/google/uuid"
)

type ServiceCatalogItem struct {
	Id                  uuid.UUID
	Code                string
	Name                string
	Description         string
	Category            string
	BaseDurationMinutes int
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
