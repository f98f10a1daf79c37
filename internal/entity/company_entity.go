package entity

import (
	"time"

	"github.com/google/uuid"
)

// Area is a geographic partition used to scope manager visibility.
type Area struct {
	Id   uuid.UUID
	Code string // norte, sul, leste, oeste, centro
	Name string
}

type Company struct {
	Id        uuid.UUID
	Name      string
	TradeName *string
	Document  string // CNPJ
	Email     string
	Phone     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Branch is a physical client location. It belongs to exactly one area.
type Branch struct {
	Id        uuid.UUID
	CompanyId uuid.UUID
	AreaId    uuid.UUID
	Name      string
	Address   string
	City      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
