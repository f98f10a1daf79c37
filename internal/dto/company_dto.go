package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCompanyRequest struct {
	Name      string `json:"name" validate:"required"`
	TradeName string `json:"trade_name"`
	Document  string `json:"document" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
}

type UpdateCompanyRequest struct {
	Name      string `json:"name" validate:"required"`
	TradeName string `json:"trade_name"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	IsActive  *bool  `json:"is_active"`
}

type CompanyResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TradeName string    `json:"trade_name,omitempty"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateBranchRequest struct {
	CompanyId uuid.UUID `json:"company_id" validate:"required"`
	AreaId    uuid.UUID `json:"area_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address" validate:"required"`
	City      string    `json:"city" validate:"required"`
}

type BranchResponse struct {
	Id        uuid.UUID `json:"id"`
	CompanyId uuid.UUID `json:"company_id"`
	AreaId    uuid.UUID `json:"area_id"`
	AreaCode  string    `json:"area_code,omitempty"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
}

type AreaResponse struct {
	Id   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}
