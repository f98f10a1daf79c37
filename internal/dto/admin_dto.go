package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	FullName  string      `json:"full_name" validate:"required,min=3"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=8"`
	Role      string      `json:"role" validate:"required,oneof=client gestor colaborador admin"`
	CompanyId *uuid.UUID  `json:"company_id"`
	Position  *string     `json:"position"`
	Team      *string     `json:"team"`
	AreaIds   []uuid.UUID `json:"area_ids"`
}

type UpdateUserRequest struct {
	FullName string      `json:"full_name" validate:"required,min=3"`
	Position *string     `json:"position"`
	Team     *string     `json:"team"`
	AreaIds  []uuid.UUID `json:"area_ids"`
	IsActive *bool       `json:"is_active"`
}

type UserResponse struct {
	Id        uuid.UUID   `json:"id"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	IsActive  bool        `json:"is_active"`
	CompanyId *uuid.UUID  `json:"company_id,omitempty"`
	Position  *string     `json:"position,omitempty"`
	Team      *string     `json:"team,omitempty"`
	AreaIds   []uuid.UUID `json:"area_ids,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type ListUsersQuery struct {
	Role string `query:"role"`
	Team string `query:"team"`
}
