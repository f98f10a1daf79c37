package dto

import "github.com/google/uuid"

type CreateCatalogItemRequest struct {
	Code                string `json:"code" validate:"required"`
	Name                string `json:"name" validate:"required"`
	Description         string `json:"description"`
	Category            string `json:"category" validate:"required"`
	BaseDurationMinutes int    `json:"base_duration_minutes" validate:"required,min=1"`
}

type UpdateCatalogItemRequest struct {
	Name                string `json:"name" validate:"required"`
	Description         string `json:"description"`
	Category            string `json:"category" validate:"required"`
	BaseDurationMinutes int    `json:"base_duration_minutes" validate:"required,min=1"`
	IsActive            *bool  `json:"is_active"`
}

type CatalogItemResponse struct {
	Id                  uuid.UUID `json:"id"`
	Code                string    `json:"code"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	Category            string    `json:"category"`
	BaseDurationMinutes int       `json:"base_duration_minutes"`
	IsActive            bool      `json:"is_active"`
}
