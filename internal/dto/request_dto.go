package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateServiceRequestRequest struct {
	BranchId         uuid.UUID `json:"branch_id" validate:"required"`
	ServiceCatalogId uuid.UUID `json:"service_catalog_id" validate:"required"`
	Priority         string    `json:"priority" validate:"required,oneof=routine urgent"`
	DesiredDate      string    `json:"desired_date" validate:"required,datetime=2006-01-02"`
	Description      string    `json:"description" validate:"required"`
}

type CreateServiceRequestResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type ListServiceRequestsQuery struct {
	Status   string `query:"status"`
	Priority string `query:"priority"`
}

type ServiceRequestResponse struct {
	Id                    uuid.UUID  `json:"id"`
	CompanyId             uuid.UUID  `json:"company_id"`
	CompanyName           string     `json:"company_name,omitempty"`
	BranchId              uuid.UUID  `json:"branch_id"`
	BranchName            string     `json:"branch_name,omitempty"`
	ServiceCatalogId      uuid.UUID  `json:"service_catalog_id"`
	ServiceName           string     `json:"service_name,omitempty"`
	RequesterUserId       uuid.UUID  `json:"requester_user_id"`
	AssignedManagerUserId *uuid.UUID `json:"assigned_manager_user_id,omitempty"`
	Priority              string     `json:"priority"`
	Status                string     `json:"status"`
	DesiredDate           time.Time  `json:"desired_date"`
	Description           string     `json:"description"`
	RejectionReason       *string    `json:"rejection_reason,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type RejectServiceRequestRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type DelegateServiceRequestRequest struct {
	ManagerUserId uuid.UUID `json:"manager_user_id" validate:"required"`
}

type TriageActionResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
