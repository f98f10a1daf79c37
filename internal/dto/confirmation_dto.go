package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProposeRescheduleRequest struct {
	ProposedDate string `json:"proposed_date" validate:"required,datetime=2006-01-02"`
	Reason       string `json:"reason" validate:"required"`
}

type ConfirmationResponseRequest struct {
	ConfirmationId uuid.UUID `json:"confirmation_id" validate:"required"`
	Action         string    `json:"action" validate:"required,oneof=accept reject"`
	Reason         string    `json:"reason"`
}

type ConfirmationResponse struct {
	Id                 uuid.UUID  `json:"id"`
	ScheduledServiceId uuid.UUID  `json:"scheduled_service_id"`
	ServiceName        string     `json:"service_name,omitempty"`
	RequestedDate      time.Time  `json:"requested_date"`
	ProposedDate       time.Time  `json:"proposed_date"`
	Reason             string     `json:"reason"`
	Status             string     `json:"status"`
	ResponseReason     *string    `json:"response_reason,omitempty"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}
