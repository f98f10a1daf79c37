package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConfirmationStatus string

const (
	ConfirmationStatusPending   ConfirmationStatus = "pending"
	ConfirmationStatusConfirmed ConfirmationStatus = "confirmed"
	ConfirmationStatusRejected  ConfirmationStatus = "rejected"
)

// Confirmation is a manager-proposed date change awaiting client accept/reject.
type Confirmation struct {
	Id                 uuid.UUID
	ScheduledServiceId uuid.UUID
	RequestedDate      time.Time // the currently committed date
	ProposedDate       time.Time
	Reason             string
	Status             ConfirmationStatus
	ResponseReason     *string
	ProposedByUserId   uuid.UUID
	ResolvedAt         *time.Time
	CreatedAt          time.Time
}

func (c *Confirmation) IsResolved() bool {
	return c.Status != ConfirmationStatusPending
}
