package entity

import (
	"time"

	"github.com/google/uuid"
)

type RequestPriority string

const (
	RequestPriorityRoutine RequestPriority = "routine"
	RequestPriorityUrgent  RequestPriority = "urgent"
)

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusUrgent     RequestStatus = "urgent" // pending with urgent priority
	RequestStatusDelegated  RequestStatus = "delegated"
	RequestStatusApproved   RequestStatus = "approved"
	RequestStatusInProgress RequestStatus = "in-progress"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusScheduled  RequestStatus = "scheduled"
)

// requestTransitions holds the forward-only lifecycle. "urgent" behaves exactly
// like "pending". "approved" leaves only via schedule creation, and "rejected"
// is absorbing.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:    {RequestStatusApproved, RequestStatusRejected, RequestStatusDelegated},
	RequestStatusUrgent:     {RequestStatusApproved, RequestStatusRejected, RequestStatusDelegated},
	RequestStatusDelegated:  {RequestStatusApproved, RequestStatusRejected},
	RequestStatusApproved:   {RequestStatusScheduled},
	RequestStatusScheduled:  {RequestStatusInProgress},
	RequestStatusInProgress: {},
	RequestStatusRejected:   {},
}

// CanTransitionTo reports whether the lifecycle admits moving to the target status.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	for _, next := range requestTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTriageable reports whether a manager can still act on the request.
func (s RequestStatus) IsTriageable() bool {
	return s == RequestStatusPending || s == RequestStatusUrgent || s == RequestStatusDelegated
}

// ActiveRequestStatuses is the manager-queue visibility set.
var ActiveRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusUrgent,
	RequestStatusDelegated,
	RequestStatusApproved,
	RequestStatusInProgress,
}

type ServiceRequest struct {
	Id                    uuid.UUID
	CompanyId             uuid.UUID
	BranchId              uuid.UUID
	ServiceCatalogId      uuid.UUID
	RequesterUserId       uuid.UUID
	AssignedManagerUserId *uuid.UUID
	Priority              RequestPriority
	Status                RequestStatus
	DesiredDate           time.Time
	Description           string
	RejectionReason       *string
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}
