package entity

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleStatus string

const (
	ScheduleStatusScheduled   ScheduleStatus = "scheduled"
	ScheduleStatusInProgress  ScheduleStatus = "in_progress"
	ScheduleStatusCompleted   ScheduleStatus = "completed"
	ScheduleStatusCancelled   ScheduleStatus = "cancelled"
	ScheduleStatusRescheduled ScheduleStatus = "rescheduled"
)

// scheduleTransitions is forward-only. "cancelled" is reachable from any
// non-terminal state, "rescheduled" parks the service while a date-change
// confirmation is pending.
var scheduleTransitions = map[ScheduleStatus][]ScheduleStatus{
	ScheduleStatusScheduled:   {ScheduleStatusInProgress, ScheduleStatusCancelled, ScheduleStatusRescheduled},
	ScheduleStatusInProgress:  {ScheduleStatusCompleted, ScheduleStatusCancelled},
	ScheduleStatusRescheduled: {ScheduleStatusScheduled, ScheduleStatusCancelled},
	ScheduleStatusCompleted:   {},
	ScheduleStatusCancelled:   {},
}

func (s ScheduleStatus) CanTransitionTo(target ScheduleStatus) bool {
	for _, next := range scheduleTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s ScheduleStatus) IsTerminal() bool {
	return s == ScheduleStatusCompleted || s == ScheduleStatusCancelled
}

// ScheduledService is the committed, dated execution of an approved request.
// At most one authoritative ScheduledService exists per ServiceRequest.
type ScheduledService struct {
	Id                 uuid.UUID
	ServiceRequestId   uuid.UUID
	CompanyId          uuid.UUID
	BranchId           uuid.UUID
	CollaboratorUserId *uuid.UUID
	ScheduledDate      time.Time
	StartTime          string // HH:MM
	EndTime            string // HH:MM
	Status             ScheduleStatus
	Notes              *string
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// ServicePhoto is collaborator photo documentation attached to an execution.
type ServicePhoto struct {
	Id                 uuid.UUID
	ScheduledServiceId uuid.UUID
	UploaderUserId     uuid.UUID
	FilePath           string
	Caption            *string
	TakenAt            time.Time
	Metadata           map[string]interface{}
	CreatedAt          time.Time
}
