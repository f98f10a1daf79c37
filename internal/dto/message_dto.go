package dto

import "github.com/google/uuid"

// ServiceCompletedMessage rides the in-process topic from schedule completion
// to the invoice-draft consumer.
type ServiceCompletedMessage struct {
	ScheduleId uuid.UUID `json:"schedule_id"`
}
