package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateScheduleRequest struct {
	ServiceRequestId   uuid.UUID `json:"service_request_id" validate:"required"`
	CollaboratorUserId uuid.UUID `json:"collaborator_user_id" validate:"required"`
	ScheduledDate      string    `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	StartTime          string    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime            string    `json:"end_time" validate:"required,datetime=15:04"`
	Notes              string    `json:"notes"`
}

type ListScheduleQuery struct {
	From   string `query:"from"`
	To     string `query:"to"`
	Status string `query:"status"`
}

type ScheduledServiceResponse struct {
	Id                 uuid.UUID  `json:"id"`
	ServiceRequestId   uuid.UUID  `json:"service_request_id"`
	CompanyId          uuid.UUID  `json:"company_id"`
	CompanyName        string     `json:"company_name,omitempty"`
	BranchId           uuid.UUID  `json:"branch_id"`
	BranchName         string     `json:"branch_name,omitempty"`
	CollaboratorUserId uuid.UUID  `json:"collaborator_user_id"`
	CollaboratorName   string     `json:"collaborator_name,omitempty"`
	ServiceName        string     `json:"service_name,omitempty"`
	ScheduledDate      time.Time  `json:"scheduled_date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	Status             string     `json:"status"`
	Notes              string     `json:"notes,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

type UpdateScheduleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
}

type ScheduleStatsResponse struct {
	Total      int64 `json:"total"`
	Scheduled  int64 `json:"scheduled"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

type UploadPhotoResponse struct {
	Id       uuid.UUID `json:"id"`
	FilePath string    `json:"file_path"`
}

type ServicePhotoResponse struct {
	Id             uuid.UUID `json:"id"`
	UploaderUserId uuid.UUID `json:"uploader_user_id"`
	FilePath       string    `json:"file_path"`
	Caption        string    `json:"caption,omitempty"`
	TakenAt        time.Time `json:"taken_at"`
}
