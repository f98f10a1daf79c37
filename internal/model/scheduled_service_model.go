package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScheduledService struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceRequestId   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	BranchId           uuid.UUID  `gorm:"type:uuid;not null;index"`
	CollaboratorUserId *uuid.UUID `gorm:"type:uuid;index"`
	ScheduledDate      time.Time  `gorm:"not null;index"`
	StartTime          string     `gorm:"type:varchar(5);not null"`
	EndTime            string     `gorm:"type:varchar(5);not null"`
	Status             string     `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	Notes              *string    `gorm:"type:text"`
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (ScheduledService) TableName() string {
	return "scheduled_services"
}

type ServicePhoto struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ScheduledServiceId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UploaderUserId     uuid.UUID      `gorm:"type:uuid;not null"`
	FilePath           string         `gorm:"type:text;not null"`
	Caption            *string        `gorm:"type:varchar(255)"`
	TakenAt            time.Time      `gorm:"not null"`
	Metadata           datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
}

func (ServicePhoto) TableName() string {
	return "service_photos"
}
