package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRequest struct {
	Id                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId             uuid.UUID  `gorm:"type:uuid;not null;index"`
	BranchId              uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServiceCatalogId      uuid.UUID  `gorm:"type:uuid;not null"`
	RequesterUserId       uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedManagerUserId *uuid.UUID `gorm:"type:uuid;index"`
	Priority              string     `gorm:"type:varchar(20);not null;default:'routine'"`
	Status                string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	DesiredDate           time.Time  `gorm:"not null"`
	Description           string     `gorm:"type:text"`
	RejectionReason       *string    `gorm:"type:text"`
	CreatedAt             time.Time  `gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime"`
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}
