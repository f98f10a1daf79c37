package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Invoice struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Number      string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	IssueDate   time.Time      `gorm:"not null"`
	DueDate     time.Time      `gorm:"not null"`
	Status      string         `gorm:"type:varchar(20);not null;default:'open';index"`
	TotalAmount float64        `gorm:"type:numeric(12,2);not null"`
	Lines       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Invoice) TableName() string {
	return "invoices"
}
