package model

import (
	"time"

	"github.com/google/uuid"
)

type Confirmation struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ScheduledServiceId uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestedDate      time.Time `gorm:"not null"`
	ProposedDate       time.Time `gorm:"not null"`
	Reason             string    `gorm:"type:text;not null"`
	Status             string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	ResponseReason     *string   `gorm:"type:text"`
	ProposedByUserId   uuid.UUID `gorm:"type:uuid;not null"`
	ResolvedAt         *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

func (Confirmation) TableName() string {
	return "confirmations"
}
