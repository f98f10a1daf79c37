package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceCatalogItem struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code                string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name                string    `gorm:"type:varchar(255);not null"`
	Description         string    `gorm:"type:text"`
	Category            string    `gorm:"type:varchar(100);index"`
	BaseDurationMinutes int       `gorm:"default:60"`
	IsActive            bool      `gorm:"default:true"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (ServiceCatalogItem) TableName() string {
	return "service_catalog"
}
