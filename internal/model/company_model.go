package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Area struct {
	Id   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Name string    `gorm:"type:varchar(100);not null"`
}

func (Area) TableName() string {
	return "areas"
}

type Company struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	TradeName *string   `gorm:"type:varchar(255)"`
	Document  string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Phone     *string   `gorm:"type:varchar(30)"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}

type Branch struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId uuid.UUID `gorm:"type:uuid;not null;index"`
	AreaId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Address   string    `gorm:"type:text"`
	City      string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Branch) TableName() string {
	return "branches"
}
