package specification

import (
	"gorm.io/gorm"
)

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

type ByTeam struct {
	Team string
}

func (s ByTeam) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("team = ?", s.Team)
}
