package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByServiceRequestID struct {
	ServiceRequestID uuid.UUID
}

func (s ByServiceRequestID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("service_request_id = ?", s.ServiceRequestID)
}

// ByScheduledServiceID filters child rows (confirmations, photos) of a schedule.
type ByScheduledServiceID struct {
	ScheduledServiceID uuid.UUID
}

func (s ByScheduledServiceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scheduled_service_id = ?", s.ScheduledServiceID)
}

type ByCollaboratorID struct {
	CollaboratorID uuid.UUID
}

func (s ByCollaboratorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("collaborator_user_id = ?", s.CollaboratorID)
}

type ByScheduledDateRange struct {
	From time.Time
	To   time.Time
}

func (s ByScheduledDateRange) Apply(db *gorm.DB) *gorm.DB {
	if !s.From.IsZero() {
		db = db.Where("scheduled_date >= ?", s.From)
	}
	if !s.To.IsZero() {
		db = db.Where("scheduled_date <= ?", s.To)
	}
	return db
}

// ScheduleVisibleToManager restricts scheduled services to branches inside the
// manager's areas.
type ScheduleVisibleToManager struct {
	AreaIDs []uuid.UUID
}

func (s ScheduleVisibleToManager) Apply(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN branches ON branches.id = scheduled_services.branch_id").
		Where("branches.area_id IN ?", s.AreaIDs)
}
