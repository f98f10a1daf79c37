package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisibleToManager restricts service requests to those whose branch belongs to
// one of the manager's areas OR that were explicitly delegated to the manager.
// This is the area-scoping rule; it must not widen under any filter combination.
type VisibleToManager struct {
	ManagerID uuid.UUID
	AreaIDs   []uuid.UUID
}

func (s VisibleToManager) Apply(db *gorm.DB) *gorm.DB {
	db = db.Joins("JOIN branches ON branches.id = service_requests.branch_id")
	if len(s.AreaIDs) == 0 {
		return db.Where("service_requests.assigned_manager_user_id = ?", s.ManagerID)
	}
	return db.Where(
		"branches.area_id IN ? OR service_requests.assigned_manager_user_id = ?",
		s.AreaIDs, s.ManagerID,
	)
}

type ByBranchID struct {
	BranchID uuid.UUID
}

func (s ByBranchID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("branch_id = ?", s.BranchID)
}

type ByPriority struct {
	Priority string
}

func (s ByPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("priority = ?", s.Priority)
}

type ByRequesterID struct {
	RequesterID uuid.UUID
}

func (s ByRequesterID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("requester_user_id = ?", s.RequesterID)
}

// TriageOrder sorts urgent-priority requests first, then by desired date ascending.
type TriageOrder struct{}

func (s TriageOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("CASE WHEN service_requests.priority = 'urgent' THEN 0 ELSE 1 END").
		Order("service_requests.desired_date ASC")
}
