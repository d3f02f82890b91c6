package repository

import (
	"time"

	"office-records-backend/internal/model"

	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(leave *model.LeaveApplication) error
	GetByID(id uint) (*model.LeaveApplication, error)
	GetByEmployeeID(employeeID uint) ([]model.LeaveApplication, error)
	GetAll(status model.LeaveStatus, employeeIDs []uint) ([]model.LeaveApplication, error)
	// Decide moves a pending application to status and returns rows changed.
	Decide(id uint, from, to model.LeaveStatus, reviewerID *uint, note string, at time.Time) (int64, error)
	CountByStatus(employeeIDs []uint) (map[model.LeaveStatus]int64, error)
	GetApprovedInRange(from, to string) ([]model.LeaveApplication, error)
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db}
}

func (r *leaveRepository) Create(leave *model.LeaveApplication) error {
	return r.db.Create(leave).Error
}

func (r *leaveRepository) GetByID(id uint) (*model.LeaveApplication, error) {
	var leave model.LeaveApplication
	err := r.db.Preload("Employee").First(&leave, id).Error
	return &leave, err
}

func (r *leaveRepository) GetByEmployeeID(employeeID uint) ([]model.LeaveApplication, error) {
	var list []model.LeaveApplication
	err := r.db.Where("employee_id = ?", employeeID).Order("applied_at desc, id desc").Find(&list).Error
	return list, err
}

// GetAll lists applications, optionally restricted to a status and a set of
// employees (nil means everyone).
func (r *leaveRepository) GetAll(status model.LeaveStatus, employeeIDs []uint) ([]model.LeaveApplication, error) {
	var list []model.LeaveApplication
	query := r.db.Preload("Employee")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if employeeIDs != nil {
		if len(employeeIDs) == 0 {
			return list, nil
		}
		query = query.Where("employee_id IN ?", employeeIDs)
	}
	err := query.Order("applied_at desc, id desc").Find(&list).Error
	return list, err
}

func (r *leaveRepository) Decide(id uint, from, to model.LeaveStatus, reviewerID *uint, note string, at time.Time) (int64, error) {
	fields := map[string]interface{}{
		"status":      to,
		"review_note": note,
	}
	if reviewerID != nil {
		fields["reviewed_by"] = *reviewerID
		fields["reviewed_at"] = at
	}
	res := r.db.Model(&model.LeaveApplication{}).Where("id = ? AND status = ?", id, from).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *leaveRepository) CountByStatus(employeeIDs []uint) (map[model.LeaveStatus]int64, error) {
	var rows []struct {
		Status model.LeaveStatus
		Count  int64
	}
	query := r.db.Model(&model.LeaveApplication{}).Select("status, count(*) as count").Group("status")
	if employeeIDs != nil {
		if len(employeeIDs) == 0 {
			employeeIDs = []uint{0}
		}
		query = query.Where("employee_id IN ?", employeeIDs)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := map[model.LeaveStatus]int64{
		model.LeavePending: 0, model.LeaveApproved: 0, model.LeaveRejected: 0, model.LeaveCancelled: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// GetApprovedInRange returns approved applications overlapping [from, to].
// Dates are YYYY-MM-DD strings so lexical comparison is chronological.
func (r *leaveRepository) GetApprovedInRange(from, to string) ([]model.LeaveApplication, error) {
	var list []model.LeaveApplication
	err := r.db.Preload("Employee").
		Where("status = ? AND start_date <= ? AND end_date >= ?", model.LeaveApproved, to, from).
		Order("employee_id asc, start_date asc").
		Find(&list).Error
	return list, err
}
