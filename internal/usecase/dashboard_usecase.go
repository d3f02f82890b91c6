package usecase

import (
	"time"

	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"

	"gorm.io/gorm"
)

type DashboardUsecase struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDashboardUsecase(db *gorm.DB) *DashboardUsecase {
	return &DashboardUsecase{db: db, now: time.Now}
}

// Dashboard builds the summary shown on the landing page of each role.
func (u *DashboardUsecase) Dashboard(admin *model.Admin) (map[string]interface{}, error) {
	admins := repository.NewAdminRepository(u.db)
	records := repository.NewRecordRepository(u.db)
	leaves := repository.NewLeaveRepository(u.db)
	tasks := repository.NewTaskRepository(u.db)
	forwards := repository.NewForwardRepository(u.db)
	reports := repository.NewReportRepository(u.db)

	stats := map[string]interface{}{"role": admin.Role}

	switch admin.Role {
	case model.RoleSuperAdmin, model.RoleBoss:
		byRole, err := admins.CountByRole()
		if err != nil {
			return nil, err
		}
		byStatus, err := records.CountByStatus()
		if err != nil {
			return nil, err
		}
		leaveCounts, err := leaves.CountByStatus(nil)
		if err != nil {
			return nil, err
		}
		active, err := tasks.CountActive(nil)
		if err != nil {
			return nil, err
		}
		stats["staff_by_role"] = byRole
		stats["records_by_status"] = byStatus
		stats["pending_leaves"] = leaveCounts[model.LeavePending]
		stats["active_tasks"] = active

	case model.RoleRegistry:
		byStatus, err := records.CountByStatus()
		if err != nil {
			return nil, err
		}
		byType, err := reports.CountFilesByType()
		if err != nil {
			return nil, err
		}
		stats["records_by_status"] = byStatus
		stats["files_by_type"] = byType

	case model.RoleHumanResource:
		leaveCounts, err := leaves.CountByStatus(nil)
		if err != nil {
			return nil, err
		}
		byRole, err := admins.CountByRole()
		if err != nil {
			return nil, err
		}
		stats["leaves_by_status"] = leaveCounts
		stats["staff_by_role"] = byRole

	case model.RoleHOD:
		scope, err := staffScope(u.db, admin)
		if err != nil {
			return nil, err
		}
		leaveCounts, err := leaves.CountByStatus(scope)
		if err != nil {
			return nil, err
		}
		active, err := tasks.CountActive(scope)
		if err != nil {
			return nil, err
		}
		stats["department_staff"] = len(scope)
		stats["leaves_by_status"] = leaveCounts
		stats["active_tasks"] = active
	}

	// Everyone sees their own queue.
	own := []uint{admin.ID}
	ownTasks, err := tasks.CountActive(own)
	if err != nil {
		return nil, err
	}
	ownLeaves, err := leaves.CountByStatus(own)
	if err != nil {
		return nil, err
	}
	pendingForwards, err := forwards.CountPendingForRecipient(admin.ID)
	if err != nil {
		return nil, err
	}
	stats["my_active_tasks"] = ownTasks
	stats["my_leaves"] = ownLeaves
	stats["my_pending_forwards"] = pendingForwards

	return stats, nil
}

// TaskReport aggregates tasks per employee, scoped to an HOD's department.
func (u *DashboardUsecase) TaskReport(admin *model.Admin) ([]repository.TaskStat, error) {
	scope, err := staffScope(u.db, admin)
	if err != nil {
		return nil, err
	}
	return repository.NewReportRepository(u.db).TaskStats(u.now().Format(dateLayout), scope)
}
