package repository

import (
	"sort"

	"office-records-backend/internal/model"

	"gorm.io/gorm"
)

type TaskStat struct {
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Active       int64  `json:"active"`
	Overdue      int64  `json:"overdue"`
	Finished     int64  `json:"finished"`
	OnTime       int64  `json:"on_time"`
}

type ReportRepository interface {
	CountFilesByType() (map[model.FileType]int64, error)
	TaskStats(today string, employeeIDs []uint) ([]TaskStat, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db}
}

func (r *reportRepository) CountFilesByType() (map[model.FileType]int64, error) {
	var rows []struct {
		Type  model.FileType
		Count int64
	}
	if err := r.db.Model(&model.File{}).Select("type, count(*) as count").Group("type").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := map[model.FileType]int64{}
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

// TaskStats aggregates active and finished tasks per employee. today is a
// YYYY-MM-DD date used to decide which active tasks are overdue.
func (r *reportRepository) TaskStats(today string, employeeIDs []uint) ([]TaskStat, error) {
	var active []struct {
		EmployeeID uint
		Active     int64
		Overdue    int64
	}
	activeQuery := r.db.Model(&model.Task{}).
		Select("employee_id, count(*) as active, sum(case when due_date <> '' and due_date < ? then 1 else 0 end) as overdue", today).
		Group("employee_id")
	if employeeIDs != nil {
		activeQuery = activeQuery.Where("employee_id IN ?", nonEmpty(employeeIDs))
	}
	if err := activeQuery.Scan(&active).Error; err != nil {
		return nil, err
	}

	var finished []struct {
		EmployeeID uint
		Finished   int64
		OnTime     int64
	}
	finishedQuery := r.db.Model(&model.FinishedTask{}).
		Select("employee_id, count(*) as finished, sum(case when on_time then 1 else 0 end) as on_time").
		Group("employee_id")
	if employeeIDs != nil {
		finishedQuery = finishedQuery.Where("employee_id IN ?", nonEmpty(employeeIDs))
	}
	if err := finishedQuery.Scan(&finished).Error; err != nil {
		return nil, err
	}

	stats := map[uint]*TaskStat{}
	get := func(id uint) *TaskStat {
		if s, ok := stats[id]; ok {
			return s
		}
		s := &TaskStat{EmployeeID: id}
		stats[id] = s
		return s
	}
	for _, a := range active {
		s := get(a.EmployeeID)
		s.Active, s.Overdue = a.Active, a.Overdue
	}
	for _, f := range finished {
		s := get(f.EmployeeID)
		s.Finished, s.OnTime = f.Finished, f.OnTime
	}

	ids := make([]uint, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		var admins []model.Admin
		if err := r.db.Select("id", "name").Where("id IN ?", ids).Find(&admins).Error; err != nil {
			return nil, err
		}
		for _, a := range admins {
			stats[a.ID].EmployeeName = a.Name
		}
	}

	result := make([]TaskStat, 0, len(stats))
	for _, s := range stats {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

// nonEmpty keeps "IN ?" valid SQL for an empty scope.
func nonEmpty(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}
