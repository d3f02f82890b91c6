package repository

import (
	"office-records-backend/internal/model"

	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *model.Task) error
	GetByID(id uint) (*model.Task, error)
	GetByEmployeeID(employeeID uint) ([]model.Task, error)
	UpdateStatus(id uint, status model.TaskStatus) error
	Delete(id uint) (int64, error)
	CreateFinished(finished *model.FinishedTask) error
	GetFinishedByEmployeeID(employeeID uint) ([]model.FinishedTask, error)
	GetFinishedByTaskID(taskID uint) (*model.FinishedTask, error)
	CountActive(employeeIDs []uint) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db}
}

func (r *taskRepository) Create(task *model.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepository) GetByID(id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.First(&task, id).Error
	return &task, err
}

func (r *taskRepository) GetByEmployeeID(employeeID uint) ([]model.Task, error) {
	var list []model.Task
	err := r.db.Where("employee_id = ?", employeeID).Order("due_date asc, id asc").Find(&list).Error
	return list, err
}

func (r *taskRepository) UpdateStatus(id uint, status model.TaskStatus) error {
	return r.db.Model(&model.Task{}).Where("id = ?", id).Update("status", status).Error
}

// Delete hard-deletes the task and reports how many rows went away.
func (r *taskRepository) Delete(id uint) (int64, error) {
	res := r.db.Unscoped().Delete(&model.Task{}, id)
	return res.RowsAffected, res.Error
}

func (r *taskRepository) CreateFinished(finished *model.FinishedTask) error {
	return r.db.Create(finished).Error
}

func (r *taskRepository) GetFinishedByEmployeeID(employeeID uint) ([]model.FinishedTask, error) {
	var list []model.FinishedTask
	err := r.db.Where("employee_id = ?", employeeID).Order("completed_at desc, id desc").Find(&list).Error
	return list, err
}

func (r *taskRepository) GetFinishedByTaskID(taskID uint) (*model.FinishedTask, error) {
	var finished model.FinishedTask
	err := r.db.Where("task_id = ?", taskID).First(&finished).Error
	return &finished, err
}

func (r *taskRepository) CountActive(employeeIDs []uint) (int64, error) {
	var count int64
	query := r.db.Model(&model.Task{})
	if employeeIDs != nil {
		if len(employeeIDs) == 0 {
			return 0, nil
		}
		query = query.Where("employee_id IN ?", employeeIDs)
	}
	err := query.Count(&count).Error
	return count, err
}
