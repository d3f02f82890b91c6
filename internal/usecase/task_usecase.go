package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"office-records-backend/internal/model"
	"office-records-backend/internal/notify"
	"office-records-backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TaskUsecase struct {
	db       *gorm.DB
	notifier *notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewTaskUsecase(db *gorm.DB, notifier *notify.Notifier, log *zap.Logger) *TaskUsecase {
	return &TaskUsecase{db: db, notifier: notifier, log: log, now: time.Now}
}

type AssignTaskInput struct {
	EmployeeID  uint
	Title       string
	Description string
	DueDate     string
	Priority    model.TaskPriority
}

func (u *TaskUsecase) Assign(assignerID uint, in AssignTaskInput) (*model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title is required")
	}
	if in.DueDate != "" {
		if _, err := time.Parse(dateLayout, in.DueDate); err != nil {
			return nil, invalid("due_date must be YYYY-MM-DD")
		}
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}

	employee, err := repository.NewAdminRepository(u.db).FindByID(in.EmployeeID)
	if err != nil {
		return nil, notFound(err, "employee")
	}

	task := &model.Task{
		EmployeeID:  in.EmployeeID,
		AssignedBy:  assignerID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      model.TaskPending,
	}
	if err := repository.NewTaskRepository(u.db).Create(task); err != nil {
		return nil, err
	}

	u.notifier.Notify(notify.TaskAssigned(employee.Email, employee.Name, task.Title, task.DueDate))
	return task, nil
}

func (u *TaskUsecase) ForEmployee(employeeID uint) ([]model.Task, error) {
	return repository.NewTaskRepository(u.db).GetByEmployeeID(employeeID)
}

func (u *TaskUsecase) FinishedForEmployee(employeeID uint) ([]model.FinishedTask, error) {
	return repository.NewTaskRepository(u.db).GetFinishedByEmployeeID(employeeID)
}

type TaskStatusResult struct {
	Task     *model.Task         `json:"task,omitempty"`
	Finished *model.FinishedTask `json:"finished,omitempty"`
}

// UpdateStatus changes a task's status. Completing a task archives it into
// finished_tasks and removes it from tasks in one transaction.
func (u *TaskUsecase) UpdateStatus(taskID uint, actor *model.Admin, status model.TaskStatus, note string) (*TaskStatusResult, error) {
	var result TaskStatusResult
	err := u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewTaskRepository(tx)
		task, err := repo.GetByID(taskID)
		if err != nil {
			return notFound(err, "task")
		}
		if !canTouchTask(actor, task) {
			return fmt.Errorf("%w: task belongs to another employee", ErrForbidden)
		}

		if status != model.TaskCompleted {
			if err := repo.UpdateStatus(task.ID, status); err != nil {
				return err
			}
			task.Status = status
			result.Task = task
			return nil
		}

		completedAt := u.now()
		finished := &model.FinishedTask{
			TaskID:         task.ID,
			EmployeeID:     task.EmployeeID,
			AssignedBy:     task.AssignedBy,
			Title:          task.Title,
			Description:    task.Description,
			DueDate:        task.DueDate,
			Priority:       task.Priority,
			CompletedAt:    completedAt,
			CompletionNote: note,
			OnTime:         task.DueDate == "" || completedAt.Format(dateLayout) <= task.DueDate,
		}
		if err := repo.CreateFinished(finished); err != nil {
			return err
		}
		rows, err := repo.Delete(task.ID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: task %d was completed concurrently", ErrConflict, task.ID)
		}
		result.Finished = finished
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Finished != nil {
		tasksCompleted.WithLabelValues(strconv.FormatBool(result.Finished.OnTime)).Inc()
		u.log.Info("task completed", zap.Uint("task_id", taskID), zap.Bool("on_time", result.Finished.OnTime))
	}
	return &result, nil
}

func (u *TaskUsecase) Delete(taskID uint) error {
	rows, err := repository.NewTaskRepository(u.db).Delete(taskID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("task %w", ErrNotFound)
	}
	return nil
}

// canTouchTask allows the assignee, the assigner and anyone who can assign
// tasks.
func canTouchTask(actor *model.Admin, task *model.Task) bool {
	if actor == nil {
		return false
	}
	return actor.ID == task.EmployeeID || actor.ID == task.AssignedBy || actor.Role.Can(model.PermAssignTask)
}
