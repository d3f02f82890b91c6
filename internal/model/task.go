package model

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model
	EmployeeID  uint         `json:"employee_id" gorm:"not null;index"`
	AssignedBy  uint         `json:"assigned_by"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description" gorm:"type:text"`
	DueDate     string       `json:"due_date" gorm:"size:10"` // YYYY-MM-DD
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(10);default:medium"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:pending;index"`

	Employee *Admin `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

// FinishedTask is the archived copy of a Task written when it is completed.
type FinishedTask struct {
	gorm.Model
	TaskID         uint         `json:"task_id" gorm:"unique;not null"`
	EmployeeID     uint         `json:"employee_id" gorm:"not null;index"`
	AssignedBy     uint         `json:"assigned_by"`
	Title          string       `json:"title"`
	Description    string       `json:"description" gorm:"type:text"`
	DueDate        string       `json:"due_date" gorm:"size:10"`
	Priority       TaskPriority `json:"priority" gorm:"type:varchar(10)"`
	CompletedAt    time.Time    `json:"completed_at" gorm:"not null"`
	CompletionNote string       `json:"completion_note" gorm:"type:text"`
	OnTime         bool         `json:"on_time"`
}
