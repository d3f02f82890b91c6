package model

import (
	"time"

	"gorm.io/gorm"
)

type LeaveApplication struct {
	gorm.Model
	EmployeeID   uint        `json:"employee_id" gorm:"not null;index"`
	LeaveType    LeaveType   `json:"leave_type" gorm:"type:varchar(20);not null"`
	StartDate    string      `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate      string      `json:"end_date" gorm:"size:10;not null"`
	Days         int         `json:"days"`
	Reason       string      `json:"reason" gorm:"type:text"`
	Evidence     []byte      `json:"-"`
	EvidenceName string      `json:"evidence_name"`
	EvidenceMime string      `json:"evidence_mime"`
	Status       LeaveStatus `json:"status" gorm:"type:varchar(20);not null;default:pending;index"`
	AppliedAt    time.Time   `json:"applied_at"`
	ReviewedBy   *uint       `json:"reviewed_by"`
	ReviewedAt   *time.Time  `json:"reviewed_at"`
	ReviewNote   string      `json:"review_note"`

	Employee *Admin `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}
