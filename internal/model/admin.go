package model

import "gorm.io/gorm"

type Admin struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"unique;not null"`
	Username     string `json:"username" gorm:"unique;not null"`
	Password     string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"type:varchar(32);not null;index"`
	DepartmentID *uint  `json:"department_id"`
	Phone        string `json:"phone"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`

	// Relations
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

type Department struct {
	gorm.Model
	Name  string `json:"name" gorm:"unique;not null"`
	HODID *uint  `json:"hod_id" gorm:"column:hod_id;index"` // Admin with role HOD, not enforced by FK

	Staff []Admin `json:"staff,omitempty" gorm:"foreignKey:DepartmentID"`
}
