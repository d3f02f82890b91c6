package repository

import (
	"office-records-backend/internal/model"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	GetAll() ([]model.Department, error)
	GetByID(id uint) (*model.Department, error)
	Create(dept *model.Department) error
	SetHOD(id uint, hodID uint) error
	FindByHOD(hodID uint) (*model.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db}
}

func (r *departmentRepository) GetAll() ([]model.Department, error) {
	var list []model.Department
	err := r.db.Order("name asc").Find(&list).Error
	return list, err
}

func (r *departmentRepository) GetByID(id uint) (*model.Department, error) {
	var dept model.Department
	err := r.db.Preload("Staff").First(&dept, id).Error
	return &dept, err
}

func (r *departmentRepository) Create(dept *model.Department) error {
	return r.db.Create(dept).Error
}

func (r *departmentRepository) SetHOD(id uint, hodID uint) error {
	return r.db.Model(&model.Department{}).Where("id = ?", id).Update("hod_id", hodID).Error
}

func (r *departmentRepository) FindByHOD(hodID uint) (*model.Department, error) {
	var dept model.Department
	err := r.db.Where("hod_id = ?", hodID).First(&dept).Error
	return &dept, err
}
