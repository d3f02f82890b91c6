package repository

import (
	"strings"

	"office-records-backend/internal/model"

	"gorm.io/gorm"
)

type AdminRepository interface {
	FindByUsername(username string) (*model.Admin, error)
	FindByID(id uint) (*model.Admin, error)
	FindProfile(id uint) (*model.Admin, error)
	ExistsByUsernameOrEmail(username, email string, excludeID uint) (bool, error)
	Create(admin *model.Admin) error
	Update(admin *model.Admin) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	CountReferences(id uint) (int64, error)
	GetAll(role model.Role, search string) ([]model.Admin, error)
	GetByDepartment(departmentID uint) ([]model.Admin, error)
	CountByRole() (map[model.Role]int64, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db}
}

func (r *adminRepository) FindByUsername(username string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.Where("username = ?", username).First(&admin).Error
	return &admin, err
}

func (r *adminRepository) FindByID(id uint) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.First(&admin, id).Error
	return &admin, err
}

// FindProfile loads the admin and, for HODs, the department they head.
func (r *adminRepository) FindProfile(id uint) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.Preload("Department").First(&admin, id).Error; err != nil {
		return nil, err
	}
	if admin.Role == model.RoleHOD {
		var dept model.Department
		err := r.db.Where("hod_id = ?", admin.ID).Preload("Staff").First(&dept).Error
		if err == nil {
			admin.Department = &dept
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	return &admin, nil
}

func (r *adminRepository) ExistsByUsernameOrEmail(username, email string, excludeID uint) (bool, error) {
	var count int64
	var match *gorm.DB
	switch {
	case username != "" && email != "":
		match = r.db.Where("username = ?", username).Or("email = ?", email)
	case username != "":
		match = r.db.Where("username = ?", username)
	case email != "":
		match = r.db.Where("email = ?", email)
	default:
		return false, nil
	}
	query := r.db.Model(&model.Admin{}).Where(match)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *adminRepository) Create(admin *model.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepository) Update(admin *model.Admin) error {
	return r.db.Save(admin).Error
}

func (r *adminRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.Admin{}).Where("id = ?", id).Updates(fields).Error
}

func (r *adminRepository) Delete(id uint) error {
	res := r.db.Unscoped().Delete(&model.Admin{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountReferences counts the rows in other tables that point at the admin.
func (r *adminRepository) CountReferences(id uint) (int64, error) {
	checks := []struct {
		model interface{}
		where string
	}{
		{&model.File{}, "owner_id = ?"},
		{&model.Record{}, "created_by = ?"},
		{&model.ForwardedRecord{}, "forwarded_by = ? OR recipient_id = ?"},
		{&model.Review{}, "reviewer_id = ?"},
		{&model.LeaveApplication{}, "employee_id = ? OR reviewed_by = ?"},
		{&model.Task{}, "employee_id = ? OR assigned_by = ?"},
		{&model.FinishedTask{}, "employee_id = ? OR assigned_by = ?"},
		{&model.Department{}, "hod_id = ?"},
	}

	var total int64
	for _, check := range checks {
		args := make([]interface{}, strings.Count(check.where, "?"))
		for i := range args {
			args[i] = id
		}
		var count int64
		if err := r.db.Unscoped().Model(check.model).Where(check.where, args...).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

func (r *adminRepository) GetAll(role model.Role, search string) ([]model.Admin, error) {
	var admins []model.Admin
	query := r.db.Preload("Department")

	if role != "" {
		query = query.Where("role = ?", role)
	}
	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR username LIKE ? OR email LIKE ?", searchPattern, searchPattern, searchPattern)
	}

	err := query.Order("name asc").Find(&admins).Error
	return admins, err
}

func (r *adminRepository) GetByDepartment(departmentID uint) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.Where("department_id = ?", departmentID).Order("name asc").Find(&admins).Error
	return admins, err
}

func (r *adminRepository) CountByRole() (map[model.Role]int64, error) {
	var rows []struct {
		Role  model.Role
		Count int64
	}
	err := r.db.Model(&model.Admin{}).Select("role, count(*) as count").Group("role").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Role]int64, len(model.Roles))
	for _, role := range model.Roles {
		counts[role] = 0
	}
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}
