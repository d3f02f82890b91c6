package usecase

import (
	"fmt"
	"strings"

	"office-records-backend/internal/model"
	"office-records-backend/internal/notify"
	"office-records-backend/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminUsecase struct {
	db       *gorm.DB
	notifier *notify.Notifier
	log      *zap.Logger
}

func NewAdminUsecase(db *gorm.DB, notifier *notify.Notifier, log *zap.Logger) *AdminUsecase {
	return &AdminUsecase{db: db, notifier: notifier, log: log}
}

type CreateAdminInput struct {
	Name         string
	Email        string
	Username     string
	Password     string
	Role         model.Role
	DepartmentID *uint
	Phone        string
}

// Create checks that username and email are free and inserts the admin in a
// single transaction. The welcome email goes out after commit.
func (u *AdminUsecase) Create(in CreateAdminInput) (*model.Admin, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		Username:     in.Username,
		Password:     string(hashed),
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
		Phone:        in.Phone,
		IsActive:     true,
	}

	err = u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewAdminRepository(tx)

		exists, err := repo.ExistsByUsernameOrEmail(in.Username, in.Email, 0)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		if in.DepartmentID != nil {
			if _, err := repository.NewDepartmentRepository(tx).GetByID(*in.DepartmentID); err != nil {
				return notFound(err, "department")
			}
		}
		return repo.Create(admin)
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("admin created", zap.Uint("admin_id", admin.ID), zap.String("role", string(admin.Role)))
	u.notifier.Notify(notify.WelcomeAdmin(admin.Email, admin.Name, admin.Username, string(admin.Role)))
	return admin, nil
}

// UpdateLogin changes username and/or password. Empty values are left as is.
func (u *AdminUsecase) UpdateLogin(id uint, username, password string) (*model.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" && password == "" {
		return nil, invalid("username or password is required")
	}
	if password != "" && len(password) < 6 {
		return nil, invalid("password must be at least 6 characters")
	}

	var updated *model.Admin
	err := u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewAdminRepository(tx)
		admin, err := repo.FindByID(id)
		if err != nil {
			return notFound(err, "admin")
		}

		fields := map[string]interface{}{}
		if username != "" && username != admin.Username {
			exists, err := repo.ExistsByUsernameOrEmail(username, "", id)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%w: username already taken", ErrConflict)
			}
			fields["username"] = username
			admin.Username = username
		}
		if password != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fields["password"] = string(hashed)
		}
		if len(fields) > 0 {
			if err := repo.UpdateFields(id, fields); err != nil {
				return err
			}
		}
		updated = admin
		return nil
	})
	return updated, err
}

type UpdateAdminInput struct {
	Name         *string
	Email        *string
	Role         *model.Role
	DepartmentID *uint
	Phone        *string
	IsActive     *bool
}

func (u *AdminUsecase) Update(id uint, in UpdateAdminInput) (*model.Admin, error) {
	var updated *model.Admin
	err := u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewAdminRepository(tx)
		admin, err := repo.FindByID(id)
		if err != nil {
			return notFound(err, "admin")
		}

		if in.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*in.Email))
			if email != admin.Email {
				exists, err := repo.ExistsByUsernameOrEmail("", email, id)
				if err != nil {
					return err
				}
				if exists {
					return fmt.Errorf("%w: email already registered", ErrConflict)
				}
				admin.Email = email
			}
		}
		if in.Name != nil {
			admin.Name = strings.TrimSpace(*in.Name)
		}
		if in.Role != nil {
			admin.Role = *in.Role
		}
		if in.DepartmentID != nil {
			if _, err := repository.NewDepartmentRepository(tx).GetByID(*in.DepartmentID); err != nil {
				return notFound(err, "department")
			}
			admin.DepartmentID = in.DepartmentID
		}
		if in.Phone != nil {
			admin.Phone = *in.Phone
		}
		if in.IsActive != nil {
			admin.IsActive = *in.IsActive
		}

		admin.Department = nil
		if err := repo.Update(admin); err != nil {
			return err
		}
		updated = admin
		return nil
	})
	return updated, err
}

func (u *AdminUsecase) Get(id uint) (*model.Admin, error) {
	admin, err := repository.NewAdminRepository(u.db).FindProfile(id)
	if err != nil {
		return nil, notFound(err, "admin")
	}
	return admin, nil
}

func (u *AdminUsecase) List(role model.Role, search string) ([]model.Admin, error) {
	return repository.NewAdminRepository(u.db).GetAll(role, strings.TrimSpace(search))
}

func (u *AdminUsecase) Delete(actorID, id uint) error {
	if actorID == id {
		return invalid("you cannot delete your own account")
	}
	return u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewAdminRepository(tx)
		if _, err := repo.FindByID(id); err != nil {
			return notFound(err, "admin")
		}

		refs, err := repo.CountReferences(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: admin is still referenced by %d files, records, leaves or tasks; deactivate it instead", ErrConflict, refs)
		}

		if err := repo.Delete(id); err != nil {
			return notFound(err, "admin")
		}
		return nil
	})
}

func (u *AdminUsecase) ListDepartments() ([]model.Department, error) {
	return repository.NewDepartmentRepository(u.db).GetAll()
}

func (u *AdminUsecase) CreateDepartment(name string) (*model.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("department name is required")
	}
	dept := &model.Department{Name: name}
	err := u.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Department{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: department already exists", ErrConflict)
		}
		return repository.NewDepartmentRepository(tx).Create(dept)
	})
	if err != nil {
		return nil, err
	}
	return dept, nil
}

// AssignHOD makes the admin head of the department and moves them into it.
// The admin must have the HOD role.
func (u *AdminUsecase) AssignHOD(departmentID, adminID uint) (*model.Department, error) {
	var dept *model.Department
	err := u.db.Transaction(func(tx *gorm.DB) error {
		depts := repository.NewDepartmentRepository(tx)
		admins := repository.NewAdminRepository(tx)

		if _, err := depts.GetByID(departmentID); err != nil {
			return notFound(err, "department")
		}
		admin, err := admins.FindByID(adminID)
		if err != nil {
			return notFound(err, "admin")
		}
		if admin.Role != model.RoleHOD {
			return invalid("admin %d is not an HOD", adminID)
		}
		if err := depts.SetHOD(departmentID, adminID); err != nil {
			return err
		}
		if err := admins.UpdateFields(adminID, map[string]interface{}{"department_id": departmentID}); err != nil {
			return err
		}
		dept, err = depts.GetByID(departmentID)
		return err
	})
	return dept, err
}
