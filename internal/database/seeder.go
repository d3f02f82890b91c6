package database

import (
	"fmt"
	"time"

	"office-records-backend/internal/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultSeedPassword = "admin123"

type seedAdmin struct {
	Name       string
	Username   string
	Email      string
	Role       model.Role
	Department string
}

var seedAdmins = []seedAdmin{
	{"System Administrator", "superadmin", "superadmin@office.local", model.RoleSuperAdmin, ""},
	{"Managing Director", "boss", "boss@office.local", model.RoleBoss, ""},
	{"Registry Officer", "registry", "registry@office.local", model.RoleRegistry, "Registry"},
	{"HR Officer", "hr", "hr@office.local", model.RoleHumanResource, "Human Resource"},
	{"Head of ICT", "hod.ict", "hod.ict@office.local", model.RoleHOD, "ICT"},
	{"ICT Staff", "employee", "employee@office.local", model.RoleEmployee, "ICT"},
}

// SeedAll creates departments, one account per role and a sample file. It is
// safe to run repeatedly.
func SeedAll(db *gorm.DB, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// 1. Departments
		departments := map[string]*model.Department{}
		for _, name := range []string{"Registry", "Human Resource", "ICT"} {
			dept := model.Department{Name: name}
			if err := tx.Where(model.Department{Name: name}).FirstOrCreate(&dept).Error; err != nil {
				return fmt.Errorf("seed department %s: %w", name, err)
			}
			departments[name] = &dept
		}

		// 2. One admin per role
		admins := map[model.Role]*model.Admin{}
		for _, s := range seedAdmins {
			admin, err := SeedAdmin(tx, s.Name, s.Username, s.Email, DefaultSeedPassword, s.Role)
			if err != nil {
				return err
			}
			if dept, ok := departments[s.Department]; ok {
				if err := tx.Model(admin).Update("department_id", dept.ID).Error; err != nil {
					return err
				}
			}
			admins[s.Role] = admin
		}

		// 3. The HOD heads ICT
		hod := admins[model.RoleHOD]
		if err := tx.Model(departments["ICT"]).Update("hod_id", hod.ID).Error; err != nil {
			return err
		}

		// 4. Sample file
		file := model.File{
			FileNumber: "REG/GEN/001",
			Name:       "General Correspondence",
			Type:       model.FileIncoming,
			OwnerID:    admins[model.RoleRegistry].ID,
		}
		if err := tx.Where(model.File{FileNumber: file.FileNumber}).FirstOrCreate(&file).Error; err != nil {
			return fmt.Errorf("seed file: %w", err)
		}

		log.Info("seed completed", zap.Int("admins", len(admins)), zap.Time("at", time.Now()))
		return nil
	})
}

// SeedAdmin creates the admin if the username is free and always resets the
// password, so a known login exists after seeding.
func SeedAdmin(db *gorm.DB, name, username, email, password string, role model.Role) (*model.Admin, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := model.Admin{
		Name:     name,
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := db.Where(model.Admin{Username: username}).FirstOrCreate(&admin).Error; err != nil {
		return nil, fmt.Errorf("seed admin %s: %w", username, err)
	}
	if err := db.Model(&admin).Update("password", string(hashed)).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
