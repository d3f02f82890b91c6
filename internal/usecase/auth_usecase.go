package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase struct {
	repo   repository.AdminRepository
	tokens *TokenManager
	log    *zap.Logger
}

func NewAuthUsecase(repo repository.AdminRepository, tokens *TokenManager, log *zap.Logger) *AuthUsecase {
	return &AuthUsecase{repo: repo, tokens: tokens, log: log}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Redirect  string
	Admin     *model.Admin
}

func (u *AuthUsecase) Login(username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid("username and password are required")
	}

	// 1. Find admin by username
	admin, err := u.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			loginAttempts.WithLabelValues("unknown_user").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Compare password hash
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		loginAttempts.WithLabelValues("wrong_password").Inc()
		u.log.Info("login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		loginAttempts.WithLabelValues("inactive").Inc()
		return nil, ErrInactive
	}

	// 3. Issue token
	token, expiresAt, err := u.tokens.Generate(admin)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	profile, err := u.repo.FindProfile(admin.ID)
	if err != nil {
		return nil, err
	}

	loginAttempts.WithLabelValues("success").Inc()
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Redirect:  admin.Role.RedirectPath(),
		Admin:     profile,
	}, nil
}

// Profile re-reads the admin behind a session. HOD profiles carry their
// department.
func (u *AuthUsecase) Profile(adminID uint) (*model.Admin, error) {
	admin, err := u.repo.FindProfile(adminID)
	if err != nil {
		return nil, notFound(err, "admin")
	}
	return admin, nil
}

// Refresh issues a new token with the admin's current role.
func (u *AuthUsecase) Refresh(adminID uint) (*LoginResult, error) {
	admin, err := u.repo.FindProfile(adminID)
	if err != nil {
		return nil, notFound(err, "admin")
	}
	if !admin.IsActive {
		return nil, ErrInactive
	}
	token, expiresAt, err := u.tokens.Generate(admin)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Redirect: admin.Role.RedirectPath(), Admin: admin}, nil
}

func (u *AuthUsecase) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return invalid("new password must be at least 6 characters")
	}

	admin, err := u.repo.FindByID(adminID)
	if err != nil {
		return notFound(err, "admin")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(oldPassword)); err != nil {
		return invalid("old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return u.repo.UpdateFields(adminID, map[string]interface{}{"password": string(hashed)})
}
