package handler

import (
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdminHandler struct {
	admins *usecase.AdminUsecase
	log    *zap.Logger
}

func NewAdminHandler(admins *usecase.AdminUsecase, log *zap.Logger) *AdminHandler {
	return &AdminHandler{admins: admins, log: log}
}

type CreateAdminRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Username     string `json:"username" validate:"required,min=3"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         string `json:"role" validate:"required"`
	DepartmentID *uint  `json:"department_id"`
	Phone        string `json:"phone"`
}

func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var req CreateAdminRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	admin, err := h.admins.Create(usecase.CreateAdminInput{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		Password:     req.Password,
		Role:         role,
		DepartmentID: req.DepartmentID,
		Phone:        req.Phone,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, "Admin created", admin)
}

type UpdateLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

func (h *AdminHandler) UpdateLogin(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req UpdateLoginRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Username == "" && req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "username or password is required")
	}

	admin, err := h.admins.UpdateLogin(id, req.Username, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Login updated", admin)
}

type UpdateAdminRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Role         *string `json:"role"`
	DepartmentID *uint   `json:"department_id"`
	Phone        *string `json:"phone"`
	IsActive     *bool   `json:"is_active"`
}

func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req UpdateAdminRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	in := usecase.UpdateAdminInput{
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		Phone:        req.Phone,
		IsActive:     req.IsActive,
	}
	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		in.Role = &role
	}

	admin, err := h.admins.Update(id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Admin updated", admin)
}

func (h *AdminHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	admin, err := h.admins.Get(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Admin found", admin)
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	var role model.Role
	if raw := c.Query("role"); raw != "" {
		parsed, err := model.ParseRole(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		role = parsed
	}

	admins, err := h.admins.List(role, c.Query("search"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Admins", admins)
}

func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.admins.Delete(middleware.AdminID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Admin deleted", nil)
}

func (h *AdminHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.admins.ListDepartments()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Departments", departments)
}

type DepartmentRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *AdminHandler) CreateDepartment(c *fiber.Ctx) error {
	var req DepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	department, err := h.admins.CreateDepartment(req.Name)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, "Department created", department)
}

type AssignHODRequest struct {
	AdminID uint `json:"admin_id" validate:"required"`
}

func (h *AdminHandler) AssignHOD(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req AssignHODRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	department, err := h.admins.AssignHOD(id, req.AdminID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Head of department assigned", department)
}
