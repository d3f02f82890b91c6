package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validate = validator.New()

func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}

// respondError maps usecase errors onto HTTP statuses. Anything unknown is
// logged and reported as a generic 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, usecase.ErrInactive), errors.Is(err, usecase.ErrForbidden):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrConflict), errors.Is(err, usecase.ErrInvalidTransition):
		return fail(c, fiber.StatusConflict, err.Error())
	}
	log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return fail(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// parseBody decodes JSON or form bodies and runs struct validation.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "datetime":
		return field + " must be a date formatted YYYY-MM-DD"
	case "gt":
		return field + " must be greater than " + fe.Param()
	}
	return field + " is invalid"
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

// currentAdmin loads the authenticated admin row.
func currentAdmin(c *fiber.Ctx, admins repository.AdminRepository) (*model.Admin, error) {
	id := middleware.AdminID(c)
	if id == 0 {
		return nil, usecase.ErrForbidden
	}
	admin, err := admins.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("admin %w", usecase.ErrNotFound)
		}
		return nil, err
	}
	return admin, nil
}
