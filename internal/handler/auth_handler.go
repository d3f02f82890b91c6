package handler

import (
	"time"

	"office-records-backend/internal/middleware"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth         *usecase.AuthUsecase
	cookieSecure bool
	log          *zap.Logger
}

func NewAuthHandler(auth *usecase.AuthUsecase, cookieSecure bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure, log: log}
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "username and password are required")
	}

	result, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Login successful",
		"redirect": result.Redirect,
		"token":    result.Token,
		"data":     result.Admin,
	})
}

// Check re-reads the profile of the session owner.
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	admin, err := h.auth.Profile(middleware.AdminID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"authenticated": true,
		"redirect":      admin.Role.RedirectPath(),
		"data":          admin,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.auth.Refresh(middleware.AdminID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.setSessionCookie(c, result.Token, result.ExpiresAt)
	return c.JSON(fiber.Map{"success": true, "token": result.Token, "redirect": result.Redirect})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.auth.ChangePassword(middleware.AdminID(c), req.OldPassword, req.NewPassword); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, "Password changed", nil)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
