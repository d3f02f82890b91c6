package middleware

import (
	"strings"

	"office-records-backend/internal/model"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

const (
	CookieName   = "token"
	LocalAdminID = "admin_id"
	LocalRole    = "role"
)

// Auth verifies the session token from the "token" cookie, falling back to an
// "Authorization: Bearer" header, and stores admin_id and role in Locals.
func Auth(tokens *usecase.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Read token from cookie or header
		tokenString := c.Cookies(CookieName)
		if tokenString == "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
		}

		// 2. Verify
		claims, err := tokens.Parse(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid or expired session"})
		}

		// 3. Expose claims to handlers
		c.Locals(LocalAdminID, claims.AdminID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// AdminID returns the authenticated admin id, or 0 outside Auth.
func AdminID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalAdminID).(uint)
	return id
}

func CurrentRole(c *fiber.Ctx) model.Role {
	role, _ := c.Locals(LocalRole).(model.Role)
	return role
}
