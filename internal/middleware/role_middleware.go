package middleware

import (
	"office-records-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Role lets the request through only for the listed roles. Must run after Auth.
func Role(allowedRoles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole := CurrentRole(c)
		if userRole == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Access denied: missing role"})
		}

		for _, role := range allowedRoles {
			if role == userRole {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Access denied for role " + string(userRole)})
	}
}
