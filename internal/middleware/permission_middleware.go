package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Permission checks the caller's role against model.RolePermissions. Super
// Admin always passes.
func Permission(requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole := CurrentRole(c)
		if userRole == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Access denied: missing role"})
		}

		if !userRole.Can(requiredPermission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Access denied: missing permission " + requiredPermission})
		}

		return c.Next()
	}
}
