package middleware

import "github.com/gofiber/fiber/v2"

// Role gates a route to the listed roles. A principal without any profile
// resolves to "none" and is always denied here.
func Role(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := IdentityFrom(c)

		for _, role := range allowedRoles {
			if role == ident.Role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}
}
