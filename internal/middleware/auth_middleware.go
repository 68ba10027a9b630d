package middleware

import (
	"strings"
	"travel-request-backend/config"
	"travel-request-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityResolver maps an authenticated user id to its role profile.
type IdentityResolver interface {
	Resolve(userID uint) (usecase.Identity, error)
}

// Auth validates the bearer token and resolves the principal's role once,
// storing the Identity in the request context for the handlers.
func Auth(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token not provided"})
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return config.JWTSecret(), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
		userID, ok := claims["user_id"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		ident, err := resolver.Resolve(uint(userID))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("identity", ident)
		return c.Next()
	}
}

// IdentityFrom pulls the resolved identity out of the request context.
func IdentityFrom(c *fiber.Ctx) usecase.Identity {
	ident, _ := c.Locals("identity").(usecase.Identity)
	return ident
}
