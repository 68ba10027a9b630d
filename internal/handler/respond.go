package handler

import (
	"travel-request-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

func statusFor(code apperror.Code) int {
	switch code {
	case apperror.CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case apperror.CodeForbidden:
		return fiber.StatusForbidden
	case apperror.CodeNotFound:
		return fiber.StatusNotFound
	case apperror.CodeInvalidTransition, apperror.CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	code := apperror.GetCode(err)
	msg := err.Error()
	if code == apperror.CodeInternal {
		msg = "Something went wrong"
	}
	return c.Status(statusFor(code)).JSON(fiber.Map{"error": msg})
}
