package handler

import (
	"travel-request-backend/internal/model"
	"travel-request-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthService interface {
	Login(portal, username, password string) (string, error)
}

type AdminProvisioner interface {
	CreateAdmin(in usecase.CreateAdminInput) (*model.Admin, error)
}

type AuthHandler struct {
	auth      AuthService
	directory AdminProvisioner
}

func NewAuthHandler(auth AuthService, directory AdminProvisioner) *AuthHandler {
	return &AuthHandler{auth: auth, directory: directory}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) EmployeeLogin(c *fiber.Ctx) error {
	return h.login(c, usecase.RoleEmployee)
}

func (h *AuthHandler) ManagerLogin(c *fiber.Ctx) error {
	return h.login(c, usecase.RoleManager)
}

func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, usecase.RoleAdmin)
}

func (h *AuthHandler) login(c *fiber.Ctx, portal string) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please enter both the fields"})
	}

	token, err := h.auth.Login(portal, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

func (h *AuthHandler) CreateAdmin(c *fiber.Ctx) error {
	var in usecase.CreateAdminInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	admin, err := h.directory.CreateAdmin(in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Admin Created!",
		"admin_id": admin.ID,
	})
}
