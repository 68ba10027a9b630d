package handler

import (
	"encoding/json"
	"strconv"
	"travel-request-backend/internal/middleware"
	"travel-request-backend/internal/model"
	"travel-request-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type DirectoryService interface {
	CreateEmployee(in usecase.CreateEmployeeInput) (*model.Employee, error)
	UpdateEmployee(id uint, in usecase.UpdateEmployeeInput) error
	DeleteEmployee(id uint) error
	ListEmployees(searchName string) ([]model.Employee, error)
	GetEmployee(id uint) (*model.Employee, error)
	Me(actor usecase.Identity) (*usecase.EmployeeDetails, error)
}

type EmployeeHandler struct {
	directory DirectoryService
}

func NewEmployeeHandler(directory DirectoryService) *EmployeeHandler {
	return &EmployeeHandler{directory: directory}
}

func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	list, err := h.directory.ListEmployees(c.Query("search_name"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Employees retrieved",
		"data":    list,
	})
}

func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	emp, err := h.directory.GetEmployee(uint(id))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Employee retrieved",
		"data":    emp,
	})
}

func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var in usecase.CreateEmployeeInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	emp, err := h.directory.CreateEmployee(in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Employee Created!",
		"employee_id": emp.ID,
	})
}

// UpdateEmployee parses the raw body so an explicit `"manager_id": null`
// (clear the link) can be told apart from an absent key (leave alone).
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var in usecase.UpdateEmployeeInput
	in.Username = rawString(raw, "username")
	in.FirstName = rawString(raw, "first_name")
	in.LastName = rawString(raw, "last_name")
	in.Email = rawString(raw, "email")
	in.IsActive = rawBool(raw, "is_active")
	in.IsManager = rawBool(raw, "is_manager")
	in.Status = rawString(raw, "employee_status")

	if msg, ok := raw["manager_id"]; ok {
		in.ManagerIDSet = true
		var managerID *uint
		if err := json.Unmarshal(msg, &managerID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid manager_id"})
		}
		in.ManagerID = managerID
	}

	if err := h.directory.UpdateEmployee(uint(id), in); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Employee data updated successfully"})
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	if err := h.directory.DeleteEmployee(uint(id)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Removed an Employee",
		"emp_id":  id,
	})
}

func (h *EmployeeHandler) Me(c *fiber.Ctx) error {
	details, err := h.directory.Me(middleware.IdentityFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(details)
}

func rawString(raw map[string]json.RawMessage, key string) *string {
	msg, ok := raw[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return nil
	}
	return &s
}

func rawBool(raw map[string]json.RawMessage, key string) *bool {
	msg, ok := raw[key]
	if !ok {
		return nil
	}
	var b bool
	if err := json.Unmarshal(msg, &b); err != nil {
		return nil
	}
	return &b
}
