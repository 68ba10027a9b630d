package handler

import (
	"strconv"
	"travel-request-backend/internal/middleware"
	"travel-request-backend/internal/model"
	"travel-request-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// RequestService is the lifecycle engine surface the handlers need; the tests
// substitute a stub.
type RequestService interface {
	CreateRequest(actor usecase.Identity, in usecase.CreateRequestInput) (*model.TravelRequest, error)
	List(actor usecase.Identity, f usecase.ListFilters) ([]model.TravelRequest, error)
	View(id uint) (*model.TravelRequest, error)
	ManagerAction(actor usecase.Identity, id uint, action, note string) error
	Submit(actor usecase.Identity, id uint, action string) error
	Close(actor usecase.Identity, id uint, action, note string) error
	Edit(actor usecase.Identity, id uint, in usecase.EditRequestInput) (*model.TravelRequest, error)
	Delete(actor usecase.Identity, id uint) error
}

type RequestHandler struct {
	requests RequestService
}

func NewRequestHandler(requests RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

func requestID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// ListRequests serves the admin and manager listings; the scope comes from the
// resolved role, the filters and sort from the query string.
func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	list, err := h.requests.List(middleware.IdentityFrom(c), usecase.ListFilters{
		Status:     c.Query("status"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		SearchName: c.Query("search_name"),
		SortBy:     c.Query("sort_by"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Requests retrieved",
		"data":    list,
	})
}

// ListOwnRequests serves the employee listing, filterable by purpose only.
func (h *RequestHandler) ListOwnRequests(c *fiber.Ctx) error {
	list, err := h.requests.List(middleware.IdentityFrom(c), usecase.ListFilters{
		SearchPurpose: c.Query("purpose_of_travel"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Requests retrieved",
		"data":    list,
	})
}

func (h *RequestHandler) ViewRequest(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	}

	req, err := h.requests.View(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Request retrieved",
		"data":    req,
	})
}

func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	var in usecase.CreateRequestInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req, err := h.requests.CreateRequest(middleware.IdentityFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Request Submitted",
		"data":    req,
	})
}

type actionRequest struct {
	Action string `json:"action"`
	Note   string `json:"note"`
}

func (h *RequestHandler) ManagerAction(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	}

	var body actionRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.requests.ManagerAction(middleware.IdentityFrom(c), id, body.Action, body.Note); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "status updated",
		"action":  body.Action,
	})
}

func (h *RequestHandler) EmployeeSubmit(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	}

	var body actionRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.requests.Submit(middleware.IdentityFrom(c), id, body.Action); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "status updated",
		"action":  body.Action,
	})
}

func (h *RequestHandler) EmployeeDelete(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	}

	if err := h.requests.Delete(middleware.IdentityFrom(c), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "deleted request",
		"request": id,
	})
}

func (h *RequestHandler) EditRequest(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	}

	var in usecase.EditRequestInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req, err := h.requests.Edit(middleware.IdentityFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Request updated",
		"data":    req,
	})
}

func (h *RequestHandler) CloseRequest(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	}

	var body actionRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.requests.Close(middleware.IdentityFrom(c), id, body.Action, body.Note); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Request status updated",
		"action":  body.Action,
	})
}
