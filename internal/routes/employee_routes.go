package routes

import (
	"travel-request-backend/internal/handler"
	"travel-request-backend/internal/mailer"
	"travel-request-backend/internal/middleware"
	"travel-request-backend/internal/repository"
	"travel-request-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func SetupEmployeeRoutes(app *fiber.App, db *gorm.DB, mail mailer.Mailer, log logrus.FieldLogger) {
	users := repository.NewUserRepository(db)
	employees := repository.NewEmployeeRepository(db)
	requests := repository.NewRequestRepository(db)

	identity := usecase.NewIdentityUsecase(users, employees)
	lifecycle := usecase.NewRequestUsecase(requests, employees, mail, log)
	directory := usecase.NewDirectoryUsecase(users, employees, requests, log)

	reqHdl := handler.NewRequestHandler(lifecycle)
	empHdl := handler.NewEmployeeHandler(directory)

	api := app.Group("/api/employee", middleware.Auth(identity))
	employee := middleware.Role(usecase.RoleEmployee)

	api.Get("/requests", employee, reqHdl.ListOwnRequests)
	api.Post("/requests/new", employee, reqHdl.CreateRequest)
	api.Get("/me", empHdl.Me)
	api.Get("/requests/:id/view", reqHdl.ViewRequest)
	api.Patch("/requests/:id/edit", employee, reqHdl.EditRequest)
	api.Post("/requests/:id/action", employee, reqHdl.EmployeeSubmit)
	api.Delete("/requests/:id/action", employee, reqHdl.EmployeeDelete)
}
