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

func SetupAdminRoutes(app *fiber.App, db *gorm.DB, mail mailer.Mailer, log logrus.FieldLogger) {
	users := repository.NewUserRepository(db)
	employees := repository.NewEmployeeRepository(db)
	requests := repository.NewRequestRepository(db)

	identity := usecase.NewIdentityUsecase(users, employees)
	lifecycle := usecase.NewRequestUsecase(requests, employees, mail, log)
	directory := usecase.NewDirectoryUsecase(users, employees, requests, log)

	reqHdl := handler.NewRequestHandler(lifecycle)
	empHdl := handler.NewEmployeeHandler(directory)

	api := app.Group("/api/admin", middleware.Auth(identity))
	admin := middleware.Role(usecase.RoleAdmin)

	api.Get("/requests", admin, reqHdl.ListRequests)
	// Detail view is shared across roles and carries no ownership check
	api.Get("/requests/:id", reqHdl.ViewRequest)
	api.Post("/requests/:id/close", admin, reqHdl.CloseRequest)

	api.Get("/employees", admin, empHdl.ListEmployees)
	api.Post("/employees/new", admin, empHdl.CreateEmployee)
	api.Get("/employees/:id", admin, empHdl.GetEmployee)
	api.Patch("/employees/:id", admin, empHdl.UpdateEmployee)
	api.Delete("/employees/:id", admin, empHdl.DeleteEmployee)
}
