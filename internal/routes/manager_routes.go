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

func SetupManagerRoutes(app *fiber.App, db *gorm.DB, mail mailer.Mailer, log logrus.FieldLogger) {
	users := repository.NewUserRepository(db)
	employees := repository.NewEmployeeRepository(db)
	requests := repository.NewRequestRepository(db)

	identity := usecase.NewIdentityUsecase(users, employees)
	lifecycle := usecase.NewRequestUsecase(requests, employees, mail, log)

	hdl := handler.NewRequestHandler(lifecycle)

	api := app.Group("/api/manager", middleware.Auth(identity))
	manager := middleware.Role(usecase.RoleManager)

	api.Get("/requests", manager, hdl.ListRequests)
	api.Get("/requests/:id", hdl.ViewRequest)
	api.Post("/requests/:id/action", manager, hdl.ManagerAction)
}
