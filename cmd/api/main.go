package main

import (
	"travel-request-backend/config"
	"travel-request-backend/internal/mailer"
	"travel-request-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using system environment variables")
	}

	config.ConnectDB()
	log.Info("database connected")

	mail := mailer.NewSMTPMailer()

	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())

	routes.SetupAuthRoutes(app, config.DB, log)
	routes.SetupAdminRoutes(app, config.DB, mail, log)
	routes.SetupManagerRoutes(app, config.DB, mail, log)
	routes.SetupEmployeeRoutes(app, config.DB, mail, log)

	addr := ":" + config.GetEnv("PORT", "3000")
	log.WithField("addr", addr).Info("server listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
