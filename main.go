package main

import (
	"elearn/config"
	"elearn/database"
	authRoutes "elearn/routers/authRoutes"
	courseRoutes "elearn/routers/courseRoutes"
	"elearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Connect to the database
	database.ConnectDb()

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Serve locally signed media
	app.Static("/media", "./uploads")

	// Register routes
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)

	// Background jobs
	utils.InitializeCertificateScheduler()

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
