package authRoutes

import (
	authController "elearn/controllers/auth"
	"elearn/middleware"
	authValidator "elearn/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the authentication routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/signup", authValidator.Signup(), authController.Signup)
	auth.Post("/login", authValidator.Login(), authController.Login)
	auth.Get("/login-history", middleware.JWTMiddleware, authValidator.LoginHistoryList(), authController.LoginHistoryList)
}
