package courseController

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/progress"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// engine builds a progress engine on the shared database handle
func engine() *progress.Engine {
	return progress.NewEngine(database.Database.Db, config.AppConfig.QuizPassMark)
}

// fetchUser loads an active user, mainly for email notifications
func fetchUser(userID uint) (*models.User, error) {
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// requireAdmin loads the current user and checks the ADMIN role. On failure
// the response is already written and nil is returned.
func requireAdmin(c *fiber.Ctx) *models.User {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return nil
	}

	user, err := fetchUser(userId)
	if err != nil {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return nil
	}

	if user.Role != "ADMIN" {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access Denied!", nil)
		return nil
	}

	return user
}

// progressErrorResponse maps engine errors onto the JSON envelope
func progressErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progress.ErrAlreadyEnrolled):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	case errors.Is(err, progress.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	case errors.Is(err, progress.ErrQuizLocked):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete all modules to unlock the quiz!", nil)
	case errors.Is(err, progress.ErrQuizEmpty):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course has no quiz questions yet!", nil)
	case errors.Is(err, progress.ErrQuizNotPassed):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Pass the quiz before requesting a certificate!", nil)
	case errors.Is(err, progress.ErrDuplicateRequest):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already requested!", nil)
	case errors.Is(err, progress.ErrModuleNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	case errors.Is(err, progress.ErrRequestNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
