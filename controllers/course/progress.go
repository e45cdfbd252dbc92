package courseController

import (
	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// CompleteModule marks one module as completed for the current user and
// returns the refreshed course view. Repeating a completion changes nothing.
func CompleteModule(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := uint(c.Locals("moduleID").(int))

	view, err := engine().CompleteModule(userId, moduleID)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module completed.", view)
}

// GetUserProgress returns the derived course view for the current user
func GetUserProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	eng := engine()

	enrolled, err := eng.Enrolled(userId, courseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	view, err := eng.View(userId, courseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course Progress.", view)
}
