package middleware

import (
	"elearn/database"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CheckPermissionMiddleware returns a middleware that checks if the user has the required permission
func CheckPermissionMiddleware(requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get user ID from context (set by the JWT middleware)
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		var permission models.Permission
		err := database.Database.Db.Where("user_id = ? AND permission = ? AND is_deleted = false",
			userID, requiredPermission).First(&permission).Error

		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
			}
			// Other DB error
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}

		// Permission found, proceed
		return c.Next()
	}
}
