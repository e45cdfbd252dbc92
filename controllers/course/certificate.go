package courseController

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
)

// RequestCertificate opens a PENDING certificate request for the current
// user. The latest quiz attempt must be a pass and no prior request may
// exist for this course.
func RequestCertificate(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	request, err := engine().RequestCertificate(userId, courseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate requested. It will be issued after review.", request)
}

// GetUserCertificates lists the current user's issued certificates
func GetUserCertificates(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate List.", certificates)
}

// GetUserCertificateRequests lists the current user's certificate requests
// with their workflow status
func GetUserCertificateRequests(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var requests []courseModels.CertificateRequest
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("requested_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate Request List.", requests)
}
