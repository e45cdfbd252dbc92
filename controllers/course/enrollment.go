package courseController

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"elearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the current user into a published course
func EnrollInCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrollment, err := engine().Enroll(userId, courseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	go func() {
		user, err := fetchUser(userId)
		if err != nil {
			log.Printf("Error fetching user %d for enrollment email: %v", userId, err)
			return
		}
		utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
	}()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully.", enrollment)
}

// GetUserEnrollmentsList returns the user's enrollments with course details
func GetUserEnrollmentsList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	var enrollments []courseModels.Enrollment
	var total int64

	db := database.Database.Db
	if err := db.Preload("Course").
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("id desc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&enrollments).
		Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND is_deleted = ?", userId, false).Count(&total)

	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment List.", response)
}
