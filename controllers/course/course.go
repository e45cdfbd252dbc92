package courseController

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"elearn/progress"
	"elearn/utils"

	"github.com/gofiber/fiber/v2"
)

// CourseList returns the published course catalogue with pagination
func CourseList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	var courses []courseModels.Course
	var total int64

	db := database.Database.Db
	if err := db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("id asc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&courses).
		Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&total)

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course List.", response)
}

// CourseDetails returns one published course. For enrolled students the
// response carries the derived progress view; others get the module list
// with every module shown locked.
func CourseDetails(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	eng := engine()

	enrolled, err := eng.Enrolled(userId, courseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	response := fiber.Map{
		"course":   course,
		"enrolled": enrolled,
	}

	if enrolled {
		view, err := eng.View(userId, courseID)
		if err != nil {
			return progressErrorResponse(c, err)
		}
		response["progress"] = view
	} else {
		var modules []courseModels.Module
		if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
			Order("order_index asc, id asc").Find(&modules).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
		}
		response["modules"] = modules
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course Details.", response)
}

// ModuleVideoURL resolves a time-limited playback URL for one module. Only
// reachable modules (unlocked or completed) are served; locked ones are
// refused so the sequential order cannot be skipped.
func ModuleVideoURL(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := uint(c.Locals("moduleID").(int))

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	eng := engine()

	enrolled, err := eng.Enrolled(userId, module.CourseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}
	if !enrolled {
		return progressErrorResponse(c, progress.ErrNotEnrolled)
	}

	view, err := eng.View(userId, module.CourseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	for _, mv := range view.Modules {
		if mv.Module.ID != moduleID {
			continue
		}
		if mv.Status == progress.ModuleLocked {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the previous module to unlock this one!", nil)
		}

		url, err := utils.SignedVideoURL(module.VideoKey)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve video URL!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Module Video URL.", fiber.Map{
			"moduleId": module.ID,
			"videoUrl": url,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
}
