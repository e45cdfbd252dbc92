package courseController

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	courseValidator "elearn/validators/course"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a new course in DRAFT status
func CreateCourse(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Author:       reqData.Author,
		ThumbnailURL: reqData.ThumbnailURL,
		Status:       "DRAFT",
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created.", course)
}

// UpdateCourse applies a partial update to a course. Setting status to
// ACTIVE publishes it, anything else unpublishes.
func UpdateCourse(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	courseID := uint(c.Locals("courseID").(int))

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Author != nil {
		course.Author = *reqData.Author
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
		course.IsPublished = *reqData.Status == "ACTIVE"
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated.", course)
}

// DeleteCourse soft-deletes a course
func DeleteCourse(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	courseID := uint(c.Locals("courseID").(int))

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	course.IsPublished = false

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error deleting course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted.", nil)
}

// AddModule appends a module to a course. Order indexes must be unique
// within the course; the traversal order depends on it.
func AddModule(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	courseID := uint(c.Locals("courseID").(int))

	reqData, ok := c.Locals("validatedModule").(*courseValidator.CreateModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Reject duplicate order index within the course
	var existing courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND order_index = ? AND is_deleted = ?",
		courseID, *reqData.OrderIndex, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A module with this order index already exists!", nil)
	}

	module := courseModels.Module{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoKey:    reqData.VideoKey,
		OrderIndex:  *reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created.", module)
}

// UpdateModule replaces a module's fields
func UpdateModule(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	moduleID := uint(c.Locals("moduleID").(int))

	reqData, ok := c.Locals("validatedModule").(*courseValidator.CreateModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if *reqData.OrderIndex != module.OrderIndex {
		var existing courseModels.Module
		if err := database.Database.Db.Where("course_id = ? AND order_index = ? AND is_deleted = ? AND id != ?",
			module.CourseID, *reqData.OrderIndex, false, module.ID).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A module with this order index already exists!", nil)
		}
	}

	module.Title = reqData.Title
	module.Description = reqData.Description
	module.VideoKey = reqData.VideoKey
	module.OrderIndex = *reqData.OrderIndex

	if err := database.Database.Db.Save(&module).Error; err != nil {
		log.Printf("Error updating module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated.", module)
}

// DeleteModule soft-deletes a module
func DeleteModule(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	moduleID := uint(c.Locals("moduleID").(int))

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.IsDeleted = true

	if err := database.Database.Db.Save(&module).Error; err != nil {
		log.Printf("Error deleting module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted.", nil)
}

// AddQuestion adds a quiz question to a course
func AddQuestion(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	courseID := uint(c.Locals("courseID").(int))

	reqData, ok := c.Locals("validatedQuestion").(*courseValidator.CreateQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	optionsJSON, err := json.Marshal(reqData.Options)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
	}

	question := courseModels.QuizQuestion{
		CourseID:     courseID,
		Text:         reqData.Text,
		Options:      optionsJSON,
		CorrectIndex: *reqData.CorrectIndex,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		log.Printf("Error creating quiz question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created.", question)
}

// ListQuestions returns a course's quiz questions including correct indexes
func ListQuestions(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	courseID := uint(c.Locals("courseID").(int))

	var questions []courseModels.QuizQuestion
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("id asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question List.", questions)
}

// UpdateQuestion replaces a quiz question's fields
func UpdateQuestion(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	questionID := uint(c.Locals("questionID").(int))

	reqData, ok := c.Locals("validatedQuestion").(*courseValidator.CreateQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var question courseModels.QuizQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	optionsJSON, err := json.Marshal(reqData.Options)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
	}

	question.Text = reqData.Text
	question.Options = optionsJSON
	question.CorrectIndex = *reqData.CorrectIndex

	if err := database.Database.Db.Save(&question).Error; err != nil {
		log.Printf("Error updating question %d: %v", questionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated.", question)
}

// DeleteQuestion soft-deletes a quiz question
func DeleteQuestion(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	questionID := uint(c.Locals("questionID").(int))

	var question courseModels.QuizQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true

	if err := database.Database.Db.Save(&question).Error; err != nil {
		log.Printf("Error deleting question %d: %v", questionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted.", nil)
}
