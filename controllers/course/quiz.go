package courseController

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"elearn/progress"
	"elearn/utils"
	courseValidator "elearn/validators/course"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
)

// quizQuestionView is a question as shown to students, without the answer
type quizQuestionView struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// GetQuiz returns the course quiz questions. The quiz stays locked until
// every module is completed; the correct option index is never exposed.
func GetQuiz(c *fiber.Ctx) error {
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
		return progressErrorResponse(c, progress.ErrNotEnrolled)
	}

	view, err := eng.View(userId, courseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}
	if !view.QuizUnlocked {
		return progressErrorResponse(c, progress.ErrQuizLocked)
	}

	var questions []courseModels.QuizQuestion
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("id asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	questionViews := make([]quizQuestionView, 0, len(questions))
	for _, q := range questions {
		var options []string
		if err := json.Unmarshal(q.Options, &options); err != nil {
			log.Printf("Error decoding options for question %d: %v", q.ID, err)
			continue
		}
		questionViews = append(questionViews, quizQuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Options: options,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course Quiz.", fiber.Map{
		"courseId":  courseID,
		"questions": questionViews,
	})
}

// SubmitQuiz scores a quiz submission and records the attempt
func SubmitQuiz(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	reqData, ok := c.Locals("validatedQuizSubmission").(*courseValidator.SubmitQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := engine().SubmitQuizAttempt(userId, courseID, reqData.Answers)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	go func() {
		user, err := fetchUser(userId)
		if err != nil {
			log.Printf("Error fetching user %d for quiz result email: %v", userId, err)
			return
		}
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
			log.Printf("Error fetching course %d for quiz result email: %v", courseID, err)
			return
		}
		utils.SendQuizResultEmail(user.Email, user.Name, course.Title, result.Score, result.Passed)
	}()

	message := "Quiz submitted. You did not pass this time."
	if result.Passed {
		message = "Quiz submitted. Congratulations, you passed!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, result)
}
