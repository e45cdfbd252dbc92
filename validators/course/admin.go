package courseValidator

import (
	"elearn/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateCourseRequest is the validated admin course payload
type CreateCourseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// CreateCourse validates a new course body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Author
		if strings.TrimSpace(reqData.Author) == "" {
			errors["author"] = "Author is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseRequest allows partial updates, nil means leave unchanged
type UpdateCourseRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Author       *string `json:"author"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Status       *string `json:"status"`
}

// UpdateCourse validates a course update body
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Status
		if reqData.Status != nil {
			switch *reqData.Status {
			case "DRAFT", "ACTIVE", "INACTIVE":
			default:
				errors["status"] = "Status must be DRAFT, ACTIVE or INACTIVE!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateModuleRequest is the validated admin module payload
type CreateModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoKey    string `json:"videoKey"`
	OrderIndex  *int   `json:"orderIndex"`
}

// CreateModule validates a new module body
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate VideoKey
		if strings.TrimSpace(reqData.VideoKey) == "" {
			errors["videoKey"] = "Video key is required!"
		}

		// Validate OrderIndex
		if reqData.OrderIndex == nil || *reqData.OrderIndex < 1 {
			errors["orderIndex"] = "Order index must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// CreateQuestionRequest is the validated admin quiz question payload
type CreateQuestionRequest struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex"`
}

// CreateQuestion validates a new quiz question body
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateQuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Text
		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Question text is required!"
		}

		// Validate Options
		if len(reqData.Options) < 2 {
			errors["options"] = "At least two options are required!"
		}

		// Validate CorrectIndex
		if reqData.CorrectIndex == nil {
			errors["correctIndex"] = "Correct option index is required!"
		} else if *reqData.CorrectIndex < 0 || *reqData.CorrectIndex >= len(reqData.Options) {
			errors["correctIndex"] = "Correct option index is out of range!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// RequestID validates the :requestId route param for certificate approval
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestIDStr := strings.TrimSpace(c.Params("requestId"))
		if requestIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request ID is required!", nil)
		}

		requestID, err := strconv.Atoi(requestIDStr)
		if err != nil || requestID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}

		c.Locals("requestID", requestID)
		return c.Next()
	}
}

// QuestionID validates the :questionId route param
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionIDStr := strings.TrimSpace(c.Params("questionId"))
		if questionIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question ID is required!", nil)
		}

		questionID, err := strconv.Atoi(questionIDStr)
		if err != nil || questionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		c.Locals("questionID", questionID)
		return c.Next()
	}
}

// UserID validates the :userId route param for admin progress lookups
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("userId"))
		if userIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", userID)
		return c.Next()
	}
}
