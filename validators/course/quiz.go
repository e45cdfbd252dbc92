package courseValidator

import (
	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuizRequest carries the student's selected option per question,
// in question order
type SubmitQuizRequest struct {
	Answers []int `json:"answers"`
}

// SubmitQuiz validates a quiz submission body
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Answers
		if reqData.Answers == nil {
			errors["answers"] = "Answers are required!"
		} else {
			for _, a := range reqData.Answers {
				if a < 0 {
					errors["answers"] = "Answer indexes must not be negative!"
					break
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}
