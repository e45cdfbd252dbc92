package courseRoutes

import (
	courseController "elearn/controllers/course"
	"elearn/middleware"
	courseValidator "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	course := app.Group("/course", middleware.JWTMiddleware)

	course.Get("/list", courseValidator.CourseList(), courseController.CourseList)
	course.Get("/enrollments", courseValidator.GetUserEnrollments(), courseController.GetUserEnrollmentsList)
	course.Get("/certificates", courseController.GetUserCertificates)
	course.Get("/certificate-requests", courseController.GetUserCertificateRequests)

	// Module routes carry their own id, the course is derived from it
	course.Post("/module/:moduleId/complete", courseValidator.ModuleID(), courseController.CompleteModule)
	course.Get("/module/:moduleId/video", courseValidator.ModuleID(), courseController.ModuleVideoURL)

	course.Get("/:id", courseValidator.CourseID(), courseController.CourseDetails)
	course.Post("/:id/enroll", courseValidator.CourseID(), courseController.EnrollInCourse)
	course.Get("/:id/progress", courseValidator.CourseID(), courseController.GetUserProgress)
	course.Get("/:id/quiz", courseValidator.CourseID(), courseController.GetQuiz)
	course.Post("/:id/quiz/submit", courseValidator.CourseID(), courseValidator.SubmitQuiz(), courseController.SubmitQuiz)
	course.Post("/:id/certificate/request", courseValidator.CourseID(), courseController.RequestCertificate)
}
