package courseRoutes

import (
	courseController "elearn/controllers/course"
	"elearn/middleware"
	courseValidator "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes registers the admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.JWTMiddleware)

	admin.Post("/course", courseValidator.CreateCourse(), courseController.CreateCourse)
	admin.Patch("/course/:id", courseValidator.CourseID(), courseValidator.UpdateCourse(), courseController.UpdateCourse)
	admin.Delete("/course/:id", courseValidator.CourseID(), courseController.DeleteCourse)

	admin.Post("/course/:id/module", courseValidator.CourseID(), courseValidator.CreateModule(), courseController.AddModule)
	admin.Put("/module/:moduleId", courseValidator.ModuleID(), courseValidator.CreateModule(), courseController.UpdateModule)
	admin.Delete("/module/:moduleId", courseValidator.ModuleID(), courseController.DeleteModule)

	admin.Post("/course/:id/question", courseValidator.CourseID(), courseValidator.CreateQuestion(), courseController.AddQuestion)
	admin.Get("/course/:id/questions", courseValidator.CourseID(), courseController.ListQuestions)
	admin.Put("/question/:questionId", courseValidator.QuestionID(), courseValidator.CreateQuestion(), courseController.UpdateQuestion)
	admin.Delete("/question/:questionId", courseValidator.QuestionID(), courseController.DeleteQuestion)

	admin.Get("/course/:id/enrollments", courseValidator.CourseID(), courseController.CourseEnrollments)
	admin.Get("/course/:id/completed", courseValidator.CourseID(), courseController.CourseCompletedStudents)
	admin.Get("/course/:id/progress/:userId", courseValidator.CourseID(), courseValidator.UserID(), courseController.StudentProgress)

	admin.Get("/certificate-requests", courseController.PendingCertificateRequests)
	admin.Get("/certificates/issued", courseController.IssuedCertificates)
	admin.Post("/certificate-requests/:requestId/approve",
		middleware.CheckPermissionMiddleware("approve-certificates"),
		courseValidator.RequestID(),
		courseController.ApproveCertificate)

	admin.Get("/dashboard", courseController.DashboardStats)
}
