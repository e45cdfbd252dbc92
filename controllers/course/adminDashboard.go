package courseController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	"elearn/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// ApproveCertificate issues the certificate for a pending request.
// Re-approving an issued request returns the existing certificate.
func ApproveCertificate(c *fiber.Ctx) error {
	admin := requireAdmin(c)
	if admin == nil {
		return nil
	}

	requestID := uint(c.Locals("requestID").(int))

	request, certificate, err := engine().ApproveCertificate(requestID, admin.ID)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	go func() {
		if certificate.CertificateNumber == "" {
			return
		}
		user, err := fetchUser(request.UserID)
		if err != nil {
			log.Printf("Error fetching user %d for certificate email: %v", request.UserID, err)
			return
		}
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", request.CourseID).First(&course).Error; err != nil {
			log.Printf("Error fetching course %d for certificate email: %v", request.CourseID, err)
			return
		}
		utils.SendCertificateEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber)
	}()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued.", fiber.Map{
		"request":     request,
		"certificate": certificate,
	})
}

// PendingCertificateRequests lists requests awaiting review, oldest first
func PendingCertificateRequests(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	var requests []courseModels.CertificateRequest
	if err := database.Database.Db.Where("status = ? AND is_deleted = ?", "PENDING", false).
		Order("requested_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending Certificate Requests.", requests)
}

// CourseEnrollments lists every active enrollment of one course
func CourseEnrollments(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	courseID := uint(c.Locals("courseID").(int))

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("id asc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course Enrollments.", enrollments)
}

// IssuedCertificates lists every certificate issued on the platform
func IssuedCertificates(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Issued Certificates.", certificates)
}

// CourseCompletedStudents lists the students who completed every module of a
// course
func CourseCompletedStudents(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	courseID := uint(c.Locals("courseID").(int))

	db := database.Database.Db

	var totalModules int64
	if err := db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalModules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	type completedRow struct {
		UserID         uint  `json:"user_id"`
		CompletedCount int64 `json:"completed_count"`
	}

	var rows []completedRow
	if err := db.Model(&courseModels.ModuleProgress{}).
		Select("user_id, count(*) as completed_count").
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Group("user_id").
		Having("count(*) >= ?", totalModules).
		Scan(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed Students.", fiber.Map{
		"courseId":     courseID,
		"totalModules": totalModules,
		"students":     rows,
	})
}

// StudentProgress returns one student's derived view of one course
func StudentProgress(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	courseID := uint(c.Locals("courseID").(int))
	targetUserID := uint(c.Locals("targetUserID").(int))

	eng := engine()

	enrolled, err := eng.Enrolled(targetUserID, courseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student is not enrolled in this course!", nil)
	}

	view, err := eng.View(targetUserID, courseID)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student Progress.", view)
}

// DashboardStats summarises platform activity, with today's counts using
// the local day boundary
func DashboardStats(c *fiber.Ctx) error {
	if admin := requireAdmin(c); admin == nil {
		return nil
	}

	db := database.Database.Db
	startOfDay := now.BeginningOfDay()
	endOfDay := now.EndOfDay()

	var totalStudents, totalCourses, totalEnrollments int64
	var signupsToday, enrollmentsToday, attemptsToday int64
	var pendingCertificates, issuedCertificates int64

	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "USER", false).Count(&totalStudents)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)

	db.Model(&models.User{}).Where("created_at BETWEEN ? AND ? AND is_deleted = ?", startOfDay, endOfDay, false).Count(&signupsToday)
	db.Model(&courseModels.Enrollment{}).Where("created_at BETWEEN ? AND ? AND is_deleted = ?", startOfDay, endOfDay, false).Count(&enrollmentsToday)
	db.Model(&courseModels.QuizAttempt{}).Where("completed_at BETWEEN ? AND ? AND is_deleted = ?", startOfDay, endOfDay, false).Count(&attemptsToday)

	db.Model(&courseModels.CertificateRequest{}).Where("status = ? AND is_deleted = ?", "PENDING", false).Count(&pendingCertificates)
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&issuedCertificates)

	stats := fiber.Map{
		"totals": fiber.Map{
			"students":    totalStudents,
			"courses":     totalCourses,
			"enrollments": totalEnrollments,
		},
		"today": fiber.Map{
			"date":         time.Now().Format("2006-01-02"),
			"signups":      signupsToday,
			"enrollments":  enrollmentsToday,
			"quizAttempts": attemptsToday,
		},
		"certificates": fiber.Map{
			"pending": pendingCertificates,
			"issued":  issuedCertificates,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard Stats.", stats)
}
