package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	courseModels "elearn/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Engine computes the sequential course-progress state for a (user, course)
// pair and applies the state-transition writes. It is stateless; every call
// reads and writes through the database handle it was built with.
type Engine struct {
	db       *gorm.DB
	passMark float64
}

// NewEngine builds an engine. passMark is the minimum quiz score (0-100)
// counted as a pass; a score exactly equal to it passes.
func NewEngine(db *gorm.DB, passMark float64) *Engine {
	return &Engine{db: db, passMark: passMark}
}

// Enrolled reports whether the user has an active enrollment for the course
func (e *Engine) Enrolled(userID, courseID uint) (bool, error) {
	var enrollment courseModels.Enrollment
	err := e.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, unavailable(err)
	}
	return true, nil
}

// Enroll creates the enrollment for (user, course). The duplicate check is
// check-then-insert; the race window between the two is accepted.
func (e *Engine) Enroll(userID, courseID uint) (*courseModels.Enrollment, error) {
	enrolled, err := e.Enrolled(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}
	if err := e.db.Create(&enrollment).Error; err != nil {
		return nil, unavailable(err)
	}
	return &enrollment, nil
}

// View derives the current course view for the user. Missing rows (no
// attempt yet, no certificate request) are absent values, never errors.
func (e *Engine) View(userID, courseID uint) (*CourseView, error) {
	modules, err := e.loadModules(courseID)
	if err != nil {
		return nil, err
	}

	completed, err := e.loadCompletedSet(userID, courseID)
	if err != nil {
		return nil, err
	}

	latest, err := e.latestAttempt(userID, courseID)
	if err != nil {
		return nil, err
	}

	request, err := e.certificateRequest(userID, courseID)
	if err != nil {
		return nil, err
	}

	return buildView(courseID, modules, completed, latest, request), nil
}

// CompleteModule records the one-time completion of a module. Completing an
// already-completed module is a no-op returning the current view. The
// returned view carries the newly unlocked next module, or QuizUnlocked when
// this was the last one.
func (e *Engine) CompleteModule(userID, moduleID uint) (*CourseView, error) {
	var module courseModels.Module
	err := e.db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModuleNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}

	enrolled, err := e.Enrolled(userID, module.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	var existing courseModels.ModuleProgress
	err = e.db.Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, moduleID, false).First(&existing).Error
	if err == nil {
		// Idempotent: no duplicate row, no error
		return e.View(userID, module.CourseID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, unavailable(err)
	}

	completion := courseModels.ModuleProgress{
		UserID:      userID,
		CourseID:    module.CourseID,
		ModuleID:    moduleID,
		CompletedAt: time.Now(),
	}
	if err := e.db.Create(&completion).Error; err != nil {
		return nil, unavailable(err)
	}

	return e.View(userID, module.CourseID)
}

// SubmitQuizAttempt scores the answers against the course's quiz and records
// a new attempt. answers[i] is the selected option index for the i-th
// question in question order; missing entries count as wrong, extra entries
// are ignored. Prior attempts are never overwritten.
func (e *Engine) SubmitQuizAttempt(userID, courseID uint, answers []int) (*QuizResult, error) {
	enrolled, err := e.Enrolled(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	view, err := e.View(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !view.QuizUnlocked {
		return nil, ErrQuizLocked
	}

	var questions []courseModels.QuizQuestion
	if err := e.db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("id asc").Find(&questions).Error; err != nil {
		return nil, unavailable(err)
	}
	if len(questions) == 0 {
		return nil, ErrQuizEmpty
	}

	correctCount := 0
	for i, question := range questions {
		if i < len(answers) && answers[i] == question.CorrectIndex {
			correctCount++
		}
	}

	score := float64(correctCount) / float64(len(questions)) * 100
	passed := score >= e.passMark

	var attemptCount int64
	if err := e.db.Model(&courseModels.QuizAttempt{}).Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Count(&attemptCount).Error; err != nil {
		return nil, unavailable(err)
	}

	answersJSON, _ := json.Marshal(answers)

	attempt := courseModels.QuizAttempt{
		UserID:        userID,
		CourseID:      courseID,
		Answers:       answersJSON,
		Score:         score,
		Passed:        passed,
		AttemptNumber: int(attemptCount) + 1,
		CompletedAt:   time.Now(),
	}
	if err := e.db.Create(&attempt).Error; err != nil {
		return nil, unavailable(err)
	}

	return &QuizResult{Score: score, Passed: passed, AttemptNumber: attempt.AttemptNumber}, nil
}

// RequestCertificate inserts a PENDING certificate request. The latest
// attempt must be a pass; any existing request, pending or issued, blocks a
// new one. The existence check is best-effort (no unique constraint).
func (e *Engine) RequestCertificate(userID, courseID uint) (*courseModels.CertificateRequest, error) {
	var enrollment courseModels.Enrollment
	err := e.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, unavailable(err)
	}

	latest, err := e.latestAttempt(userID, courseID)
	if err != nil {
		return nil, err
	}
	if latest == nil || !latest.Passed {
		return nil, ErrQuizNotPassed
	}

	existing, err := e.certificateRequest(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}

	request := courseModels.CertificateRequest{
		UserID:       userID,
		CourseID:     courseID,
		EnrollmentID: enrollment.ID,
		Status:       "PENDING",
		RequestedAt:  time.Now(),
	}
	if err := e.db.Create(&request).Error; err != nil {
		return nil, unavailable(err)
	}
	return &request, nil
}

// ApproveCertificate transitions a request PENDING -> ISSUED and creates the
// certificate row. Approving an already-issued request is a no-op success
// returning the existing certificate. No other transition exists.
func (e *Engine) ApproveCertificate(requestID, adminID uint) (*courseModels.CertificateRequest, *courseModels.Certificate, error) {
	var request courseModels.CertificateRequest
	err := e.db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, nil, unavailable(err)
	}

	if request.Status == "ISSUED" {
		var certificate courseModels.Certificate
		err := e.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", request.UserID, request.CourseID, false).First(&certificate).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, unavailable(err)
		}
		return &request, &certificate, nil
	}

	now := time.Now()
	request.Status = "ISSUED"
	request.ApprovedAt = &now
	request.ApprovedBy = &adminID

	certNumber := fmt.Sprintf("CERT-%d-%d-%s", request.CourseID, request.UserID, uuid.NewString()[:8])
	certificate := courseModels.Certificate{
		UserID:            request.UserID,
		CourseID:          request.CourseID,
		CertificateNumber: certNumber,
		IssuedAt:          now,
	}

	tx := e.db.Begin()
	if err := tx.Save(&request).Error; err != nil {
		tx.Rollback()
		return nil, nil, unavailable(err)
	}
	if err := tx.Create(&certificate).Error; err != nil {
		tx.Rollback()
		return nil, nil, unavailable(err)
	}
	tx.Commit()

	return &request, &certificate, nil
}

func (e *Engine) loadModules(courseID uint) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	// Ties on order_index are not expected; module id keeps the order deterministic
	err := e.db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").Find(&modules).Error
	if err != nil {
		return nil, unavailable(err)
	}
	return modules, nil
}

func (e *Engine) loadCompletedSet(userID, courseID uint) (map[uint]bool, error) {
	var completions []courseModels.ModuleProgress
	err := e.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Find(&completions).Error
	if err != nil {
		return nil, unavailable(err)
	}
	completed := make(map[uint]bool, len(completions))
	for _, completion := range completions {
		completed[completion.ModuleID] = true
	}
	return completed, nil
}

func (e *Engine) latestAttempt(userID, courseID uint) (*courseModels.QuizAttempt, error) {
	var attempt courseModels.QuizAttempt
	err := e.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Order("completed_at desc, id desc").First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return &attempt, nil
}

func (e *Engine) certificateRequest(userID, courseID uint) (*courseModels.CertificateRequest, error) {
	var request courseModels.CertificateRequest
	err := e.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return &request, nil
}
