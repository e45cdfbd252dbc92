package progress_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"elearn/database"
	courseModels "elearn/models/course"
	"elearn/progress"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	return db
}

func newTestEngine(t *testing.T) (*progress.Engine, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return progress.NewEngine(db, 70), db
}

func seedCourse(t *testing.T, db *gorm.DB, moduleCount int) (courseModels.Course, []courseModels.Module) {
	t.Helper()

	course := courseModels.Course{
		Title:       "Go From Scratch",
		Author:      "Jane Doe",
		Status:      "ACTIVE",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	modules := make([]courseModels.Module, 0, moduleCount)
	for i := 1; i <= moduleCount; i++ {
		module := courseModels.Module{
			CourseID:   course.ID,
			Title:      fmt.Sprintf("Module %d", i),
			VideoKey:   fmt.Sprintf("courses/%d/module-%d.mp4", course.ID, i),
			OrderIndex: i,
		}
		require.NoError(t, db.Create(&module).Error)
		modules = append(modules, module)
	}

	return course, modules
}

// seedQuestions creates questions with four options each, correct answer
// always option 1
func seedQuestions(t *testing.T, db *gorm.DB, courseID uint, count int) {
	t.Helper()

	options, err := json.Marshal([]string{"a", "b", "c", "d"})
	require.NoError(t, err)

	for i := 1; i <= count; i++ {
		question := courseModels.QuizQuestion{
			CourseID:     courseID,
			Text:         fmt.Sprintf("Question %d", i),
			Options:      options,
			CorrectIndex: 1,
		}
		require.NoError(t, db.Create(&question).Error)
	}
}

// answersWith builds a submission with the first correct answers right and
// the rest wrong
func answersWith(correct, total int) []int {
	answers := make([]int, total)
	for i := 0; i < total; i++ {
		if i < correct {
			answers[i] = 1
		}
	}
	return answers
}

func completeAll(t *testing.T, eng *progress.Engine, userID uint, modules []courseModels.Module) {
	t.Helper()
	for _, m := range modules {
		_, err := eng.CompleteModule(userID, m.ID)
		require.NoError(t, err)
	}
}

func TestEnrollAndDuplicate(t *testing.T) {
	eng, db := newTestEngine(t)
	course, _ := seedCourse(t, db, 3)

	enrollment, err := eng.Enroll(7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), enrollment.UserID)
	assert.Equal(t, course.ID, enrollment.CourseID)

	_, err = eng.Enroll(7, course.ID)
	assert.ErrorIs(t, err, progress.ErrAlreadyEnrolled)

	enrolled, err := eng.Enrolled(7, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	enrolled, err = eng.Enrolled(8, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestViewInitialState(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 3)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)

	view, err := eng.View(1, course.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, view.TotalModules)
	assert.Equal(t, 0, view.CompletedCount)

	assert.Equal(t, progress.ModuleUnlocked, view.Modules[0].Status)
	assert.True(t, view.Modules[0].IsNext)
	assert.Equal(t, progress.ModuleLocked, view.Modules[1].Status)
	assert.Equal(t, progress.ModuleLocked, view.Modules[2].Status)

	require.NotNil(t, view.NextModuleID)
	assert.Equal(t, modules[0].ID, *view.NextModuleID)

	assert.False(t, view.QuizUnlocked)
	assert.False(t, view.QuizPassed)
	assert.Nil(t, view.LatestAttempt)
	assert.Equal(t, progress.CertificateNotEligible, view.CertificateState)
}

func TestSequentialUnlocking(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 3)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)

	view, err := eng.CompleteModule(1, modules[0].ID)
	require.NoError(t, err)

	assert.Equal(t, 1, view.CompletedCount)
	assert.Equal(t, progress.ModuleCompleted, view.Modules[0].Status)
	assert.Equal(t, progress.ModuleUnlocked, view.Modules[1].Status)
	assert.True(t, view.Modules[1].IsNext)
	assert.Equal(t, progress.ModuleLocked, view.Modules[2].Status)
	assert.False(t, view.QuizUnlocked)

	view, err = eng.CompleteModule(1, modules[1].ID)
	require.NoError(t, err)
	assert.Equal(t, progress.ModuleUnlocked, view.Modules[2].Status)

	view, err = eng.CompleteModule(1, modules[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.CompletedCount)
	assert.Nil(t, view.NextModuleID)
	assert.True(t, view.QuizUnlocked)
}

func TestCompleteModuleIdempotent(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 2)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)

	_, err = eng.CompleteModule(1, modules[0].ID)
	require.NoError(t, err)

	view, err := eng.CompleteModule(1, modules[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.CompletedCount)

	var rows int64
	require.NoError(t, db.Model(&courseModels.ModuleProgress{}).
		Where("user_id = ? AND module_id = ?", 1, modules[0].ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestCompleteModuleErrors(t *testing.T) {
	eng, db := newTestEngine(t)
	_, modules := seedCourse(t, db, 1)

	_, err := eng.CompleteModule(1, 9999)
	assert.ErrorIs(t, err, progress.ErrModuleNotFound)

	_, err = eng.CompleteModule(1, modules[0].ID)
	assert.ErrorIs(t, err, progress.ErrNotEnrolled)
}

func TestQuizLockedUntilAllModulesComplete(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 2)
	seedQuestions(t, db, course.ID, 5)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)

	_, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(5, 5))
	assert.ErrorIs(t, err, progress.ErrQuizLocked)

	_, err = eng.CompleteModule(1, modules[0].ID)
	require.NoError(t, err)

	_, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(5, 5))
	assert.ErrorIs(t, err, progress.ErrQuizLocked)

	_, err = eng.CompleteModule(1, modules[1].ID)
	require.NoError(t, err)

	result, err := eng.SubmitQuizAttempt(1, course.ID, answersWith(5, 5))
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestQuizUnlockedWithZeroModules(t *testing.T) {
	eng, db := newTestEngine(t)
	course, _ := seedCourse(t, db, 0)
	seedQuestions(t, db, course.ID, 4)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)

	view, err := eng.View(1, course.ID)
	require.NoError(t, err)
	assert.True(t, view.QuizUnlocked)

	result, err := eng.SubmitQuizAttempt(1, course.ID, answersWith(4, 4))
	require.NoError(t, err)
	assert.Equal(t, float64(100), result.Score)
}

func TestQuizEmpty(t *testing.T) {
	eng, db := newTestEngine(t)
	course, _ := seedCourse(t, db, 0)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)

	_, err = eng.SubmitQuizAttempt(1, course.ID, []int{})
	assert.ErrorIs(t, err, progress.ErrQuizEmpty)
}

func TestQuizNotEnrolled(t *testing.T) {
	eng, db := newTestEngine(t)
	course, _ := seedCourse(t, db, 0)
	seedQuestions(t, db, course.ID, 2)

	_, err := eng.SubmitQuizAttempt(1, course.ID, []int{1, 1})
	assert.ErrorIs(t, err, progress.ErrNotEnrolled)
}

func TestQuizScoringBoundary(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 1)
	seedQuestions(t, db, course.ID, 10)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)
	completeAll(t, eng, 1, modules)

	// 6/10 fails
	result, err := eng.SubmitQuizAttempt(1, course.ID, answersWith(6, 10))
	require.NoError(t, err)
	assert.Equal(t, float64(60), result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.AttemptNumber)

	// exactly 70 passes
	result, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(7, 10))
	require.NoError(t, err)
	assert.Equal(t, float64(70), result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 2, result.AttemptNumber)
}

func TestQuizShortAndLongAnswerSlices(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 1)
	seedQuestions(t, db, course.ID, 4)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)
	completeAll(t, eng, 1, modules)

	// Missing answers count as wrong
	result, err := eng.SubmitQuizAttempt(1, course.ID, []int{1, 1})
	require.NoError(t, err)
	assert.Equal(t, float64(50), result.Score)

	// Extra answers are ignored
	result, err = eng.SubmitQuizAttempt(1, course.ID, []int{1, 1, 1, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, float64(100), result.Score)
}

func TestProgressSurvivesQuizFailure(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 2)
	seedQuestions(t, db, course.ID, 2)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)
	completeAll(t, eng, 1, modules)

	_, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(0, 2))
	require.NoError(t, err)

	view, err := eng.View(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.CompletedCount)
	assert.True(t, view.QuizUnlocked)
	assert.False(t, view.QuizPassed)
}

func TestCertificateGatedOnLatestAttempt(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 1)
	seedQuestions(t, db, course.ID, 2)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)
	completeAll(t, eng, 1, modules)

	// No attempt yet
	_, err = eng.RequestCertificate(1, course.ID)
	assert.ErrorIs(t, err, progress.ErrQuizNotPassed)

	// Pass, then fail: the latest attempt decides
	_, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(2, 2))
	require.NoError(t, err)
	_, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(0, 2))
	require.NoError(t, err)

	_, err = eng.RequestCertificate(1, course.ID)
	assert.ErrorIs(t, err, progress.ErrQuizNotPassed)

	// Pass again, now eligible
	_, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(2, 2))
	require.NoError(t, err)

	request, err := eng.RequestCertificate(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", request.Status)
}

func TestCertificateDuplicateRequest(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 1)
	seedQuestions(t, db, course.ID, 1)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)
	completeAll(t, eng, 1, modules)

	_, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(1, 1))
	require.NoError(t, err)

	_, err = eng.RequestCertificate(1, course.ID)
	require.NoError(t, err)

	_, err = eng.RequestCertificate(1, course.ID)
	assert.ErrorIs(t, err, progress.ErrDuplicateRequest)
}

func TestCertificateNotEnrolled(t *testing.T) {
	eng, db := newTestEngine(t)
	course, _ := seedCourse(t, db, 0)

	_, err := eng.RequestCertificate(1, course.ID)
	assert.ErrorIs(t, err, progress.ErrNotEnrolled)
}

func TestApproveCertificate(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 1)
	seedQuestions(t, db, course.ID, 1)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)
	completeAll(t, eng, 1, modules)

	_, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(1, 1))
	require.NoError(t, err)

	request, err := eng.RequestCertificate(1, course.ID)
	require.NoError(t, err)

	approved, certificate, err := eng.ApproveCertificate(request.ID, 42)
	require.NoError(t, err)

	assert.Equal(t, "ISSUED", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, uint(42), *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)
	assert.Contains(t, certificate.CertificateNumber, fmt.Sprintf("CERT-%d-%d-", course.ID, 1))

	// Re-approving is a no-op returning the existing certificate
	again, sameCert, err := eng.ApproveCertificate(request.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, "ISSUED", again.Status)
	assert.Equal(t, uint(42), *again.ApprovedBy)
	assert.Equal(t, certificate.CertificateNumber, sameCert.CertificateNumber)

	var certRows int64
	require.NoError(t, db.Model(&courseModels.Certificate{}).
		Where("user_id = ? AND course_id = ?", 1, course.ID).Count(&certRows).Error)
	assert.Equal(t, int64(1), certRows)
}

func TestApproveCertificateNotFound(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, _, err := eng.ApproveCertificate(12345, 1)
	assert.ErrorIs(t, err, progress.ErrRequestNotFound)
}

func TestCertificateStates(t *testing.T) {
	eng, db := newTestEngine(t)
	course, modules := seedCourse(t, db, 1)
	seedQuestions(t, db, course.ID, 1)

	_, err := eng.Enroll(1, course.ID)
	require.NoError(t, err)

	view, err := eng.View(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.CertificateNotEligible, view.CertificateState)

	completeAll(t, eng, 1, modules)
	_, err = eng.SubmitQuizAttempt(1, course.ID, answersWith(1, 1))
	require.NoError(t, err)

	view, err = eng.View(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.CertificateEligible, view.CertificateState)

	request, err := eng.RequestCertificate(1, course.ID)
	require.NoError(t, err)

	view, err = eng.View(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.CertificatePending, view.CertificateState)

	_, _, err = eng.ApproveCertificate(request.ID, 42)
	require.NoError(t, err)

	view, err = eng.View(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.CertificateIssued, view.CertificateState)
}
