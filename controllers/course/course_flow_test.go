package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"elearn/config"
	authController "elearn/controllers/auth"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	authRoutes "elearn/routers/authRoutes"
	courseRoutes "elearn/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:            "test-secret",
		SaltRound:         4,
		QuizPassMark:      70,
		VideoURLTTL:       900,
		StorageSignSecret: "test-sign-secret",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	return app
}

// seedAdmin creates an ADMIN user with permissions and returns a token
func seedAdmin(t *testing.T) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-pass-123"), 4)
	require.NoError(t, err)

	admin := models.User{
		Name:     "Site Admin",
		Email:    "admin@example.com",
		Role:     "ADMIN",
		Password: string(hashed),
	}
	require.NoError(t, database.Database.Db.Create(&admin).Error)
	require.NoError(t, authController.SeedPermissions(database.Database.Db, admin.Role, admin.ID))

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		// Data may be an array or object; swallow decode errors for arrays
		json.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env
}

func idOf(t *testing.T, env envelope) uint {
	t.Helper()
	raw, ok := env.Data["ID"]
	require.True(t, ok, "response data has no ID: %+v", env)
	return uint(raw.(float64))
}

func TestCourseLifecycleFlow(t *testing.T) {
	app := setupTestApp(t)
	adminToken := seedAdmin(t)

	// Student signs up and logs in
	code, _ := doJSON(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name":     "Student One",
		"email":    "student@example.com",
		"password": "student-pass-123",
	})
	require.Equal(t, fiber.StatusCreated, code)

	code, loginEnv := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "student@example.com",
		"password": "student-pass-123",
	})
	require.Equal(t, fiber.StatusOK, code)
	studentToken := loginEnv.Data["token"].(string)
	require.NotEmpty(t, studentToken)

	// Admin builds and publishes a course with two modules and a quiz
	code, courseEnv := doJSON(t, app, "POST", "/admin/course", adminToken, fiber.Map{
		"title":  "Intro to Networking",
		"author": "Jane Doe",
	})
	require.Equal(t, fiber.StatusCreated, code)
	courseID := idOf(t, courseEnv)

	code, _ = doJSON(t, app, "PATCH", fmt.Sprintf("/admin/course/%d", courseID), adminToken, fiber.Map{
		"status": "ACTIVE",
	})
	require.Equal(t, fiber.StatusOK, code)

	var moduleIDs []uint
	for i := 1; i <= 2; i++ {
		code, moduleEnv := doJSON(t, app, "POST", fmt.Sprintf("/admin/course/%d/module", courseID), adminToken, fiber.Map{
			"title":      fmt.Sprintf("Module %d", i),
			"videoKey":   fmt.Sprintf("videos/mod-%d.mp4", i),
			"orderIndex": i,
		})
		require.Equal(t, fiber.StatusCreated, code)
		moduleIDs = append(moduleIDs, idOf(t, moduleEnv))
	}

	// Duplicate order index is refused
	code, _ = doJSON(t, app, "POST", fmt.Sprintf("/admin/course/%d/module", courseID), adminToken, fiber.Map{
		"title":      "Module dup",
		"videoKey":   "videos/dup.mp4",
		"orderIndex": 1,
	})
	assert.Equal(t, fiber.StatusConflict, code)

	for i := 0; i < 2; i++ {
		code, _ = doJSON(t, app, "POST", fmt.Sprintf("/admin/course/%d/question", courseID), adminToken, fiber.Map{
			"text":         fmt.Sprintf("Question %d", i+1),
			"options":      []string{"a", "b", "c"},
			"correctIndex": 0,
		})
		require.Equal(t, fiber.StatusCreated, code)
	}

	// Student sees the course and enrolls
	code, _ = doJSON(t, app, "GET", "/course/list?page=1&limit=10", studentToken, nil)
	require.Equal(t, fiber.StatusOK, code)

	code, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusCreated, code)

	code, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), studentToken, nil)
	assert.Equal(t, fiber.StatusConflict, code)

	// Second module is locked: no video, no quiz yet
	code, _ = doJSON(t, app, "GET", fmt.Sprintf("/course/module/%d/video", moduleIDs[1]), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = doJSON(t, app, "GET", fmt.Sprintf("/course/%d/quiz", courseID), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	// First module is watchable
	code, videoEnv := doJSON(t, app, "GET", fmt.Sprintf("/course/module/%d/video", moduleIDs[0]), studentToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.NotEmpty(t, videoEnv.Data["videoUrl"])

	// Complete both modules in order
	code, progressEnv := doJSON(t, app, "POST", fmt.Sprintf("/course/module/%d/complete", moduleIDs[0]), studentToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, false, progressEnv.Data["quiz_unlocked"])

	code, progressEnv = doJSON(t, app, "POST", fmt.Sprintf("/course/module/%d/complete", moduleIDs[1]), studentToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, true, progressEnv.Data["quiz_unlocked"])

	// Certificate before passing is refused
	code, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/certificate/request", courseID), studentToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)

	// Fail once, then pass
	code, quizEnv := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/quiz/submit", courseID), studentToken, fiber.Map{
		"answers": []int{1, 1},
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, false, quizEnv.Data["passed"])

	code, quizEnv = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/quiz/submit", courseID), studentToken, fiber.Map{
		"answers": []int{0, 0},
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, true, quizEnv.Data["passed"])
	assert.Equal(t, float64(100), quizEnv.Data["score"])

	// Request and approve the certificate
	code, requestEnv := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/certificate/request", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusCreated, code)
	requestID := idOf(t, requestEnv)

	code, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/certificate/request", courseID), studentToken, nil)
	assert.Equal(t, fiber.StatusConflict, code)

	// Student cannot approve
	code, _ = doJSON(t, app, "POST", fmt.Sprintf("/admin/certificate-requests/%d/approve", requestID), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, approveEnv := doJSON(t, app, "POST", fmt.Sprintf("/admin/certificate-requests/%d/approve", requestID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	certificate := approveEnv.Data["certificate"].(map[string]interface{})
	assert.Contains(t, certificate["certificate_number"], "CERT-")

	// Final state: certificate issued
	code, viewEnv := doJSON(t, app, "GET", fmt.Sprintf("/course/%d/progress", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "issued", viewEnv.Data["certificate_state"])
}

func TestStudentCannotUseAdminRoutes(t *testing.T) {
	app := setupTestApp(t)
	seedAdmin(t)

	code, _ := doJSON(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name":     "Student Two",
		"email":    "student2@example.com",
		"password": "student-pass-123",
	})
	require.Equal(t, fiber.StatusCreated, code)

	code, loginEnv := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "student2@example.com",
		"password": "student-pass-123",
	})
	require.Equal(t, fiber.StatusOK, code)
	studentToken := loginEnv.Data["token"].(string)

	code, _ = doJSON(t, app, "POST", "/admin/course", studentToken, fiber.Map{
		"title":  "Not allowed",
		"author": "Student",
	})
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = doJSON(t, app, "GET", "/admin/dashboard", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestProgressRequiresEnrollment(t *testing.T) {
	app := setupTestApp(t)
	adminToken := seedAdmin(t)

	code, courseEnv := doJSON(t, app, "POST", "/admin/course", adminToken, fiber.Map{
		"title":  "Locked Course",
		"author": "Jane Doe",
	})
	require.Equal(t, fiber.StatusCreated, code)
	courseID := idOf(t, courseEnv)

	code, _ = doJSON(t, app, "PATCH", fmt.Sprintf("/admin/course/%d", courseID), adminToken, fiber.Map{
		"status": "ACTIVE",
	})
	require.Equal(t, fiber.StatusOK, code)

	code, _ = doJSON(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name":     "Student Three",
		"email":    "student3@example.com",
		"password": "student-pass-123",
	})
	require.Equal(t, fiber.StatusCreated, code)

	code, loginEnv := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "student3@example.com",
		"password": "student-pass-123",
	})
	require.Equal(t, fiber.StatusOK, code)
	studentToken := loginEnv.Data["token"].(string)

	code, _ = doJSON(t, app, "GET", fmt.Sprintf("/course/%d/progress", courseID), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
}
