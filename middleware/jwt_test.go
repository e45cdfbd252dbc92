package middleware_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"elearn/config"
	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := fiber.New()
	app.Get("/me", middleware.JWTMiddleware, func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
		})
	})
	return app
}

func TestJWTRoundTrip(t *testing.T) {
	app := setupApp()

	token, err := middleware.GenerateJWT(42, "Jane Doe", "USER", "jane@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			UserID float64 `json:"userId"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(42), body.Data.UserID)
}

func TestJWTMissingHeader(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTBadFormat(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTWrongKey(t *testing.T) {
	app := setupApp()

	// Token signed with a different key
	config.AppConfig.JWTKey = "other-secret"
	token, err := middleware.GenerateJWT(42, "Jane Doe", "USER", "jane@example.com")
	require.NoError(t, err)
	config.AppConfig.JWTKey = "test-secret"

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
