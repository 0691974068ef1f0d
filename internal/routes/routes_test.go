package routes

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arnold/activities-api/internal/config"
	"github.com/arnold/activities-api/internal/database"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, environment string) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		Environment:       environment,
		DatabaseURL:       fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:         "test-secret",
		AccessTokenExpire: time.Hour,
		APIPrefix:         "/api/v1",
		LogLevel:          "error",
	}
	require.NoError(t, database.Connect(cfg))
	require.NoError(t, database.Migrate())
	t.Cleanup(func() { _ = database.Close() })

	return NewApp(cfg, database.DB)
}

func postPrivateUser(t *testing.T, app *fiber.App) int {
	t.Helper()

	body := `{"email":"dev@example.com","password":"password123"}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/private/users/", strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestPrivateRouterOnlyInLocal(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, postPrivateUser(t, newApp(t, config.EnvironmentLocal)))
	})
	t.Run("production", func(t *testing.T) {
		assert.Equal(t, fiber.StatusNotFound, postPrivateUser(t, newApp(t, config.EnvironmentProduction)))
	})
}

func TestUnknownRouteRendersDetail(t *testing.T) {
	app := newApp(t, config.EnvironmentProduction)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"detail"`)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t, config.EnvironmentLocal)

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/tasks", nil), -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "activities_api_http_requests_total")
}
