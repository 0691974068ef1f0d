package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arnold/activities-api/internal/config"
	"github.com/arnold/activities-api/internal/database"
	"github.com/arnold/activities-api/internal/middleware"
	"github.com/arnold/activities-api/internal/models"
	"github.com/arnold/activities-api/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t   *testing.T
	app *fiber.App
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Environment:       config.EnvironmentLocal,
		DatabaseURL:       fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:         "test-secret",
		AccessTokenExpire: time.Hour,
		APIPrefix:         "/api/v1",
		LogLevel:          "error",
	}
	require.NoError(t, database.Connect(cfg))
	require.NoError(t, database.Migrate())
	t.Cleanup(func() { _ = database.Close() })

	return &testEnv{t: t, app: routes.NewApp(cfg, database.DB), cfg: cfg}
}

func (e *testEnv) createUser(email string, superuser bool) *models.User {
	e.t.Helper()

	user := models.User{Email: email, IsActive: true, IsSuperuser: superuser}
	require.NoError(e.t, user.SetPassword("password123"))
	require.NoError(e.t, database.DB.Create(&user).Error)
	return &user
}

func (e *testEnv) token(user *models.User) string {
	e.t.Helper()

	token, err := middleware.GenerateToken(e.cfg.JWTSecret, user.ID, e.cfg.AccessTokenExpire)
	require.NoError(e.t, err)
	return token
}

func (e *testEnv) seedActivity(owner *models.User, title string) models.Activity {
	e.t.Helper()

	activity := models.Activity{OwnerID: owner.ID, Title: title}
	require.NoError(e.t, database.DB.Create(&activity).Error)
	return activity
}

// do sends a JSON request as user (nil for anonymous) and returns status and body.
func (e *testEnv) do(method, path string, user *models.User, body interface{}) (int, []byte) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, e.cfg.APIPrefix+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(user))
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func detail(t *testing.T, raw []byte) string {
	t.Helper()
	return decode[map[string]string](t, raw)["detail"]
}

func decodeBody(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}
