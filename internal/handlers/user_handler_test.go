package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorbot/backend/internal/config"
	"github.com/tutorbot/backend/internal/handlers"
	"github.com/tutorbot/backend/internal/middleware"
	"github.com/tutorbot/backend/internal/models"
	"github.com/tutorbot/backend/internal/routes"
	"github.com/tutorbot/backend/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.UserPreference{}, &models.Session{}, &models.Message{},
	))

	userHandler := handlers.NewUserHandler(services.NewUserService(db))
	sessionHandler := handlers.NewSessionHandler(services.NewSessionService(db))
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New()
	app.Use(middleware.CORS(config.Load()))
	routes.Setup(app, userHandler, sessionHandler, healthHandler)
	return app, db
}

// doJSON sends a request with an optional JSON body (a raw string is sent
// verbatim) and decodes the JSON response into a map.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &parsed))
	}
	return resp, parsed
}

func register(t *testing.T, app *fiber.App, username, email string) uint {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := body["user"].(map[string]any)
	return uint(user["id"].(float64))
}

func TestRegisterEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "User created successfully", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.NotZero(t, user["id"])
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotEmpty(t, user["created_at"])

	// The external representation never leaks credential material.
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
}

func TestRegisterEndpointValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{"empty body", map[string]string{}, "username is required"},
		{"username only", map[string]string{"username": "a"}, "email is required"},
		{"no password", map[string]string{"username": "a", "email": "a@example.com"}, "password is required"},
		{"everything missing reports username first", map[string]string{"password": "pw"}, "username is required"},
	}

	app, _ := newTestApp(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, "POST", "/api/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestRegisterEndpointConflicts(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "alice", "alice@example.com")

	resp, body := doJSON(t, app, "POST", "/api/register", map[string]string{
		"username": "alice",
		"email":    "new@example.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username already taken", body["error"])

	resp, body = doJSON(t, app, "POST", "/api/register", map[string]string{
		"username": "bob",
		"email":    "alice@example.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", body["error"])
}

func TestRegisterEndpointInvalidJSON(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/register", "not json at all")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestLoginEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	id := register(t, app, "alice", "alice@example.com")

	resp, body := doJSON(t, app, "POST", "/api/login", map[string]string{
		"login":    "alice",
		"password": "secret-pass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful", body["message"])
	assert.EqualValues(t, id, body["user"].(map[string]any)["id"].(float64))

	// The same account logs in by email.
	resp, body = doJSON(t, app, "POST", "/api/login", map[string]string{
		"login":    "alice@example.com",
		"password": "secret-pass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, id, body["user"].(map[string]any)["id"].(float64))
}

func TestLoginEndpointFailuresIndistinguishable(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "alice", "alice@example.com")

	wrongResp, wrongBody := doJSON(t, app, "POST", "/api/login", map[string]string{
		"login":    "alice",
		"password": "wrong",
	})
	unknownResp, unknownBody := doJSON(t, app, "POST", "/api/login", map[string]string{
		"login":    "nobody",
		"password": "secret-pass",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongResp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownResp.StatusCode)
	assert.Equal(t, wrongBody, unknownBody)
	assert.Equal(t, "Invalid username/email or password", wrongBody["error"])
}

func TestLoginEndpointMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/login", map[string]string{"login": "alice"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username/email and password are required", body["error"])

	resp, body = doJSON(t, app, "POST", "/api/login", map[string]string{"password": "pw"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username/email and password are required", body["error"])
}

func TestListUsersEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/users", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["users"])

	register(t, app, "alice", "alice@example.com")
	register(t, app, "bob", "bob@example.com")

	resp, body = doJSON(t, app, "GET", "/api/users", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	users, ok := body["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].(map[string]any)["username"])
	assert.NotContains(t, users[0].(map[string]any), "password_hash")
}

func TestGetPreferencesEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	id := register(t, app, "alice", "alice@example.com")

	resp, body := doJSON(t, app, "GET", userPrefsPath(id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, id, body["user_id"].(float64))
	assert.Equal(t, false, body["visual"])
	assert.Equal(t, false, body["adhd"])
	assert.Equal(t, false, body["due_dates"])
	assert.Equal(t, false, body["onboarding_complete"])
}

func TestGetPreferencesEndpointUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/user/9999/preferences", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["error"])
}

func TestGetPreferencesEndpointInvalidID(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/user/abc/preferences", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid user id", body["error"])
}

func TestSavePreferencesEndpointPartialUpdate(t *testing.T) {
	app, _ := newTestApp(t)
	id := register(t, app, "alice", "alice@example.com")

	resp, body := doJSON(t, app, "PUT", userPrefsPath(id), map[string]bool{"visual": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Preferences saved", body["message"])

	prefs := body["preferences"].(map[string]any)
	assert.Equal(t, true, prefs["visual"])
	assert.Equal(t, false, prefs["adhd"])
	assert.Equal(t, false, prefs["due_dates"])
	assert.Equal(t, false, prefs["onboarding_complete"])

	// POST works the same way, and earlier toggles survive.
	resp, body = doJSON(t, app, "POST", userPrefsPath(id), map[string]bool{"adhd": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	prefs = body["preferences"].(map[string]any)
	assert.Equal(t, true, prefs["visual"])
	assert.Equal(t, true, prefs["adhd"])

	// A subsequent read reflects the stored state.
	resp, body = doJSON(t, app, "GET", userPrefsPath(id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["visual"])
	assert.Equal(t, true, body["adhd"])
	assert.Equal(t, false, body["due_dates"])
}

func TestSavePreferencesEndpointUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "PUT", "/api/user/4242/preferences", map[string]bool{"visual": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["error"])
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["db"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func userPrefsPath(id uint) string {
	return "/api/user/" + strconv.FormatUint(uint64(id), 10) + "/preferences"
}
