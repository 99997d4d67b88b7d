package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer wires a full server against an in-memory database, without
// Redis. The returned Fiber app serves the real route table.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	cfg := &config.Config{
		JWTSecret: "test-secret-not-for-production",
		Port:      "8081",
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return srv, app
}

func jsonReq(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()
	if payload == nil {
		return httptest.NewRequest(method, path, nil)
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any, out any) int {
	t.Helper()
	res, err := app.Test(jsonReq(t, method, path, payload), -1)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

// signupUser registers an account through the API and returns its decoded user.
func signupUser(t *testing.T, app *fiber.App, name string) models.User {
	t.Helper()

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	status := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "TestPass123!",
	}, &resp)
	require.Equal(t, http.StatusCreated, status)
	require.NotZero(t, resp.User.ID)
	require.NotEmpty(t, resp.Token)
	return resp.User
}

// containsEvent reports whether a raw websocket frame carries the given
// event name in its envelope.
func containsEvent(raw, event string) bool {
	var envelope struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return false
	}
	return envelope.Event == event
}

// createUserDirect inserts a user without going through the API, for cases
// where a known bcrypt hash matters.
func createUserDirect(t *testing.T, srv *Server, name, password string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{Name: name, Email: name + "@example.com", Password: string(hashed)}
	require.NoError(t, srv.db.Create(user).Error)
	return user
}
