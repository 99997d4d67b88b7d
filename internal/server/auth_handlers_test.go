package server

import (
	"net/http"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	srv, app := setupTestServer(t)

	t.Run("Success", func(t *testing.T) {
		var resp struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		status := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
			"name":     "alice",
			"email":    "alice@example.com",
			"password": "TestPass123!",
		}, &resp)

		assert.Equal(t, http.StatusCreated, status)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.User.Name)
		// The password hash must never leak into the response.
		assert.Empty(t, resp.User.Password)
	})

	t.Run("DuplicateEmailIs400", func(t *testing.T) {
		status := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
			"name":     "alice again",
			"email":    "alice@example.com",
			"password": "AnotherPass456!",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, status)

		// The losing signup must not have created an account.
		var count int64
		srv.db.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("MissingFields", func(t *testing.T) {
		status := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
			"email": "incomplete@example.com",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestLogin(t *testing.T) {
	srv, app := setupTestServer(t)
	createUserDirect(t, srv, "bob", "CorrectHorse9!")

	t.Run("Success", func(t *testing.T) {
		var resp struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		status := doJSON(t, app, http.MethodPost, "/login", map[string]string{
			"email":    "bob@example.com",
			"password": "CorrectHorse9!",
		}, &resp)

		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "bob", resp.User.Name)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		status := doJSON(t, app, http.MethodPost, "/login", map[string]string{
			"email":    "bob@example.com",
			"password": "wrong",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("UnknownEmailLooksIdentical", func(t *testing.T) {
		var body map[string]any
		status := doJSON(t, app, http.MethodPost, "/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "whatever",
		}, &body)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestResetPasswordFlow(t *testing.T) {
	srv, app := setupTestServer(t)
	createUserDirect(t, srv, "carol", "OldPass111!")

	t.Run("LookupByEmail", func(t *testing.T) {
		var user models.User
		status := doJSON(t, app, http.MethodGet, "/user/carol@example.com", nil, &user)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "carol", user.Name)
	})

	t.Run("LookupUnknownEmail", func(t *testing.T) {
		status := doJSON(t, app, http.MethodGet, "/user/ghost@example.com", nil, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("ResetThenLogin", func(t *testing.T) {
		status := doJSON(t, app, http.MethodPatch, "/reset-password", map[string]string{
			"email":       "carol@example.com",
			"newPassword": "NewPass222!",
		}, nil)
		require.Equal(t, http.StatusOK, status)

		status = doJSON(t, app, http.MethodPost, "/login", map[string]string{
			"email":    "carol@example.com",
			"password": "NewPass222!",
		}, nil)
		assert.Equal(t, http.StatusOK, status)

		status = doJSON(t, app, http.MethodPost, "/login", map[string]string{
			"email":    "carol@example.com",
			"password": "OldPass111!",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
