package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersRequiresAdmin(t *testing.T) {
	s := newTestServer(t)

	// Anonymous hits the authentication gate.
	w := do(t, s, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A regular user passes authentication but fails authorization.
	c := register(t, s, "alice", "alice@example.com", "secret12")
	w = do(t, s, http.MethodGet, "/api/users", nil, c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied for role: user", decode(t, w)["message"])
}

func TestListUsersAsAdmin(t *testing.T) {
	s := newTestServer(t)
	register(t, s, "alice", "alice@example.com", "secret12")
	admin := adminCookie(t, s)

	w := do(t, s, http.MethodGet, "/api/users", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	users, ok := body["users"].([]any)
	require.True(t, ok)
	assert.Len(t, users, 2)
	assert.NotContains(t, w.Body.String(), "password", "projections only")
}

func TestDeactivateAndActivateUser(t *testing.T) {
	s := newTestServer(t)
	register(t, s, "alice", "alice@example.com", "secret12")
	admin := adminCookie(t, s)

	w := do(t, s, http.MethodPost, "/api/users/1/deactivate", nil, admin)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	// A deactivated user may not obtain a new session.
	login := do(t, s, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "alice",
		"password": "secret12",
	})
	assert.Equal(t, http.StatusForbidden, login.Code)
	assert.Equal(t, "User account is deactivated", decode(t, login)["message"])

	w = do(t, s, http.MethodPost, "/api/users/1/activate", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	loginAs(t, s, "alice", "secret12")
}

func TestDeleteUser(t *testing.T) {
	s := newTestServer(t)
	c := register(t, s, "alice", "alice@example.com", "secret12")
	admin := adminCookie(t, s)

	w := do(t, s, http.MethodDelete, "/api/users/1", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	// The deleted user's still-valid token now resolves to nothing.
	w = do(t, s, http.MethodGet, "/api/auth/me", nil, c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodDelete, "/api/users/1", nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["message"])
}
