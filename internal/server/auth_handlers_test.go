package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	_, app := setupTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"email":    "new@example.com",
				"password": testPassword,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"email":    "new@example.com",
				"password": testPassword,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"email":    "weak@example.com",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Email",
			body: map[string]string{
				"email":    "not-an-email",
				"password": testPassword,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Fields",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/users/signup", tt.body, "")
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSignupReturnsTokenAndUser(t *testing.T) {
	_, app := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/users/signup", map[string]string{
		"email":      "alice@example.com",
		"password":   testPassword,
		"pseudonym":  "alice",
		"first_name": "Alice",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "alice", user["pseudonym"])
	// Password hash must never leak
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
}

func TestLogin(t *testing.T) {
	_, app := setupTestServer(t)
	signupTestUser(t, app, "bob@example.com")

	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{"Success", "bob@example.com", testPassword, http.StatusOK},
		{"Wrong Password", "bob@example.com", "WrongPass123!", http.StatusUnauthorized},
		{"Unknown Email", "nobody@example.com", testPassword, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			}, "")
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLoginRecordsLastLogin(t *testing.T) {
	_, app := setupTestServer(t)
	signupTestUser(t, app, "carol@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "carol@example.com",
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.NotNil(t, user["last_login_at"])
}

func TestLogoutRevokesToken(t *testing.T) {
	_, app := setupTestServer(t)
	token, _ := signupTestUser(t, app, "dave@example.com")

	// Token works before logout
	resp := doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/users/logout", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// The same token is rejected afterwards
	resp = doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	_, app := setupTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/me"},
		{http.MethodPut, "/api/users/me"},
		{http.MethodDelete, "/api/users/me"},
		{http.MethodPost, "/api/posts/"},
		{http.MethodPost, "/api/posts/1/like"},
		{http.MethodDelete, "/api/posts/1/like"},
		{http.MethodGet, "/api/analytics/likes"},
		{http.MethodPost, "/api/users/logout"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := doJSON(t, app, tt.method, tt.path, nil, "")
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	_, app := setupTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/users/me", nil, "not.a.token")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
