package transport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_ReturnsProfileWithoutPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/owners/signup", "", map[string]string{
		"email":    "owner@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var profile UserProfile
	decodeBody(t, w, &profile)
	assert.Equal(t, "owner@example.com", profile.Email)
	assert.Equal(t, "owner", profile.Role)
	assert.NotEmpty(t, profile.ID)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestSignup_DuplicateEmailConflictsAcrossRoles(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/owners/signup", "", map[string]string{
		"email":    "taken@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Same role
	w = env.do(t, "POST", "/owners/signup", "", map[string]string{
		"email":    "taken@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Email uniqueness is global, so the buyer route conflicts too
	w = env.do(t, "POST", "/buyers/signup", "", map[string]string{
		"email":    "taken@example.com",
		"password": "different-password",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestSignup_RejectsInvalidPayload(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"short password", map[string]string{"email": "a@example.com", "password": "short"}},
		{"malformed email", map[string]string{"email": "not-an-email", "password": "password123"}},
		{"missing password", map[string]string{"email": "a@example.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, "POST", "/buyers/signup", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin_ReturnsBearerToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/buyers/signup", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "POST", "/buyers/login", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var token TokenResponse
	decodeBody(t, w, &token)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, "buyer@example.com", token.User.Email)
	assert.Equal(t, "buyer", token.User.Role)
}

// Wrong password, wrong role route and unknown email must be
// indistinguishable to the client.
func TestLogin_FailuresAreUniform(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/owners/signup", "", map[string]string{
		"email":    "owner@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cases := []struct {
		name string
		path string
		body map[string]string
	}{
		{"wrong password", "/owners/login", map[string]string{"email": "owner@example.com", "password": "wrong-password"}},
		{"wrong role route", "/buyers/login", map[string]string{"email": "owner@example.com", "password": "password123"}},
		{"unknown email", "/owners/login", map[string]string{"email": "nobody@example.com", "password": "password123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, "POST", tc.path, "", tc.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "incorrect email or password")
		})
	}
}

func TestLogin_TokenWorksOnProtectedRoutes(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/owners/signup", "", map[string]string{
		"email":    "owner@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var profile UserProfile
	decodeBody(t, w, &profile)

	w = env.do(t, "POST", "/owners/login", "", map[string]string{
		"email":    "owner@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var token TokenResponse
	decodeBody(t, w, &token)

	w = env.do(t, "GET", "/owners/"+profile.ID+"/storehouses", token.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/owners/"+profile.ID+"/storehouses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
