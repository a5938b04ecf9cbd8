package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
)

// TestTestOTPRoute_AbsentOutsideDevelopment checks that the code-disclosure
// route does not exist at all unless the environment is explicitly set to
// development — not even as a guarded 403.
func TestTestOTPRoute_AbsentOutsideDevelopment(t *testing.T) {
	auth := &mockAuthService{
		testSignupOTPFn: func(_ context.Context, email, name string) (models.User, string, error) {
			t.Fatal("test-otp service method must be unreachable outside development")
			return models.User{}, "", nil
		},
	}

	for _, environment := range []string{config.EnvProduction, "", "staging"} {
		h := newTestHandler(t, auth, nil, environment)
		router := h.Init()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/test-otp", strings.NewReader(`{"email":"john@example.com","name":"John"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, "environment %q must not register the route", environment)
	}
}

func TestTestOTPRoute_DisclosesCodeInDevelopment(t *testing.T) {
	auth := &mockAuthService{
		testSignupOTPFn: func(_ context.Context, email, name string) (models.User, string, error) {
			return models.User{ID: "u-1", Email: email, Name: name}, "482916", nil
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvDevelopment)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/test-otp", strings.NewReader(`{"email":"john@example.com","name":"John"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.TestOTPResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "OTP generated successfully (development mode)", body.Message)
	assert.Equal(t, "482916", body.OTP)
	assert.Equal(t, "u-1", body.UserID)
}

func TestProtectedRoutes_RejectMissingToken(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, &mockNoteService{}, config.EnvProduction)
	router := h.Init()

	for _, target := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/notes/"},
		{http.MethodPost, "/api/notes/"},
		{http.MethodDelete, "/api/notes/n-1"},
	} {
		req := httptest.NewRequest(target.method, target.path, nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s must require a token", target.method, target.path)
	}
}

func TestHealthRoute(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil, config.EnvProduction)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NoteTaking API is running!", decodeMessage(t, rec))
}

func TestCORS_AllowsConfiguredOriginOnly(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil, config.EnvProduction)
	router := h.Init()

	// configured origin gets the CORS headers
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	// any other origin gets nothing back
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AnswersPreflight(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil, config.EnvProduction)
	router := h.Init()

	req := httptest.NewRequest(http.MethodOptions, "/api/notes/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestUnknownRoute_ReturnsJSONNotFound(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil, config.EnvProduction)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/does-not-exist", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeMessage(t, rec))
}

// TestPanicRecovery checks that a handler panic produces a generic 500 body
// with no internal detail.
func TestPanicRecovery(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			panic("boom")
		},
	}
	h := newTestHandler(t, auth, nil, config.EnvProduction)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"john@example.com","password":"p"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong!", decodeMessage(t, rec))
	assert.NotContains(t, rec.Body.String(), "boom")
}

var _ service.AuthService = (*mockAuthService)(nil)
var _ service.NoteService = (*mockNoteService)(nil)
