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
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	sendSignupOTPFn func(ctx context.Context, email, name string) error
	testSignupOTPFn func(ctx context.Context, email, name string) (models.User, string, error)
	verifyOTPFn     func(ctx context.Context, email, otp, password string) (models.User, error)
	loginFn         func(ctx context.Context, email, password string) (models.User, error)
	googleLoginFn   func(ctx context.Context, credential string) (models.User, error)
	currentUserFn   func(ctx context.Context, userID string) (models.User, error)
	createTokenFn   func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn    func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) SendSignupOTP(ctx context.Context, email, name string) error {
	return m.sendSignupOTPFn(ctx, email, name)
}

func (m *mockAuthService) TestSignupOTP(ctx context.Context, email, name string) (models.User, string, error) {
	return m.testSignupOTPFn(ctx, email, name)
}

func (m *mockAuthService) VerifyOTPAndSignup(ctx context.Context, email, otp, password string) (models.User, error) {
	return m.verifyOTPFn(ctx, email, otp, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) GoogleLogin(ctx context.Context, credential string) (models.User, error) {
	return m.googleLoginFn(ctx, credential)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	return m.currentUserFn(ctx, userID)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around the given service mocks.
func newTestHandler(t *testing.T, auth service.AuthService, notes service.NoteService, environment string) *Handler {
	t.Helper()
	svcs := &service.Services{
		AuthService: auth,
		NoteService: notes,
	}
	cfg := &config.StructuredConfig{
		App:    config.App{Environment: environment},
		Server: config.Server{FrontendOrigin: "http://localhost:3000"},
	}
	return NewHandler(svcs, cfg, logger.Nop())
}

// decodeMessage reads a {"message": ...} response body.
func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Message
}

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

// verifiedUser is a convenience fixture used across multiple tests.
var verifiedUser = models.User{
	ID:              "u-1",
	Email:           "john@example.com",
	Name:            "John",
	IsEmailVerified: true,
}

// ─────────────────────────────────────────────
// send-otp
// ─────────────────────────────────────────────

func TestSendOTP_Success(t *testing.T) {
	auth := &mockAuthService{
		sendSignupOTPFn: func(_ context.Context, email, name string) error {
			assert.Equal(t, "john@example.com", email)
			assert.Equal(t, "John", name)
			return nil
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", strings.NewReader(`{"email":"john@example.com","name":"John"}`))
	rec := httptest.NewRecorder()

	h.sendOTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP sent successfully", decodeMessage(t, rec))
}

func TestSendOTP_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil, config.EnvProduction)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", strings.NewReader("{invalid json}"))
	rec := httptest.NewRecorder()

	h.sendOTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendOTP_MissingFields(t *testing.T) {
	auth := &mockAuthService{
		sendSignupOTPFn: func(_ context.Context, _, _ string) error {
			return service.ErrInvalidDataProvided
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", strings.NewReader(`{"email":"john@example.com"}`))
	rec := httptest.NewRecorder()

	h.sendOTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and name are required", decodeMessage(t, rec))
}

func TestSendOTP_EmailAlreadyRegistered(t *testing.T) {
	auth := &mockAuthService{
		sendSignupOTPFn: func(_ context.Context, _, _ string) error {
			return store.ErrEmailAlreadyRegistered
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", strings.NewReader(`{"email":"john@example.com","name":"John"}`))
	rec := httptest.NewRecorder()

	h.sendOTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists with this email", decodeMessage(t, rec))
}

func TestSendOTP_DeliveryFailed(t *testing.T) {
	auth := &mockAuthService{
		sendSignupOTPFn: func(_ context.Context, _, _ string) error {
			return service.ErrOTPDeliveryFailed
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", strings.NewReader(`{"email":"john@example.com","name":"John"}`))
	rec := httptest.NewRecorder()

	h.sendOTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to send OTP email", decodeMessage(t, rec))
}

// ─────────────────────────────────────────────
// verify-otp
// ─────────────────────────────────────────────

func TestVerifyOTP_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		verifyOTPFn: func(_ context.Context, email, otp, password string) (models.User, error) {
			assert.Equal(t, "482916", otp)
			return verifiedUser, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", strings.NewReader(`{"email":"john@example.com","otp":"482916","password":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.verifyOTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Signup successful", body.Message)
	assert.Equal(t, signedToken, body.Token)
	assert.Equal(t, "u-1", body.User.ID)
	assert.True(t, body.User.IsEmailVerified)
}

func TestVerifyOTP_InvalidOrExpired(t *testing.T) {
	auth := &mockAuthService{
		verifyOTPFn: func(_ context.Context, _, _, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidOrExpiredOTP
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", strings.NewReader(`{"email":"john@example.com","otp":"000000","password":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.verifyOTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP", decodeMessage(t, rec))
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		loginFn: func(_ context.Context, email, password string) (models.User, error) {
			assert.Equal(t, "john@example.com", email)
			return verifiedUser, nil
		},
		createTokenFn: func(_ context.Context, u models.User) (models.Token, error) {
			assert.Equal(t, "u-1", u.ID)
			return stubToken(signedToken), nil
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"john@example.com","password":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Login successful", body.Message)
	assert.Equal(t, signedToken, body.Token)
}

// TestLogin_FailureBodyIsUniform checks that all credential failures produce
// byte-identical response bodies, regardless of the underlying reason.
func TestLogin_FailureBodyIsUniform(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidCredentials
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)

	var bodies []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"john@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()

		h.login(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
	assert.Contains(t, bodies[0], "Invalid credentials")
}

// ─────────────────────────────────────────────
// google
// ─────────────────────────────────────────────

func TestGoogleAuth_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		googleLoginFn: func(_ context.Context, credential string) (models.User, error) {
			assert.Equal(t, "raw-credential", credential)
			return verifiedUser, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(`{"credential":"raw-credential"}`))
	rec := httptest.NewRecorder()

	h.googleAuth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Google authentication successful", body.Message)
}

func TestGoogleAuth_MissingCredential(t *testing.T) {
	auth := &mockAuthService{
		googleLoginFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.googleAuth(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Google credential is required", decodeMessage(t, rec))
}

func TestGoogleAuth_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		googleLoginFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidGoogleToken
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(`{"credential":"forged"}`))
	rec := httptest.NewRecorder()

	h.googleAuth(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Google token", decodeMessage(t, rec))
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_Success(t *testing.T) {
	auth := &mockAuthService{
		currentUserFn: func(_ context.Context, userID string) (models.User, error) {
			assert.Equal(t, "u-1", userID)
			return verifiedUser, nil
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), utils.UserIDCtxKey, "u-1"))
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "john@example.com", body.User.Email)
}

func TestMe_AccountDeleted(t *testing.T) {
	auth := &mockAuthService{
		currentUserFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	h := newTestHandler(t, auth, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), utils.UserIDCtxKey, "u-gone"))
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeMessage(t, rec))
}

func TestMe_NoUserInContext(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil, config.EnvProduction)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
