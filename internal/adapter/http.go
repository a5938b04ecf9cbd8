package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *resty.Client
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from cfg.BaseURL
// and configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// SendSignupOTP implements [ServerAdapter]. It POSTs the signup email and name
// to POST /api/auth/send-otp.
func (h *httpServerAdapter) SendSignupOTP(ctx context.Context, email, name string) (models.MessageResponse, error) {
	var mr models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SendOTPRequest{Email: email, Name: name}).
		SetResult(&mr).
		Post("/api/auth/send-otp")
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("send otp request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	return mr, nil
}

// VerifyOTPAndSignup implements [ServerAdapter]. It POSTs the one-time code
// and chosen password to POST /api/auth/verify-otp. On success the session
// token from the response body is stored via SetToken.
func (h *httpServerAdapter) VerifyOTPAndSignup(ctx context.Context, email, otp, password string) (models.AuthResponse, error) {
	return h.authRequest(ctx, "/api/auth/verify-otp", models.VerifyOTPRequest{Email: email, OTP: otp, Password: password})
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the session token from the response body is
// stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	return h.authRequest(ctx, "/api/auth/login", models.LoginRequest{Email: email, Password: password})
}

// GoogleLogin implements [ServerAdapter]. It POSTs the Google ID token to
// POST /api/auth/google. On success the session token from the response body
// is stored via SetToken.
func (h *httpServerAdapter) GoogleLogin(ctx context.Context, credential string) (models.AuthResponse, error) {
	return h.authRequest(ctx, "/api/auth/google", models.GoogleAuthRequest{Credential: credential})
}

// authRequest POSTs body to an authentication endpoint and stores the session
// token from a successful response.
func (h *httpServerAdapter) authRequest(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	var ar models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&ar).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("auth request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}
	if ar.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("auth request %s: no token in response", path)
	}

	h.SetToken(ar.Token)
	return ar, nil
}

// Me implements [ServerAdapter]. It GETs GET /api/auth/me and returns the
// authenticated user's profile. Requires a valid bearer token.
func (h *httpServerAdapter) Me(ctx context.Context) (models.PublicUser, error) {
	var ur models.UserResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&ur).
		Get("/api/auth/me")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}

	return ur.User, nil
}

// CreateNote implements [ServerAdapter]. It POSTs the note payload to
// POST /api/notes/. Requires a valid bearer token.
func (h *httpServerAdapter) CreateNote(ctx context.Context, title, content string) (models.Note, error) {
	var nr models.NoteResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.NotePayload{Title: title, Content: content}).
		SetResult(&nr).
		Post("/api/notes/")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return nr.Note, nil
}

// GetNotes implements [ServerAdapter]. It GETs GET /api/notes/ and returns the
// authenticated user's notes, newest first. Requires a valid bearer token.
func (h *httpServerAdapter) GetNotes(ctx context.Context) ([]models.Note, error) {
	var nr models.NotesResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&nr).
		Get("/api/notes/")
	if err != nil {
		return nil, fmt.Errorf("get notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return nr.Notes, nil
}

// GetNote implements [ServerAdapter]. It GETs GET /api/notes/{id}. Requires a
// valid bearer token.
func (h *httpServerAdapter) GetNote(ctx context.Context, id string) (models.Note, error) {
	var nr models.NoteResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&nr).
		Get("/api/notes/" + url.PathEscape(id))
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return nr.Note, nil
}

// UpdateNote implements [ServerAdapter]. It PUTs the note payload to
// PUT /api/notes/{id}. Requires a valid bearer token.
func (h *httpServerAdapter) UpdateNote(ctx context.Context, id, title, content string) (models.Note, error) {
	var nr models.NoteResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.NotePayload{Title: title, Content: content}).
		SetResult(&nr).
		Put("/api/notes/" + url.PathEscape(id))
	if err != nil {
		return models.Note{}, fmt.Errorf("update note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return nr.Note, nil
}

// DeleteNote implements [ServerAdapter]. It sends DELETE /api/notes/{id}.
// Requires a valid bearer token.
func (h *httpServerAdapter) DeleteNote(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/notes/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
