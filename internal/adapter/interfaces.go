// Package adapter provides transport-layer abstractions for communicating with
// the go-note-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples the CLI client
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// go-note-keeper server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It is called automatically after a successful
	// VerifyOTPAndSignup, Login, or GoogleLogin.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// SendSignupOTP asks the server to start a signup for email and deliver a
	// one-time code to it. Returns the server's confirmation message.
	SendSignupOTP(ctx context.Context, email, name string) (models.MessageResponse, error)

	// VerifyOTPAndSignup completes a signup by presenting the one-time code
	// together with the chosen password. On success it stores the returned
	// session token via SetToken.
	VerifyOTPAndSignup(ctx context.Context, email, otp, password string) (models.AuthResponse, error)

	// Login authenticates with email and password. On success it stores the
	// returned session token via SetToken.
	Login(ctx context.Context, email, password string) (models.AuthResponse, error)

	// GoogleLogin authenticates with a Google ID token credential. On success
	// it stores the returned session token via SetToken.
	GoogleLogin(ctx context.Context, credential string) (models.AuthResponse, error)

	// Me fetches the profile of the currently authenticated user. Requires a
	// valid bearer token.
	Me(ctx context.Context) (models.PublicUser, error)

	// CreateNote creates a note owned by the authenticated user.
	CreateNote(ctx context.Context, title, content string) (models.Note, error)

	// GetNotes lists the authenticated user's notes, newest first.
	GetNotes(ctx context.Context) ([]models.Note, error)

	// GetNote fetches a single note by id. Returns [ErrNotFound] (wrapped) if
	// the note does not exist or belongs to another user.
	GetNote(ctx context.Context, id string) (models.Note, error)

	// UpdateNote replaces the title and content of a note by id.
	UpdateNote(ctx context.Context, id, title, content string) (models.Note, error)

	// DeleteNote deletes a note by id.
	DeleteNote(ctx context.Context, id string) error
}
