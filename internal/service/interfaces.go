package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

// AuthService implements the account lifecycle: code-based signup, password
// and federated login, and session token handling.
type AuthService interface {
	// SendSignupOTP starts a signup: it creates an unverified account
	// holding a fresh one-time code and emails the code to the address.
	// When the email cannot be delivered the pending account is removed
	// again and ErrOTPDeliveryFailed is returned.
	SendSignupOTP(ctx context.Context, email string, name string) error

	// TestSignupOTP starts a signup without sending email and returns the
	// pending account together with the raw code. Intended only for the
	// development-mode disclosure route.
	TestSignupOTP(ctx context.Context, email string, name string) (models.User, string, error)

	// VerifyOTPAndSignup completes a signup: it consumes the pending code,
	// stores the hashed password, and marks the account verified. A wrong,
	// expired, or already-used code comes back as ErrInvalidOrExpiredOTP
	// with no further detail.
	VerifyOTPAndSignup(ctx context.Context, email string, otp string, password string) (models.User, error)

	// Login authenticates by email and password. Unknown email, missing
	// password hash, and wrong password are all reported as
	// ErrInvalidCredentials and take comparable time.
	Login(ctx context.Context, email string, password string) (models.User, error)

	// GoogleLogin authenticates with a Google ID token: it verifies the
	// credential, then links the federated identity to an existing account
	// or creates a new verified one. Repeating the call with a fresh
	// credential for the same account is idempotent.
	GoogleLogin(ctx context.Context, credential string) (models.User, error)

	// CurrentUser loads the account referenced by a session token subject.
	CurrentUser(ctx context.Context, userID string) (models.User, error)

	// CreateToken issues a signed session token for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw session token string. Any failure is
	// normalised to ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// NoteService implements note management scoped to the owning user.
type NoteService interface {
	CreateNote(ctx context.Context, userID string, title string, content string) (models.Note, error)
	GetNotes(ctx context.Context, userID string) ([]models.Note, error)
	GetNote(ctx context.Context, id string, userID string) (models.Note, error)
	UpdateNote(ctx context.Context, id string, userID string, title string, content string) (models.Note, error)
	DeleteNote(ctx context.Context, id string, userID string) error
}
