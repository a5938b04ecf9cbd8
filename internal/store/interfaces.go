package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
)

// UserRepository persists user accounts and their signup state.
//
// A record starts life unverified with a hashed one-time code and an expiry;
// verification atomically clears the code, attaches the password hash, and
// flips the verified flag. Federated accounts skip the code phase entirely.
type UserRepository interface {
	// CreateUser inserts the given user record and returns it as stored.
	// Returns ErrEmailAlreadyRegistered when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the user with the given email, or
	// ErrNoUserWasFound when no such record exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the user with the given id, or
	// ErrNoUserWasFound when no such record exists.
	FindUserByID(ctx context.Context, id string) (models.User, error)

	// FindUserByEmailOrGoogleID returns the user matching either the email
	// or the federated subject identifier, preferring the federated match.
	// Returns ErrNoUserWasFound when neither matches.
	FindUserByEmailOrGoogleID(ctx context.Context, email string, googleID string) (models.User, error)

	// ConsumeOTP atomically verifies an account: it matches an unverified
	// record by email and code with an unexpired deadline, stores the
	// password hash, marks the account verified, and clears the code. A
	// wrong code, an expired code, and an already-verified account are all
	// reported as ErrNoUserWasFound.
	ConsumeOTP(ctx context.Context, email string, otp string, passwordHash string, now time.Time) (models.User, error)

	// LinkGoogleAccount attaches a federated identity to an existing user
	// record and marks it verified. The avatar is updated only when the
	// record has none yet.
	LinkGoogleAccount(ctx context.Context, userID string, googleID string, avatar string) (models.User, error)

	// DeleteUser removes the user record with the given id.
	DeleteUser(ctx context.Context, id string) error
}

// NoteRepository persists notes scoped to their owning user. Every read and
// write is keyed by both note id and owner id, so one user's notes are
// invisible to every other user.
type NoteRepository interface {
	// CreateNote inserts the given note and returns it as stored.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// GetNotes returns all notes owned by the given user, newest first.
	// An owner with no notes gets an empty slice, not an error.
	GetNotes(ctx context.Context, userID string) ([]models.Note, error)

	// GetNote returns the note with the given id owned by the given user,
	// or ErrNoteNotFound.
	GetNote(ctx context.Context, id string, userID string) (models.Note, error)

	// UpdateNote replaces the title and content of the note with the given
	// id owned by the given user and returns the updated record, or
	// ErrNoteNotFound.
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)

	// DeleteNote removes the note with the given id owned by the given
	// user, or returns ErrNoteNotFound.
	DeleteNote(ctx context.Context, id string, userID string) error
}
