package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// userRepository is the SQL-backed implementation of [UserRepository]. It
// handles account creation, lookup, one-time code consumption, and federated
// identity linking against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both [sql.Row] and [sql.Rows].
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one users row into a [models.User], unfolding the nullable
// columns (password hash, federated id, avatar, pending code and its expiry).
func scanUser(row rowScanner) (models.User, error) {
	var (
		user         models.User
		passwordHash sql.NullString
		googleID     sql.NullString
		avatar       sql.NullString
		otp          sql.NullString
		otpExpiresAt sql.NullTime
	)

	err := row.Scan(&user.ID, &user.Email, &user.Name, &passwordHash, &googleID, &user.IsEmailVerified, &avatar, &otp, &otpExpiresAt, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = passwordHash.String
	user.GoogleID = googleID.String
	user.Avatar = avatar.String
	user.OTP = otp.String
	if otpExpiresAt.Valid {
		expiresAt := otpExpiresAt.Time
		user.OTPExpiresAt = &expiresAt
	}

	return user, nil
}

// nullableString converts an empty string to a NULL database value.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateUser persists a new user record and returns the canonical database
// representation produced by the RETURNING clause.
//
// Error handling:
//   - unique-constraint violation on email → [ErrEmailAlreadyRegistered].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.ID, user.Email, user.Name,
		nullableString(user.PasswordHash), nullableString(user.GoogleID),
		user.IsEmailVerified, nullableString(user.Avatar),
		nullableString(user.OTP), user.OTPExpiresAt, user.CreatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn().Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("email already registered")
			return models.User{}, ErrEmailAlreadyRegistered
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Str("pg_code", postgresError(err)).Msg("error: creating user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByEmail retrieves the user record whose email matches the one
// provided.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: finding user by email")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindUserByID retrieves the user record with the given id.
//
// Error handling mirrors [userRepository.FindUserByEmail].
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := scanUser(r.db.QueryRowContext(ctx, findUserByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: finding user by id")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindUserByEmailOrGoogleID retrieves the user record matching either the
// federated subject identifier or the email address. When both match
// different records the federated one wins, which keeps repeated federated
// sign-ins pinned to the linked account.
func (r *userRepository) FindUserByEmailOrGoogleID(ctx context.Context, email string, googleID string) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmailOrGoogleID, googleID, email, googleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmailOrGoogleID").Msg("error: finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ConsumeOTP atomically promotes an unverified account to a verified one.
// The conditional UPDATE matches by email and code, requires the account to
// still be unverified, and requires the code deadline to lie in the future;
// on success the password hash is stored and the code columns are cleared.
//
// A wrong code, an expired code, and an already-verified account all yield
// zero updated rows and come back as [ErrNoUserWasFound], so callers cannot
// tell the cases apart.
func (r *userRepository) ConsumeOTP(ctx context.Context, email string, otp string, passwordHash string, now time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	verified, err := scanUser(r.db.QueryRowContext(ctx, consumeSignupOTP, passwordHash, email, otp, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.ConsumeOTP").Msg("error: consuming signup code")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return verified, nil
}

// LinkGoogleAccount attaches a federated identity to the user record with the
// given id and marks the account verified. The avatar argument is applied
// only when the record has no avatar yet.
func (r *userRepository) LinkGoogleAccount(ctx context.Context, userID string, googleID string, avatar string) (models.User, error) {
	log := logger.FromContext(ctx)

	linked, err := scanUser(r.db.QueryRowContext(ctx, linkGoogleAccount, googleID, nullableString(avatar), userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.LinkGoogleAccount").Msg("error: linking federated identity")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return linked, nil
}

// DeleteUser removes the user record with the given id. Deleting a record
// that does not exist is not an error.
func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteUser, id); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: deleting user")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
