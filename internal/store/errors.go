package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyRegistered is returned when inserting a user record
	// fails because the email is already taken. This covers both the
	// pre-existing-account case and the losing side of two concurrent
	// signup attempts for the same address; the unique index makes the
	// check race-free.
	ErrEmailAlreadyRegistered = errors.New("user already exists with this email")

	// ErrNoUserWasFound is returned when a query expected to match exactly
	// one user record produces an empty result set. For the OTP-consume
	// update this deliberately collapses "wrong code", "expired code", and
	// "already verified" into a single indistinguishable outcome.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoteNotFound is returned when a note lookup, update, or delete
	// scoped by id and owner matches nothing. Notes belonging to another
	// user are indistinguishable from notes that do not exist.
	ErrNoteNotFound = errors.New("note was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
