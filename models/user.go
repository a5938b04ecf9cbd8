package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user (UUIDv7 string).
	ID string `json:"id"`

	// Email is the unique, lower-cased address the account is registered to.
	// It is the primary lookup key for password and OTP flows.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the argon2id-encoded password hash.
	// Empty for federation-only accounts and for pending records.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// GoogleID is the subject identifier assigned by Google for accounts
	// linked to a Google identity. Empty when no federated identity is linked.
	GoogleID string `json:"-"`

	// IsEmailVerified is false while the account is pending OTP confirmation.
	// Pending records are not valid login targets.
	IsEmailVerified bool `json:"isEmailVerified"`

	// Avatar is an optional profile picture URI supplied by the federated
	// identity provider.
	Avatar string `json:"avatar,omitempty"`

	// OTP is the transient one-time signup code. Set only on pending records
	// and cleared on verification. Never exposed via JSON.
	OTP string `json:"-"`

	// OTPExpiresAt is the transient expiry timestamp of the pending OTP.
	OTPExpiresAt *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicUser is the representation of a user account that is safe to return
// to API clients. Credential material, OTP fields, and internal timestamps
// are never part of this view.
type PublicUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	Avatar          string `json:"avatar,omitempty"`
}

// PublicView maps the user record to its client-facing representation.
func (u User) PublicView() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		IsEmailVerified: u.IsEmailVerified,
		Avatar:          u.Avatar,
	}
}
