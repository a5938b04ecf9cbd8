package models

// Response bodies produced by the REST API. Every response, including
// errors, carries a human-readable "message" field.

// MessageResponse is the minimal response body: a status or error message.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse is returned by every flow that mints a session: OTP signup
// completion, password login, and Google login.
type AuthResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

// UserResponse wraps the public view of the authenticated user for /auth/me.
type UserResponse struct {
	User PublicUser `json:"user"`
}

// NoteResponse wraps a single note, optionally with a status message.
type NoteResponse struct {
	Message string `json:"message,omitempty"`
	Note    Note   `json:"note"`
}

// NotesResponse wraps the full note list of the authenticated user.
type NotesResponse struct {
	Notes []Note `json:"notes"`
}

// TestOTPResponse is the development-only response that discloses the raw
// OTP instead of dispatching it by email. The route producing it is not
// registered outside an explicit development environment.
type TestOTPResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp"`
	UserID  string `json:"userId"`
}
