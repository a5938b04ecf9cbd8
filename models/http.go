package models

// Request payloads accepted by the REST API. Field names follow the JSON
// contract consumed by the browser client.

// SendOTPRequest starts the OTP signup flow for a new email address.
type SendOTPRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// VerifyOTPRequest completes signup: it proves control of the email via the
// delivered code and sets the account password.
type VerifyOTPRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

// LoginRequest authenticates an existing verified account by password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest carries the ID token issued by Google Identity Services.
type GoogleAuthRequest struct {
	Credential string `json:"credential"`
}

// NotePayload carries the writable fields of a note for create and update.
type NotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
