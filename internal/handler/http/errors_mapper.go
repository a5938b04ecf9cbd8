package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidOrExpiredOTP:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusBadRequest,
	service.ErrInvalidGoogleToken:      http.StatusBadRequest,
	service.ErrOTPDeliveryFailed:       http.StatusInternalServerError,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	store.ErrEmailAlreadyRegistered: http.StatusBadRequest,
	store.ErrNoUserWasFound:         http.StatusUnauthorized,
	store.ErrNoteNotFound:           http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

// errorMessageMap carries the client-facing message for every well-known
// error. Messages deliberately stay coarse: credential and code failures
// never say which part was wrong.
var errorMessageMap = map[error]string{
	service.ErrInvalidOrExpiredOTP:     "Invalid or expired OTP",
	service.ErrInvalidCredentials:      "Invalid credentials",
	service.ErrInvalidGoogleToken:      "Invalid Google token",
	service.ErrOTPDeliveryFailed:       "Failed to send OTP email",
	service.ErrTokenIsExpiredOrInvalid: "Invalid token",

	store.ErrEmailAlreadyRegistered: "User already exists with this email",
	store.ErrNoUserWasFound:         "Invalid token",
	store.ErrNoteNotFound:           "Note not found",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return "Server error"
}

// respondError maps err to its status and client-facing message. Handlers
// with route-specific validation messages handle service.ErrInvalidDataProvided
// themselves before falling back to this.
func respondError(w http.ResponseWriter, err error) {
	respondMessage(w, messageFromError(err), statusFromError(err))
}
