package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrOTPDeliveryFailed signals that the signup code email could not be
	// delivered; the pending account has already been rolled back.
	ErrOTPDeliveryFailed = errors.New("failed to send OTP email")

	// ErrInvalidOrExpiredOTP deliberately covers wrong codes, expired
	// codes, and codes that were already consumed.
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")

	// ErrInvalidCredentials deliberately covers unknown emails,
	// federated-only accounts, and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidGoogleToken = errors.New("invalid google token")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
