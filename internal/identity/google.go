// Package identity verifies federated-login credentials issued by external
// identity providers.
package identity

//go:generate mockgen -source=google.go -destination=../mock/identity_mock.go -package=mock

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// ErrInvalidCredential wraps every verification failure: bad signature,
// wrong audience, expired token, malformed payload. Callers get one error
// regardless of the cause.
var ErrInvalidCredential = errors.New("invalid federated credential")

// Claims is the subset of verified ID-token claims the application uses.
type Claims struct {
	// Subject is the provider-scoped stable account identifier.
	Subject string

	// Email is the verified email address of the account.
	Email string

	// Name is the display name of the account holder.
	Name string

	// Picture is the avatar URL, possibly empty.
	Picture string
}

// TokenVerifier validates a raw federated-login credential and extracts its
// identity claims.
type TokenVerifier interface {
	// Verify checks the credential's signature, audience, and expiry.
	// Returns ErrInvalidCredential on any failure.
	Verify(ctx context.Context, credential string) (Claims, error)
}

// googleVerifier validates Google Sign-In ID tokens against the configured
// OAuth client ID.
type googleVerifier struct {
	audience string
	logger   *logger.Logger
}

// NewGoogleVerifier constructs a [TokenVerifier] for Google ID tokens.
// The configured client ID becomes the required token audience.
func NewGoogleVerifier(cfg config.Google, logger *logger.Logger) TokenVerifier {
	logger.Debug().Msg("creating google token verifier")
	return &googleVerifier{
		audience: cfg.ClientID,
		logger:   logger,
	}
}

// Verify validates the ID token with Google's public keys and maps its
// payload into [Claims].
func (g *googleVerifier) Verify(ctx context.Context, credential string) (Claims, error) {
	log := logger.FromContext(ctx)

	payload, err := idtoken.Validate(ctx, credential, g.audience)
	if err != nil {
		log.Err(err).Str("func", "*googleVerifier.Verify").Msg("error: id token validation failed")
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	claims := Claims{
		Subject: payload.Subject,
		Email:   stringClaim(payload.Claims, "email"),
		Name:    stringClaim(payload.Claims, "name"),
		Picture: stringClaim(payload.Claims, "picture"),
	}
	if claims.Subject == "" || claims.Email == "" {
		log.Error().Str("func", "*googleVerifier.Verify").Msg("error: token payload missing subject or email")
		return Claims{}, ErrInvalidCredential
	}

	return claims, nil
}

// stringClaim reads an optional string claim from a verified token payload.
func stringClaim(claims map[string]any, key string) string {
	value, _ := claims[key].(string)
	return value
}
