package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/identity"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mail"
	"github.com/MKhiriev/go-note-keeper/internal/password"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// authService is the concrete implementation of AuthService. It orchestrates
// the signup code flow, password and federated login, and JWT session
// lifecycle using a UserRepository for persistence, a Mailer for code
// dispatch, a TokenVerifier for federated credentials, and argon2id for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mailer dispatches signup codes to prospective users.
	mailer mail.Mailer

	// verifier validates federated-login credentials.
	verifier identity.TokenVerifier

	// hasher produces and checks password hashes.
	hasher password.Hasher

	// uuid produces identifiers for new user records.
	uuid *utils.UUIDGenerator

	// decoyHash is compared against when login targets a non-existent or
	// passwordless account, so every failed login performs one hash
	// verification and all failures take comparable time.
	decoyHash string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// collaborators and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, mailer mail.Mailer, verifier identity.TokenVerifier, hasher password.Hasher, cfg config.App, logger *logger.Logger) (AuthService, error) {
	uuid := utils.NewUUIDGenerator()

	decoyHash, err := hasher.Hash(uuid.Generate())
	if err != nil {
		return nil, fmt.Errorf("preparing decoy hash: %w", err)
	}

	return &authService{
		userRepository: userRepository,
		mailer:         mailer,
		verifier:       verifier,
		hasher:         hasher,
		uuid:           uuid,
		decoyHash:      decoyHash,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}, nil
}

// SendSignupOTP starts a signup for the given email address.
//
// It generates a fresh six-digit code valid for ten minutes, persists an
// unverified account carrying the code, and emails the code to the address.
// The unique index on email makes the existence check race-free: the losing
// side of two concurrent signups gets store.ErrEmailAlreadyRegistered from
// the insert itself.
//
// When the email cannot be delivered, the freshly created record is removed
// again so the address is free to retry, and ErrOTPDeliveryFailed is
// returned.
func (a *authService) SendSignupOTP(ctx context.Context, email string, name string) error {
	log := logger.FromContext(ctx)

	pending, otp, err := a.createPendingSignup(ctx, email, name)
	if err != nil {
		return err
	}

	if err := a.mailer.SendOTP(ctx, pending.Email, name, otp); err != nil {
		log.Err(err).Str("email", pending.Email).Msg("signup code delivery failed, rolling back pending account")

		if deleteErr := a.userRepository.DeleteUser(ctx, pending.ID); deleteErr != nil {
			log.Err(deleteErr).Str("userID", pending.ID).Msg("rollback of pending account failed")
		}

		return fmt.Errorf("%w: %w", ErrOTPDeliveryFailed, err)
	}

	return nil
}

// TestSignupOTP starts a signup exactly like SendSignupOTP but skips email
// dispatch and returns the pending account together with the raw code. Only
// the development-mode disclosure route calls this.
func (a *authService) TestSignupOTP(ctx context.Context, email string, name string) (models.User, string, error) {
	pending, otp, err := a.createPendingSignup(ctx, email, name)
	if err != nil {
		return models.User{}, "", err
	}

	return pending, otp, nil
}

// normalizeEmail lower-cases and trims an email address so that every path
// (signup, verification, login, federated) addresses the same stored record.
// The unique index is on this normalized form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// createPendingSignup generates a code and inserts the unverified account
// record that carries it.
func (a *authService) createPendingSignup(ctx context.Context, email string, name string) (models.User, string, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" || name == "" {
		log.Error().Str("email", email).Str("name", name).Msg("invalid signup data provided")
		return models.User{}, "", ErrInvalidDataProvided
	}

	otp, err := generateOTP()
	if err != nil {
		log.Err(err).Msg("signup code generation failed")
		return models.User{}, "", err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(otpTTL)
	pending, err := a.userRepository.CreateUser(ctx, models.User{
		ID:              a.uuid.Generate(),
		Email:           email,
		Name:            name,
		IsEmailVerified: false,
		OTP:             otp,
		OTPExpiresAt:    &expiresAt,
		CreatedAt:       now,
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("pending account creation ended with error")
		return models.User{}, "", fmt.Errorf("pending account creation ended with error: %w", err)
	}

	return pending, otp, nil
}

// VerifyOTPAndSignup completes a signup.
//
// The password is hashed first, then a single conditional update consumes
// the code: it must match the email, be unexpired, and belong to a still
// unverified account. Whatever the reason the update matched nothing, the
// caller gets ErrInvalidOrExpiredOTP, so an attacker probing codes learns
// nothing about which condition failed.
func (a *authService) VerifyOTPAndSignup(ctx context.Context, email string, otp string, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" || otp == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid signup verification data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	verified, err := a.userRepository.ConsumeOTP(ctx, email, otp, passwordHash, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("email", email).Msg("signup verification rejected")
			return models.User{}, ErrInvalidOrExpiredOTP
		}

		log.Err(err).Str("email", email).Msg("signup verification ended with error")
		return models.User{}, fmt.Errorf("signup verification ended with error: %w", err)
	}

	return verified, nil
}

// Login authenticates an existing user by email and password.
//
// Unknown email, an account without a password hash (federated-only or still
// pending), and a wrong password all produce the same ErrInvalidCredentials.
// When no stored hash is available the supplied password is verified against
// a decoy hash so all three paths cost one argon2id comparison.
func (a *authService) Login(ctx context.Context, email string, pass string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" || pass == "" {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			_, _ = a.hasher.Verify(pass, a.decoyHash)
			log.Warn().Str("email", email).Msg("login rejected: unknown email")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if foundUser.PasswordHash == "" {
		_, _ = a.hasher.Verify(pass, a.decoyHash)
		log.Warn().Str("email", email).Msg("login rejected: account has no password")
		return models.User{}, ErrInvalidCredentials
	}

	match, err := a.hasher.Verify(pass, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Str("email", email).Msg("password verification failed")
		return models.User{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !match {
		log.Warn().Str("email", email).Msg("login rejected: wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// GoogleLogin authenticates with a verified Google ID token.
//
// An account matching the federated subject or the token email is linked to
// the identity when not linked yet; otherwise a new verified account is
// created. Losing the creation race against a concurrent signup falls back
// to the lookup-and-link path, so repeated calls for the same identity
// always converge on one account.
func (a *authService) GoogleLogin(ctx context.Context, credential string) (models.User, error) {
	log := logger.FromContext(ctx)

	if credential == "" {
		log.Error().Msg("no federated credential provided")
		return models.User{}, ErrInvalidDataProvided
	}

	claims, err := a.verifier.Verify(ctx, credential)
	if err != nil {
		log.Warn().Msg("federated credential rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidGoogleToken, err)
	}
	if claims.Name == "" {
		log.Warn().Msg("federated credential carries no display name")
		return models.User{}, ErrInvalidGoogleToken
	}
	claims.Email = normalizeEmail(claims.Email)

	user, err := a.findOrCreateFederated(ctx, claims)
	if err != nil {
		return models.User{}, err
	}

	if user.GoogleID == "" {
		linked, err := a.userRepository.LinkGoogleAccount(ctx, user.ID, claims.Subject, claims.Picture)
		if err != nil {
			log.Err(err).Str("userID", user.ID).Msg("linking federated identity ended with error")
			return models.User{}, fmt.Errorf("linking federated identity ended with error: %w", err)
		}
		return linked, nil
	}

	return user, nil
}

// findOrCreateFederated resolves the account for a verified federated
// identity, creating a new verified record when none exists.
func (a *authService) findOrCreateFederated(ctx context.Context, claims identity.Claims) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmailOrGoogleID(ctx, claims.Email, claims.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", claims.Email).Msg("federated account lookup failed")
		return models.User{}, fmt.Errorf("federated account lookup failed: %w", err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		ID:              a.uuid.Generate(),
		Email:           claims.Email,
		Name:            claims.Name,
		GoogleID:        claims.Subject,
		IsEmailVerified: true,
		Avatar:          claims.Picture,
		CreatedAt:       time.Now().UTC(),
	})
	if err == nil {
		return created, nil
	}

	// lost a creation race; the other writer's record is authoritative
	if errors.Is(err, store.ErrEmailAlreadyRegistered) {
		user, lookupErr := a.userRepository.FindUserByEmailOrGoogleID(ctx, claims.Email, claims.Subject)
		if lookupErr != nil {
			log.Err(lookupErr).Str("email", claims.Email).Msg("federated account lookup after lost race failed")
			return models.User{}, fmt.Errorf("federated account lookup after lost race failed: %w", lookupErr)
		}
		return user, nil
	}

	log.Err(err).Str("email", claims.Email).Msg("federated account creation ended with error")
	return models.User{}, fmt.Errorf("federated account creation ended with error: %w", err)
}

// CurrentUser loads the account referenced by a validated session token
// subject. A subject that no longer resolves (account deleted after the
// token was issued) surfaces store.ErrNoUserWasFound to the caller.
func (a *authService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the signing method, and the issuer claim. Any validation failure (expired,
// wrong issuer, malformed) is normalised to ErrTokenIsExpiredOrInvalid so
// that callers do not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
