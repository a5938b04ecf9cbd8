package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "note-keeper-test"
	testSignKey = "test-sign-key"
	testUserID  = "0198d2c6-7f4a-7bb3-a000-000000000001"
)

// TestGenerateJWTToken_RoundTrip verifies that a generated token passes
// validation and carries the original user ID in its subject claim.
func TestGenerateJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUserID, time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testUserID, parsed.UserID)
	assert.Equal(t, testUserID, parsed.Subject)
	assert.Equal(t, testIssuer, parsed.Issuer)
}

// TestValidateAndParseJWTToken_GetUserID verifies that the claim accessors on
// the returned wrapper see the parsed claims: GetUserID on a freshly parsed
// valid token must yield the subject, exactly as the auth middleware reads it.
func TestValidateAndParseJWTToken_GetUserID(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUserID, time.Hour, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	userID, err := parsed.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)

	// the minted wrapper answers the same way before any round trip
	userID, err = token.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
}

// TestGenerateJWTToken_InvalidParams verifies that empty or zero parameters
// are rejected before any signing takes place.
func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	cases := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		signKey  string
	}{
		{"empty issuer", "", testUserID, time.Hour, testSignKey},
		{"empty user id", testIssuer, "", time.Hour, testSignKey},
		{"zero duration", testIssuer, testUserID, 0, testSignKey},
		{"empty sign key", testIssuer, testUserID, time.Hour, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tc.issuer, tc.userID, tc.duration, tc.signKey)
			assert.Error(t, err)
		})
	}
}

// TestValidateAndParseJWTToken_WrongKey verifies that a token signed with a
// different key fails validation.
func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUserID, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "another-key", testIssuer)
	assert.Error(t, err)
}

// TestValidateAndParseJWTToken_WrongIssuer verifies the issuer claim check.
func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUserID, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, testSignKey, "other-issuer")
	assert.Error(t, err)
}

// TestValidateAndParseJWTToken_Expired verifies that a token whose expiry is
// in the past is rejected. The token is crafted directly so that a negative
// lifetime can be encoded.
func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   testUserID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer)
	assert.Error(t, err)
}

// TestValidateAndParseJWTToken_ExpiryBoundary verifies the session TTL
// boundary: a token is accepted strictly before its expiry and rejected at
// or after it.
func TestValidateAndParseJWTToken_ExpiryBoundary(t *testing.T) {
	now := time.Now()

	stillValid := &jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   testUserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Second)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, stillValid).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer)
	assert.NoError(t, err, "token before TTL must be accepted")

	atExpiry := &jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   testUserID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now),
	}
	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, atExpiry).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer)
	assert.Error(t, err, "token at/after TTL must be rejected")
}

// TestValidateAndParseJWTToken_MissingSubject verifies that a token without
// a subject claim is rejected even when the signature is valid.
func TestValidateAndParseJWTToken_MissingSubject(t *testing.T) {
	claims := &jwt.RegisteredClaims{
		Issuer:    testIssuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer)
	assert.Error(t, err)
}

// TestParseBearerToken covers the accepted and rejected header shapes.
func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ParseBearerToken("abc.def.ghi")
	assert.Error(t, err)

	_, err = ParseBearerToken("Bearer ")
	assert.Error(t, err)

	_, err = ParseBearerToken("")
	assert.Error(t, err)
}
