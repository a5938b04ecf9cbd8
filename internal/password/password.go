// Package password implements argon2id password hashing and verification.
//
// Hashes are stored in the standard PHC string format
// ($argon2id$v=...$m=...,t=...,p=...$salt$hash) so that cost parameters can
// be tuned without invalidating existing credentials. Verification decodes
// the parameters embedded in the stored hash and compares digests in
// constant time.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher hashes plain-text passwords and verifies them against stored hashes.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// Argon2 is the argon2id implementation of [Hasher].
// Zero values are not usable; construct instances via [NewArgon2].
type Argon2 struct {
	// Memory is the memory cost in KiB.
	Memory uint32

	// Iterations is the time cost.
	Iterations uint32

	// Parallelism is the number of threads used per hash.
	Parallelism uint8

	// SaltLength is the length of the random salt in bytes.
	// Ignored during Verify, which reads the salt from the stored hash.
	SaltLength uint32

	// KeyLength is the length of the derived key in bytes.
	KeyLength uint32
}

var _ Hasher = (*Argon2)(nil)

// ErrMalformedHash is returned by Verify when the stored value cannot be
// decoded as an argon2id PHC string.
var ErrMalformedHash = errors.New("malformed argon2id hash")

// NewArgon2 constructs an [Argon2] hasher with the OWASP-recommended cost
// parameters for interactive logins.
func NewArgon2() *Argon2 {
	return &Argon2{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hash derives an argon2id digest of password with a fresh random salt and
// returns it encoded in the PHC string format.
func (a *Argon2) Hash(password string) (string, error) {
	salt := make([]byte, a.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		a.Iterations,
		a.Memory,
		a.Parallelism,
		a.KeyLength,
	)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.Memory,
		a.Iterations,
		a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// Verify recomputes the digest of password using the parameters and salt
// embedded in encodedHash and compares it with the stored digest in constant
// time.
//
// Returns (false, nil) on a well-formed hash that does not match, and
// a wrapped [ErrMalformedHash] when the stored value cannot be decoded.
func (a *Argon2) Verify(password, encodedHash string) (bool, error) {
	params, salt, hash, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		params.KeyLength,
	)

	return subtle.ConstantTimeCompare(hash, computed) == 1, nil
}

// decodeHash splits a PHC-formatted argon2id string into its cost
// parameters, salt, and digest.
func decodeHash(encodedHash string) (*Argon2, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, fmt.Errorf("%w: wrong segment count", ErrMalformedHash)
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid version: %w", ErrMalformedHash, err)
	}

	params := &Argon2{}
	var parallelism int
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &parallelism); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid parameters: %w", ErrMalformedHash, err)
	}
	params.Parallelism = uint8(parallelism)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid salt encoding: %w", ErrMalformedHash, err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid hash encoding: %w", ErrMalformedHash, err)
	}

	params.KeyLength = uint32(len(hash))

	return params, salt, hash, nil
}
