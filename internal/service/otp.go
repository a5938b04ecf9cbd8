package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// otpTTL is the validity window of a signup code.
const otpTTL = 10 * time.Minute

// otpRange spans the six-digit codes 100000 through 999999. The lower bound
// keeps every code at exactly six digits, so no leading-zero ambiguity.
const (
	otpMin   = 100000
	otpRange = 900000
)

// generateOTP returns a uniformly random six-digit signup code using the
// crypto/rand source.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("generating one-time code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}
