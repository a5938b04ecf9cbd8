package service

import (
	"strconv"
	"testing"
)

func TestGenerateOTP_SixDigitRange(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		otp, err := generateOTP()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(otp) != 6 {
			t.Fatalf("expected six digits, got %q", otp)
		}

		n, err := strconv.Atoi(otp)
		if err != nil {
			t.Fatalf("expected numeric code, got %q", otp)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}

		seen[otp] = struct{}{}
	}

	// 1000 draws from 900000 values collide occasionally, but the draws
	// must not be constant
	if len(seen) < 900 {
		t.Errorf("expected close to 1000 distinct codes, got %d", len(seen))
	}
}
