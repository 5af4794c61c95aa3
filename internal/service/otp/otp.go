// Package otp generates the 6-digit one-time codes used for email
// verification and password reset.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"notes-service/internal/domain"
)

// TTL is how long a generated code stays valid.
const TTL = 5 * time.Minute

const (
	codeMin   = 100000
	codeRange = 900000 // codes are uniform in [100000, 999999]
)

// Generate returns a cryptographically random 6-digit code stamped with
// now + TTL.
func Generate() (*domain.OTP, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return nil, fmt.Errorf("otp: rand failed: %w", err)
	}
	return &domain.OTP{
		Code:      fmt.Sprintf("%06d", n.Int64()+codeMin),
		ExpiresAt: time.Now().Add(TTL),
	}, nil
}
