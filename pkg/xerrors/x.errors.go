package xerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func ParsePGErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code // e.g. 23505 for unique_violation
	}
	return "unknown"
}

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
)

// Registration / Login
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrNoPasswordSet      = errors.New("no password set for this account")
	ErrNotVerified        = errors.New("user not verified")
	ErrAlreadyVerified    = errors.New("user already verified")
)

// OTP. ErrOTPNotRequested means no code is pending in the slot being
// verified; a consumed code reports the same way.
var (
	ErrOTPNotRequested   = errors.New("otp is required")
	ErrOTPMismatch       = errors.New("otp not matched")
	ErrOTPExpired        = errors.New("otp expired")
	ErrOTPDeliveryFailed = errors.New("failed to send otp email")
)

// Tokens / federated login
var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidGoogleToken = errors.New("invalid google token")
)

// Notes
var ErrNoteNotFound = errors.New("note not found")
