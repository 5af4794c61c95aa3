package domain

import "time"

type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

// OTP is one pending one-time code with its expiry. A user carries at most
// one per slot; issuing a new code overwrites the old one.
type OTP struct {
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the code is no longer usable at the given instant.
// The boundary is inclusive: a code checked exactly at its expiry is expired.
func (o OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// User is the single persistent account record. PasswordHash and GoogleID
// are nullable: google-provider accounts may have no password at all, local
// accounts have no google subject id.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	Provider     Provider
	GoogleID     *string
	IsVerified   bool

	// Two independent OTP slots: email verification and password reset.
	// They never share state and are never cross-validated.
	VerificationOTP *OTP
	ResetOTP        *OTP

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Profile is the API-safe projection of a user: no hash, no pending codes.
type Profile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Provider   Provider  `json:"provider"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Provider:   u.Provider,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}
