package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"notes-service/pkg/xerrors"
)

// Token purposes. A session token authenticates a user for the full API; a
// password_reset token only proves recent reset-OTP verification for one
// email address.
const (
	PurposeSession       = "session"
	PurposePasswordReset = "password_reset"
)

const (
	SessionTokenTTL = 7 * 24 * time.Hour
	ResetTokenTTL   = 10 * time.Minute
)

type Claims struct {
	UserID  string `json:"uid,omitempty"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Manager issues and validates HS256 bearer tokens. Issue and Validate are
// pure computations, safe for concurrent use.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// IssueSession returns a 7-day session token carrying user id and email.
func (m *Manager) IssueSession(userID, email string) (string, error) {
	return m.issue(Claims{
		UserID:  userID,
		Email:   email,
		Purpose: PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// IssueReset returns a 10-minute reset-authorization token bound to email
// only. It carries no user id on purpose: it is not a session.
func (m *Manager) IssueReset(email string) (string, error) {
	return m.issue(Claims{
		Email:   email,
		Purpose: PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ResetTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func (m *Manager) issue(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and verifies a token. Every failure mode — bad signature,
// expiry, malformed payload, wrong algorithm — reports the same
// xerrors.ErrInvalidToken so callers cannot tell which check failed.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, xerrors.ErrInvalidToken
	}
	return claims, nil
}
