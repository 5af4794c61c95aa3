package oauth2svc

import (
	"context"
	"strings"

	"google.golang.org/api/idtoken"

	"notes-service/pkg/xerrors"
)

type GoogleUser struct {
	Sub   string // Google unique user ID
	Email string
	Name  string
}

// GoogleVerifier validates Google ID tokens against a configured audience.
// It satisfies the usecase's TokenVerifier interface.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify checks signature, audience and expiry of the assertion. Any
// failure collapses to ErrInvalidGoogleToken; callers never learn which
// check rejected the token.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*GoogleUser, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, xerrors.ErrInvalidGoogleToken
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	sub, _ := payload.Claims["sub"].(string)
	if name == "" {
		firstName, _ := payload.Claims["given_name"].(string)
		lastName, _ := payload.Claims["family_name"].(string)
		name = strings.TrimSpace(firstName + " " + lastName)
	}

	if sub == "" || email == "" {
		return nil, xerrors.ErrInvalidGoogleToken
	}

	return &GoogleUser{Sub: sub, Email: email, Name: name}, nil
}
