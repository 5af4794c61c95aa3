package usecase

import (
	"context"

	"notes-service/internal/repository"
	"notes-service/internal/service/email"
	oauth2svc "notes-service/internal/service/oauth2"
	"notes-service/pkg/jwtutil"
)

// GoogleTokenVerifier validates a federated identity assertion and extracts
// the stable subject id, email and display name.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*oauth2svc.GoogleUser, error)
}

// AuthUsecase is the account lifecycle engine: signup, OTP verification,
// password and Google login, password change and reset. All collaborators
// are injected at construction; the engine keeps no state of its own, so one
// instance serves all requests concurrently.
type AuthUsecase struct {
	users  repository.UserStore
	mailer email.Mailer
	tokens *jwtutil.Manager
	google GoogleTokenVerifier
}

func NewAuthUsecase(
	users repository.UserStore,
	mailer email.Mailer,
	tokens *jwtutil.Manager,
	google GoogleTokenVerifier,
) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		mailer: mailer,
		tokens: tokens,
		google: google,
	}
}
