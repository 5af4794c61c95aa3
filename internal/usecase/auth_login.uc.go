package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"notes-service/internal/domain"
	"notes-service/pkg/utils"
	"notes-service/pkg/xerrors"
)

// Login authenticates a local password login. Checks run in a fixed order —
// existence, password presence, verification, credential match — so the
// handler can give the user the right prompt (resend OTP vs wrong password).
func (uc *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	user, err := uc.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, "", err
	}
	if !user.HasPassword() {
		return nil, "", xerrors.ErrNoPasswordSet
	}
	if !user.IsVerified {
		return nil, "", xerrors.ErrNotVerified
	}
	if !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, "", xerrors.ErrInvalidCredentials
	}

	token, err := uc.tokens.IssueSession(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return user, token, nil
}

// GoogleLogin verifies the Google ID token and logs the asserted identity
// in, creating a verified passwordless account on first sight. Identity is
// keyed by email: an existing account is reused whatever its provider.
func (uc *AuthUsecase) GoogleLogin(ctx context.Context, idToken string) (*domain.User, string, error) {
	gu, err := uc.google.Verify(ctx, idToken)
	if err != nil {
		return nil, "", err
	}

	user, err := uc.users.GetByEmail(ctx, gu.Email)
	if errors.Is(err, xerrors.ErrUserNotFound) {
		user, err = uc.users.Create(ctx, &domain.User{
			ID:         uuid.New().String(),
			Email:      gu.Email,
			Name:       gu.Name,
			Provider:   domain.ProviderGoogle,
			GoogleID:   &gu.Sub,
			IsVerified: true,
		})
	}
	if err != nil {
		return nil, "", err
	}

	token, err := uc.tokens.IssueSession(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return user, token, nil
}
