package usecase

import (
	"context"
	"fmt"

	"notes-service/internal/domain"
	"notes-service/internal/service/otp"
	"notes-service/pkg/utils"
	"notes-service/pkg/xerrors"
)

// ChangePassword swaps the password hash for an authenticated user after
// re-checking the current password.
func (uc *AuthUsecase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	_, err := uc.users.UpdateByID(ctx, userID, func(u *domain.User) error {
		if !u.HasPassword() {
			return xerrors.ErrNoPasswordSet
		}
		if !utils.CheckPasswordHash(currentPassword, *u.PasswordHash) {
			return xerrors.ErrInvalidCredentials
		}
		hashed, err := utils.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = &hashed
		return nil
	})
	return err
}

// RequestPasswordReset issues a reset code into the reset slot — the
// verification slot is untouched — and mails it. Unknown emails fail with
// ErrUserNotFound before anything is generated or sent.
func (uc *AuthUsecase) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	var code *domain.OTP

	user, err := uc.users.UpdateByEmail(ctx, emailAddr, func(u *domain.User) error {
		generated, err := otp.Generate()
		if err != nil {
			return err
		}
		code = generated
		u.ResetOTP = generated
		return nil
	})
	if err != nil {
		return err
	}

	return uc.sendOTPMail(user.Email, "password_reset", code)
}

// VerifyPasswordResetOTP consumes the pending reset code and returns a
// short-lived reset-authorization token bound to the email. The code is
// cleared before the token is issued.
func (uc *AuthUsecase) VerifyPasswordResetOTP(ctx context.Context, emailAddr, code string) (string, error) {
	user, err := uc.users.UpdateByEmail(ctx, emailAddr, func(u *domain.User) error {
		if err := checkOTP(u.ResetOTP, code); err != nil {
			return err
		}
		u.ResetOTP = nil
		return nil
	})
	if err != nil {
		return "", err
	}

	token, err := uc.tokens.IssueReset(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}
	return token, nil
}

// ResetPassword overwrites the password hash. It does not itself demand the
// reset-authorization token; the HTTP boundary gates this operation behind
// it, so embedders can choose a different policy without touching the engine.
func (uc *AuthUsecase) ResetPassword(ctx context.Context, emailAddr, newPassword string) error {
	_, err := uc.users.UpdateByEmail(ctx, emailAddr, func(u *domain.User) error {
		hashed, err := utils.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = &hashed
		return nil
	})
	return err
}
