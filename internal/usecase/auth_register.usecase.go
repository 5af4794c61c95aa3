package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"notes-service/internal/domain"
	"notes-service/internal/service/email"
	"notes-service/internal/service/otp"
	"notes-service/pkg/jwtutil"
	"notes-service/pkg/utils"
	"notes-service/pkg/xerrors"
)

// SignupUser creates a new unverified local account. The plaintext password
// is hashed before it ever reaches the store.
func (uc *AuthUsecase) SignupUser(ctx context.Context, emailAddr, name, password string) (*domain.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        emailAddr,
		Name:         name,
		PasswordHash: &hashed,
		Provider:     domain.ProviderLocal,
		IsVerified:   false,
	}

	return uc.users.Create(ctx, user)
}

// RequestVerificationOTP issues a fresh verification code, overwriting any
// previous one, and mails it. The code is durable before the send is
// attempted; a delivery failure reports ErrOTPDeliveryFailed and the caller
// may simply request again.
func (uc *AuthUsecase) RequestVerificationOTP(ctx context.Context, emailAddr string) error {
	var code *domain.OTP

	user, err := uc.users.UpdateByEmail(ctx, emailAddr, func(u *domain.User) error {
		if u.IsVerified {
			return xerrors.ErrAlreadyVerified
		}
		generated, err := otp.Generate()
		if err != nil {
			return err
		}
		code = generated
		u.VerificationOTP = generated
		return nil
	})
	if err != nil {
		return err
	}

	return uc.sendOTPMail(user.Email, "email_verification", code)
}

// VerifyOTP consumes the pending verification code and marks the account
// verified. Clearing the slot and flipping the flag commit as one unit, so a
// repeat call with the same code fails with ErrOTPNotRequested. On success a
// session token is issued, as the reference flow logs the user in directly.
func (uc *AuthUsecase) VerifyOTP(ctx context.Context, emailAddr, code string) (*domain.User, string, error) {
	user, err := uc.users.UpdateByEmail(ctx, emailAddr, func(u *domain.User) error {
		if err := checkOTP(u.VerificationOTP, code); err != nil {
			return err
		}
		u.IsVerified = true
		u.VerificationOTP = nil
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := uc.tokens.IssueSession(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return user, token, nil
}

// checkOTP is the shared slot check: missing, then mismatch, then expiry, in
// that order, so each input maps to exactly one failure.
func checkOTP(pending *domain.OTP, code string) error {
	if pending == nil {
		return xerrors.ErrOTPNotRequested
	}
	if pending.Code != code {
		return xerrors.ErrOTPMismatch
	}
	if pending.Expired(time.Now()) {
		return xerrors.ErrOTPExpired
	}
	return nil
}

func (uc *AuthUsecase) sendOTPMail(to, purpose string, code *domain.OTP) error {
	subject := email.OTPSubject(purpose)
	body := email.OTPBody(to, purpose, code.Code, otp.TTL)
	if err := uc.mailer.Send(to, subject, body); err != nil {
		log.Printf("[auth] failed to send %s otp to %s: %v", purpose, to, err)
		return fmt.Errorf("%w: %v", xerrors.ErrOTPDeliveryFailed, err)
	}
	return nil
}

// GetUser returns the account for an already-authenticated caller.
func (uc *AuthUsecase) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// ValidateToken resolves a bearer token to the account it names. Reset
// tokens are not sessions and do not validate here.
func (uc *AuthUsecase) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := uc.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != jwtutil.PurposeSession {
		return nil, xerrors.ErrInvalidToken
	}
	return uc.users.GetByID(ctx, claims.UserID)
}
