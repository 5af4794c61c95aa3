package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notes-service/internal/domain"
	"notes-service/pkg/xerrors"
)

// UserStore is the narrow credential-store contract the auth usecase works
// against. UpdateByEmail and UpdateByID are the store's atomic
// find-and-update primitives: the callback runs against the current record
// and its mutations are written back as one unit. An error returned from the
// callback aborts the update and is propagated unchanged.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateByEmail(ctx context.Context, email string, fn func(*domain.User) error) (*domain.User, error)
	UpdateByID(ctx context.Context, id string, fn func(*domain.User) error) (*domain.User, error)
}

// NormalizeEmail is the store-boundary case normalization; every lookup and
// insert goes through it so the unique index on email is effectively
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const uniqueViolation = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, email, name, password_hash, provider, google_id, is_verified,
	otp_code, otp_expires_at, reset_otp_code, reset_otp_expires_at,
	created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u              domain.User
		otpCode        *string
		otpExpiry      *time.Time
		resetOtpCode   *string
		resetOtpExpiry *time.Time
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Provider,
		&u.GoogleID,
		&u.IsVerified,
		&otpCode,
		&otpExpiry,
		&resetOtpCode,
		&resetOtpExpiry,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if otpCode != nil && otpExpiry != nil {
		u.VerificationOTP = &domain.OTP{Code: *otpCode, ExpiresAt: *otpExpiry}
	}
	if resetOtpCode != nil && resetOtpExpiry != nil {
		u.ResetOTP = &domain.OTP{Code: *resetOtpCode, ExpiresAt: *resetOtpExpiry}
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Email = NormalizeEmail(user.Email)

	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, name, password_hash, provider, google_id, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		user.ID, user.Email, user.Name, user.PasswordHash,
		user.Provider, user.GoogleID, user.IsVerified,
	)

	saved, err := scanUser(row)
	if err != nil {
		if xerrors.ParsePGErrorCode(err) == uniqueViolation {
			return nil, xerrors.ErrUserAlreadyExists
		}
		return nil, err
	}
	return saved, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, NormalizeEmail(email)))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) UpdateByEmail(ctx context.Context, email string, fn func(*domain.User) error) (*domain.User, error) {
	return r.update(ctx, "email = $1", NormalizeEmail(email), fn)
}

func (r *UserRepository) UpdateByID(ctx context.Context, id string, fn func(*domain.User) error) (*domain.User, error) {
	return r.update(ctx, "id = $1", id, fn)
}

// update locks the row for the duration of the read-check-write so two
// concurrent mutations of the same account serialize instead of clobbering
// each other. Mutations of different accounts never contend.
func (r *UserRepository) update(ctx context.Context, where string, arg any, fn func(*domain.User) error) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	user, err := scanUser(tx.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE `+where+`
		FOR UPDATE
	`, arg))
	if err != nil {
		return nil, err
	}

	if err := fn(user); err != nil {
		return nil, err
	}

	var otpCode, resetOtpCode *string
	var otpExpiry, resetOtpExpiry *time.Time
	if user.VerificationOTP != nil {
		otpCode, otpExpiry = &user.VerificationOTP.Code, &user.VerificationOTP.ExpiresAt
	}
	if user.ResetOTP != nil {
		resetOtpCode, resetOtpExpiry = &user.ResetOTP.Code, &user.ResetOTP.ExpiresAt
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET
			name = $2,
			password_hash = $3,
			provider = $4,
			google_id = $5,
			is_verified = $6,
			otp_code = $7,
			otp_expires_at = $8,
			reset_otp_code = $9,
			reset_otp_expires_at = $10,
			updated_at = now()
		WHERE id = $1
	`, user.ID, user.Name, user.PasswordHash, user.Provider, user.GoogleID,
		user.IsVerified, otpCode, otpExpiry, resetOtpCode, resetOtpExpiry)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return user, nil
}
