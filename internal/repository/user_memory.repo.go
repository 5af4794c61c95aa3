package repository

import (
	"context"
	"sync"
	"time"

	"notes-service/internal/domain"
	"notes-service/pkg/xerrors"
)

// UserMemoryRepository is an in-process UserStore used by tests. Per-record
// atomicity comes from the single mutex; clones keep callers from mutating
// stored state outside UpdateByEmail/UpdateByID.
type UserMemoryRepository struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
}

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.PasswordHash != nil {
		h := *u.PasswordHash
		c.PasswordHash = &h
	}
	if u.GoogleID != nil {
		g := *u.GoogleID
		c.GoogleID = &g
	}
	if u.VerificationOTP != nil {
		o := *u.VerificationOTP
		c.VerificationOTP = &o
	}
	if u.ResetOTP != nil {
		o := *u.ResetOTP
		c.ResetOTP = &o
	}
	return &c
}

func (r *UserMemoryRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := NormalizeEmail(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return nil, xerrors.ErrUserAlreadyExists
	}

	saved := cloneUser(user)
	saved.Email = email
	now := time.Now()
	saved.CreatedAt = now
	saved.UpdatedAt = now
	r.byEmail[email] = saved
	return cloneUser(saved), nil
}

func (r *UserMemoryRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserMemoryRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u := r.findByID(id); u != nil {
		return cloneUser(u), nil
	}
	return nil, xerrors.ErrUserNotFound
}

func (r *UserMemoryRepository) UpdateByEmail(_ context.Context, email string, fn func(*domain.User) error) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	return r.apply(u, fn)
}

func (r *UserMemoryRepository) UpdateByID(_ context.Context, id string, fn func(*domain.User) error) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.findByID(id)
	if u == nil {
		return nil, xerrors.ErrUserNotFound
	}
	return r.apply(u, fn)
}

func (r *UserMemoryRepository) findByID(id string) *domain.User {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *UserMemoryRepository) apply(u *domain.User, fn func(*domain.User) error) (*domain.User, error) {
	working := cloneUser(u)
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now()
	r.byEmail[working.Email] = working
	return cloneUser(working), nil
}
