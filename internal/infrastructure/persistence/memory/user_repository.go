// Package memory holds an in-memory ports.UserRepository used by tests and
// local development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/domain"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
)

// UserRepository implements ports.UserRepository on a map. Per-call
// copy-in/copy-out keeps callers from mutating stored state.
type UserRepository struct {
	mu    sync.RWMutex
	users map[domain.UserID]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[domain.UserID]*domain.User)}
}

func clone(u *domain.User) *domain.User {
	cp := *u
	if u.PasswordChangedAt != nil {
		t := *u.PasswordChangedAt
		cp.PasswordChangedAt = &t
	}
	if u.ResetTokenExpiresAt != nil {
		t := *u.ResetTokenExpiresAt
		cp.ResetTokenExpiresAt = &t
	}
	return &cp
}

func strip(u *domain.User, o ports.ReadOptions) *domain.User {
	cp := clone(u)
	if !o.IncludePassword {
		cp.PasswordHash = ""
	}
	return cp
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domerrors.ErrUserExists
		}
	}
	r.users[user.ID] = clone(user)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string, opts ...ports.ReadOption) (*domain.User, error) {
	o := ports.ApplyReadOptions(opts)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email && u.Active {
			return strip(u, o), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID, opts ...ports.ReadOption) (*domain.User, error) {
	o := ports.ApplyReadOptions(opts)
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok || !u.Active {
		return nil, nil
	}
	return strip(u, o), nil
}

func (r *UserRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now()
	for _, u := range r.users {
		if u.Active && u.ResetTokenHash == tokenHash && tokenHash != "" &&
			u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(now) {
			return strip(u, ports.ReadOptions{}), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id domain.UserID, name, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domerrors.ErrUserNotFound
	}
	u.Name = name
	u.Email = email
	u.UpdatedAt = time.Now()
	return strip(u, ports.ReadOptions{}), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id domain.UserID, passwordHash string, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domerrors.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	t := changedAt
	u.PasswordChangedAt = &t
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id domain.UserID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domerrors.ErrUserNotFound
	}
	u.ResetTokenHash = tokenHash
	t := expiresAt
	u.ResetTokenExpiresAt = &t
	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domerrors.ErrUserNotFound
	}
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
	return nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domerrors.ErrUserNotFound
	}
	u.Active = false
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []*domain.User
	for _, u := range r.users {
		if u.Active {
			all = append(all, strip(u, ports.ReadOptions{}))
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
