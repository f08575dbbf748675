package ports

import (
	"context"
	"time"

	"github.com/VaibhavKVerma/Natours/internal/domain"
)

// ReadOptions control which sensitive fields a user read returns.
type ReadOptions struct {
	IncludePassword bool
}

// ReadOption configures a user read.
type ReadOption func(*ReadOptions)

// WithPassword opts a read into returning the password hash. Reads exclude it
// by default so a forgotten select cannot leak the hash downstream.
func WithPassword() ReadOption {
	return func(o *ReadOptions) { o.IncludePassword = true }
}

// ApplyReadOptions folds opts into a ReadOptions value.
func ApplyReadOptions(opts []ReadOption) ReadOptions {
	var o ReadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// UserRepository defines persistence for account principals. Lookups return
// (nil, nil) when no matching active user exists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string, opts ...ReadOption) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID, opts ...ReadOption) (*domain.User, error)
	// GetByResetTokenHash returns the user holding an unexpired reset token
	// with the given hash.
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
	// UpdateProfile persists name and email.
	UpdateProfile(ctx context.Context, id domain.UserID, name, email string) (*domain.User, error)
	// UpdatePassword sets a new password hash and password_changed_at, and
	// clears any pending reset token in the same write so a consumed token
	// can never outlive the password it was issued for.
	UpdatePassword(ctx context.Context, id domain.UserID, passwordHash string, changedAt time.Time) error
	// Deactivate marks the user inactive. Reads treat inactive users as
	// absent, so every issued token stops resolving.
	Deactivate(ctx context.Context, id domain.UserID) error
	// SetResetToken stores the hashed reset token and its expiry.
	SetResetToken(ctx context.Context, id domain.UserID, tokenHash string, expiresAt time.Time) error
	// ClearResetToken removes any stored reset token state.
	ClearResetToken(ctx context.Context, id domain.UserID) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}
