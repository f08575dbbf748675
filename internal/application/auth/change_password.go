package auth

import (
	"context"
	"time"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/domain"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
)

type ChangePasswordInput struct {
	UserID          domain.UserID
	CurrentPassword string
	Password        string
	PasswordConfirm string
}

type ChangePasswordResult struct {
	User  *domain.User
	Token string
}

// ChangePassword updates the password of a logged-in user. The current
// password is re-verified first so a hijacked session cannot be turned into a
// permanent takeover. Updating password_changed_at invalidates every token
// issued before this call.
type ChangePassword struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewChangePassword(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *ChangePassword {
	return &ChangePassword{users: users, hasher: hasher, issuer: issuer}
}

func (uc *ChangePassword) Execute(ctx context.Context, input ChangePasswordInput) (*ChangePasswordResult, error) {
	if input.Password == "" || input.Password != input.PasswordConfirm {
		return nil, domerrors.ErrValidationFailed
	}
	user, err := uc.users.GetByID(ctx, input.UserID, ports.WithPassword())
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.CurrentPassword, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	newHash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	changedAt := time.Now()
	if err := uc.users.UpdatePassword(ctx, user.ID, newHash, changedAt); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	user.PasswordChangedAt = &changedAt
	return &ChangePasswordResult{User: user, Token: token}, nil
}
