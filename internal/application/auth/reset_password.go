package auth

import (
	"context"
	"time"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/domain"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
)

// ResetPasswordInput is the token from the reset link plus the new password.
type ResetPasswordInput struct {
	Token           string
	Password        string
	PasswordConfirm string
}

type ResetPasswordResult struct {
	User  *domain.User
	Token string
}

// ResetPassword consumes a reset token, sets the new password and logs the
// user in. The stored token is single-use: it is cleared on success.
type ResetPassword struct {
	users  ports.UserRepository
	resets ports.ResetTokenSource
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewResetPassword(users ports.UserRepository, resets ports.ResetTokenSource, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *ResetPassword {
	return &ResetPassword{users: users, resets: resets, hasher: hasher, issuer: issuer}
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	if input.Password == "" || input.Password != input.PasswordConfirm {
		return nil, domerrors.ErrValidationFailed
	}
	tokenHash := uc.resets.HashToken(input.Token)
	user, err := uc.users.GetByResetTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ResetTokenExpiresAt == nil ||
		!uc.resets.Verify(input.Token, user.ResetTokenHash, *user.ResetTokenExpiresAt) {
		return nil, domerrors.ErrResetTokenInvalid
	}
	newHash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	// UpdatePassword clears the reset fields in the same write, so the token
	// is consumed atomically with the password change.
	changedAt := time.Now()
	if err := uc.users.UpdatePassword(ctx, user.ID, newHash, changedAt); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	user.PasswordChangedAt = &changedAt
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	return &ResetPasswordResult{User: user, Token: token}, nil
}
