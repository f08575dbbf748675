package auth

import (
	"context"
	"fmt"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
)

// ForgotPasswordInput for requesting a password reset email.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordResult is empty: the response never reveals whether the
// email is registered.
type ForgotPasswordResult struct{}

// ForgotPassword stores a hashed reset token against the user and mails the
// plaintext. Delivery is all-or-nothing: if the mail cannot be sent, the
// stored token is cleared again so a broken token is never left active.
type ForgotPassword struct {
	users    ports.UserRepository
	resets   ports.ResetTokenSource
	mailer   ports.Mailer
	resetURL string
}

func NewForgotPassword(users ports.UserRepository, resets ports.ResetTokenSource, mailer ports.Mailer, resetURL string) *ForgotPassword {
	return &ForgotPassword{users: users, resets: resets, mailer: mailer, resetURL: resetURL}
}

func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Uniform response; do not reveal whether the account exists.
		return &ForgotPasswordResult{}, nil
	}
	plaintext, tokenHash, expiresAt, err := uc.resets.Generate()
	if err != nil {
		return nil, err
	}
	if err := uc.users.SetResetToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return nil, err
	}
	body := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password and password confirm to %s/%s.\n"+
			"If you didn't forget your password, please ignore this email.",
		uc.resetURL, plaintext)
	msg := ports.Message{
		To:      user.Email,
		Subject: "Your password reset token (valid for 10 minutes)",
		Body:    body,
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		if clearErr := uc.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			return nil, clearErr
		}
		return nil, domerrors.ErrDeliveryFailed
	}
	return &ForgotPasswordResult{}, nil
}
