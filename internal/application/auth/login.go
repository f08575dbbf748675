package auth

import (
	"context"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/domain"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  *domain.User
	Token string
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password fail identically so the endpoint cannot enumerate accounts.
type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domerrors.ErrValidationFailed
	}
	user, err := uc.users.GetByEmail(ctx, input.Email, ports.WithPassword())
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &LoginResult{User: user, Token: token}, nil
}
