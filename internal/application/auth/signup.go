package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/domain"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type SignUpInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Role            domain.Role
}

type SignUpResult struct {
	User  *domain.User
	Token string
}

// SignUp creates an account and logs the new user in.
type SignUp struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewSignUp(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *SignUp {
	return &SignUp{users: users, hasher: hasher, issuer: issuer}
}

func (uc *SignUp) Execute(ctx context.Context, input SignUpInput) (*SignUpResult, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrValidationFailed
	}
	if input.Password == "" || input.Password != input.PasswordConfirm {
		return nil, domerrors.ErrValidationFailed
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domerrors.ErrValidationFailed
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Name:         input.Name,
		Email:        input.Email,
		Role:         role,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &SignUpResult{User: user, Token: token}, nil
}
