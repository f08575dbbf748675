package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
)

// TokenIssuer implements ports.TokenIssuer with HS256. The signing secret is
// process-wide state loaded once at startup; it is never logged.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

type claims struct {
	jwt.RegisteredClaims
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue signs a token for the subject with iat = now and exp = now + TTL.
func (t *TokenIssuer) Issue(subjectID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})
	return token.SignedString(t.secret)
}

// Verify parses and validates the token. Malformed, forged and expired tokens
// all surface the same error so callers cannot be used as an oracle.
func (t *TokenIssuer) Verify(tokenString string) (string, time.Time, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domerrors.ErrNotAuthenticated
		}
		return t.secret, nil
	})
	if err != nil {
		return "", time.Time{}, domerrors.ErrNotAuthenticated
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject == "" || c.IssuedAt == nil {
		return "", time.Time{}, domerrors.ErrNotAuthenticated
	}
	return c.Subject, c.IssuedAt.Time, nil
}
