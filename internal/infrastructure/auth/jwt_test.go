package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte(testSecret), time.Hour)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	subject, issuedAt, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
	assert.WithinDuration(t, time.Now(), issuedAt, 5*time.Second)
}

func TestVerifyFailures(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte(testSecret), time.Hour)

	// Every failure mode surfaces the same error kind so the verifier
	// cannot be used as an oracle.
	t.Run("expired token", func(t *testing.T) {
		expired := auth.NewTokenIssuer([]byte(testSecret), -time.Minute)
		token, err := expired.Issue("user-123")
		require.NoError(t, err)
		_, _, err = issuer.Verify(token)
		assert.ErrorIs(t, err, domerrors.ErrNotAuthenticated)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewTokenIssuer([]byte("another-secret-another-secret-00"), time.Hour)
		token, err := other.Issue("user-123")
		require.NoError(t, err)
		_, _, err = issuer.Verify(token)
		assert.ErrorIs(t, err, domerrors.ErrNotAuthenticated)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, _, err := issuer.Verify("not.a.token")
		assert.ErrorIs(t, err, domerrors.ErrNotAuthenticated)
		_, _, err = issuer.Verify("")
		assert.ErrorIs(t, err, domerrors.ErrNotAuthenticated)
	})
}
