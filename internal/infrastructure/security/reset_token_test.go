package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaibhavKVerma/Natours/internal/infrastructure/security"
)

func TestResetTokenGenerate(t *testing.T) {
	source := security.NewResetTokenSource(10 * time.Minute)

	plaintext, hash, expiresAt, err := source.Generate()
	require.NoError(t, err)

	t.Run("plaintext is 32 bytes of entropy, hex encoded", func(t *testing.T) {
		assert.Len(t, plaintext, 64)
	})

	t.Run("stored form is the hash of the plaintext", func(t *testing.T) {
		assert.Equal(t, source.HashToken(plaintext), hash)
		assert.NotEqual(t, plaintext, hash)
	})

	t.Run("expiry is the configured window", func(t *testing.T) {
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("two tokens never collide", func(t *testing.T) {
		p2, h2, _, err := source.Generate()
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, p2)
		assert.NotEqual(t, hash, h2)
	})
}

func TestResetTokenVerify(t *testing.T) {
	source := security.NewResetTokenSource(10 * time.Minute)
	plaintext, hash, _, err := source.Generate()
	require.NoError(t, err)

	future := time.Now().Add(5 * time.Minute)
	past := time.Now().Add(-1 * time.Minute)

	t.Run("valid token within window", func(t *testing.T) {
		assert.True(t, source.Verify(plaintext, hash, future))
	})

	t.Run("expired window fails even with correct token", func(t *testing.T) {
		assert.False(t, source.Verify(plaintext, hash, past))
	})

	t.Run("wrong token fails", func(t *testing.T) {
		assert.False(t, source.Verify("deadbeef", hash, future))
	})

	t.Run("empty values fail", func(t *testing.T) {
		assert.False(t, source.Verify("", hash, future))
		assert.False(t, source.Verify(plaintext, "", future))
	})
}

func TestResetTokenDefaultTTL(t *testing.T) {
	source := security.NewResetTokenSource(0)
	_, _, expiresAt, err := source.Generate()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(security.DefaultResetTokenExpiry), expiresAt, 5*time.Second)
}
