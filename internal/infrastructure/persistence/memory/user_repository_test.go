package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/domain"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/persistence/memory"
)

func newUser(email string, active bool) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Name:         "Repo Test",
		Email:        email,
		Role:         domain.RoleUser,
		PasswordHash: "$argon2id$hash",
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("reads omit the password hash unless opted in", func(t *testing.T) {
		repo := memory.NewUserRepository()
		u := newUser("a@x.com", true)
		require.NoError(t, repo.Create(ctx, u))

		got, err := repo.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Empty(t, got.PasswordHash)

		got, err = repo.GetByEmail(ctx, "a@x.com", ports.WithPassword())
		require.NoError(t, err)
		assert.Equal(t, "$argon2id$hash", got.PasswordHash)
	})

	t.Run("missing lookups return nil without error", func(t *testing.T) {
		repo := memory.NewUserRepository()
		got, err := repo.GetByEmail(ctx, "nobody@x.com")
		require.NoError(t, err)
		assert.Nil(t, got)
		got, err = repo.GetByID(ctx, domain.NewUserID(uuid.New()))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("deactivated users are invisible", func(t *testing.T) {
		repo := memory.NewUserRepository()
		u := newUser("gone@x.com", false)
		require.NoError(t, repo.Create(ctx, u))
		got, err := repo.GetByEmail(ctx, "gone@x.com")
		require.NoError(t, err)
		assert.Nil(t, got)
		got, err = repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		repo := memory.NewUserRepository()
		require.NoError(t, repo.Create(ctx, newUser("dup@x.com", true)))
		err := repo.Create(ctx, newUser("dup@x.com", true))
		assert.ErrorIs(t, err, domerrors.ErrUserExists)
	})

	t.Run("reset hash lookup honors expiry", func(t *testing.T) {
		repo := memory.NewUserRepository()
		u := newUser("reset@x.com", true)
		require.NoError(t, repo.Create(ctx, u))

		require.NoError(t, repo.SetResetToken(ctx, u.ID, "hash1", time.Now().Add(10*time.Minute)))
		got, err := repo.GetByResetTokenHash(ctx, "hash1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)

		require.NoError(t, repo.SetResetToken(ctx, u.ID, "hash1", time.Now().Add(-time.Minute)))
		got, err = repo.GetByResetTokenHash(ctx, "hash1")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.GetByResetTokenHash(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("clear reset token removes the lookup", func(t *testing.T) {
		repo := memory.NewUserRepository()
		u := newUser("clear@x.com", true)
		require.NoError(t, repo.Create(ctx, u))
		require.NoError(t, repo.SetResetToken(ctx, u.ID, "hash2", time.Now().Add(10*time.Minute)))
		require.NoError(t, repo.ClearResetToken(ctx, u.ID))
		got, err := repo.GetByResetTokenHash(ctx, "hash2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update password stores the change time and clears reset state", func(t *testing.T) {
		repo := memory.NewUserRepository()
		u := newUser("pw@x.com", true)
		require.NoError(t, repo.Create(ctx, u))
		require.NoError(t, repo.SetResetToken(ctx, u.ID, "pending", time.Now().Add(10*time.Minute)))
		changedAt := time.Now()
		require.NoError(t, repo.UpdatePassword(ctx, u.ID, "$argon2id$new", changedAt))
		got, err := repo.GetByID(ctx, u.ID, ports.WithPassword())
		require.NoError(t, err)
		assert.Equal(t, "$argon2id$new", got.PasswordHash)
		require.NotNil(t, got.PasswordChangedAt)
		assert.WithinDuration(t, changedAt, *got.PasswordChangedAt, time.Second)
		assert.Empty(t, got.ResetTokenHash)
		assert.Nil(t, got.ResetTokenExpiresAt)
	})

	t.Run("deactivate hides the user from every read", func(t *testing.T) {
		repo := memory.NewUserRepository()
		u := newUser("bye@x.com", true)
		require.NoError(t, repo.Create(ctx, u))
		require.NoError(t, repo.Deactivate(ctx, u.ID))
		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
		got, err = repo.GetByEmail(ctx, "bye@x.com")
		require.NoError(t, err)
		assert.Nil(t, got)
		err = repo.Deactivate(ctx, domain.NewUserID(uuid.New()))
		assert.ErrorIs(t, err, domerrors.ErrUserNotFound)
	})

	t.Run("list paginates active users", func(t *testing.T) {
		repo := memory.NewUserRepository()
		for _, email := range []string{"l1@x.com", "l2@x.com", "l3@x.com"} {
			require.NoError(t, repo.Create(ctx, newUser(email, true)))
		}
		require.NoError(t, repo.Create(ctx, newUser("inactive@x.com", false)))

		all, err := repo.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		page, err := repo.List(ctx, 2, 0)
		require.NoError(t, err)
		assert.Len(t, page, 2)

		tail, err := repo.List(ctx, 10, 2)
		require.NoError(t, err)
		assert.Len(t, tail, 1)

		empty, err := repo.List(ctx, 10, 99)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}
