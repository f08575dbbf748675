package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaibhavKVerma/Natours/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad(t *testing.T) {
	t.Run("missing secret is an error", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("short secret is rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "tooshort")
		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", testSecret)
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 90*24*time.Hour, cfg.JWT.Expiry)
		assert.Equal(t, 90, cfg.Cookie.TTLDays)
		assert.Equal(t, 10, cfg.PasswordReset.TTLMinutes)
		assert.Equal(t, uint32(64*1024), cfg.Argon2.Memory)
		assert.Equal(t, "100-M", cfg.RateLimit.RatePerIP)
		assert.Empty(t, cfg.Mail.URL)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", testSecret)
		t.Setenv("PORT", "9090")
		t.Setenv("JWT_EXPIRES_IN", "3600")
		t.Setenv("RESET_TOKEN_EXPIRES_IN", "5")
		t.Setenv("RATE_PER_IP", "20-S")
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, time.Hour, cfg.JWT.Expiry)
		assert.Equal(t, 5, cfg.PasswordReset.TTLMinutes)
		assert.Equal(t, "20-S", cfg.RateLimit.RatePerIP)
	})
}
