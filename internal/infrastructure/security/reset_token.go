package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// Reset token configuration.
const (
	ResetTokenBytes         = 32 // 32 bytes = 64 hex chars
	DefaultResetTokenExpiry = 10 * time.Minute
)

// ResetTokenSource creates single-use password reset secrets. The secret is
// already high-entropy, so its stored form is a plain SHA-256 rather than the
// slow password hash.
type ResetTokenSource struct {
	ttl time.Duration
	now func() time.Time
}

// NewResetTokenSource builds a source with the given token lifetime.
func NewResetTokenSource(ttl time.Duration) *ResetTokenSource {
	if ttl <= 0 {
		ttl = DefaultResetTokenExpiry
	}
	return &ResetTokenSource{ttl: ttl, now: time.Now}
}

// Generate returns a fresh secret, the hash to store, and the expiry.
// The plaintext is never retrievable again after this call.
func (s *ResetTokenSource) Generate() (plaintext, tokenHash string, expiresAt time.Time, err error) {
	raw := make([]byte, ResetTokenBytes)
	if _, err = rand.Read(raw); err != nil {
		return "", "", time.Time{}, err
	}
	plaintext = hex.EncodeToString(raw)
	return plaintext, s.HashToken(plaintext), s.now().Add(s.ttl), nil
}

// HashToken computes the stored form of a presented token.
func (s *ResetTokenSource) HashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the presented token matches the stored hash and has
// not expired. Comparison is constant-time.
func (s *ResetTokenSource) Verify(plaintext, storedHash string, storedExpiry time.Time) bool {
	if plaintext == "" || storedHash == "" {
		return false
	}
	if s.now().After(storedExpiry) {
		return false
	}
	computed := s.HashToken(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
