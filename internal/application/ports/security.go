package ports

import "time"

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns false on mismatch or malformed hash; it never errors.
	Verify(password, hash string) bool
}

// TokenIssuer signs and verifies bearer tokens bound to a subject.
type TokenIssuer interface {
	Issue(subjectID string) (string, error)
	// Verify returns the subject and issue time. Malformed, forged and
	// expired tokens all fail with the same error kind.
	Verify(token string) (subjectID string, issuedAt time.Time, err error)
}

// ResetTokenSource generates and checks single-use password reset secrets.
// The plaintext is handed out exactly once; only its hash is ever stored.
type ResetTokenSource interface {
	Generate() (plaintext, tokenHash string, expiresAt time.Time, err error)
	HashToken(plaintext string) string
	Verify(plaintext, storedHash string, storedExpiry time.Time) bool
}
