package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/domain"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
)

// TokenCookieName is the cookie carrying the bearer token for browser clients.
const TokenCookieName = "jwt"

// Guard authenticates requests: it extracts the bearer token, verifies it,
// resolves the user and rejects tokens issued before the user's last password
// change. The resolved user is set in the request context (see UserFromContext).
type Guard struct {
	issuer ports.TokenIssuer
	users  ports.UserRepository
}

func NewGuard(issuer ports.TokenIssuer, users ports.UserRepository) *Guard {
	return &Guard{issuer: issuer, users: users}
}

// Authenticate runs the full chain: extract, verify, resolve, freshness.
// It fails with ErrNotAuthenticated for a missing/invalid/expired token or an
// unresolvable user, and ErrStaleCredential for a token issued before the
// user's last password change.
func (g *Guard) Authenticate(r *http.Request) (*domain.User, error) {
	tokenString := ExtractToken(r)
	if tokenString == "" {
		return nil, domerrors.ErrNotAuthenticated
	}
	subject, issuedAt, err := g.issuer.Verify(tokenString)
	if err != nil {
		return nil, domerrors.ErrNotAuthenticated
	}
	userID, err := domain.ParseUserID(subject)
	if err != nil {
		return nil, domerrors.ErrNotAuthenticated
	}
	user, err := g.users.GetByID(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	// A deleted user is indistinguishable from a bad token to the client.
	if user == nil || !user.Active {
		return nil, domerrors.ErrNotAuthenticated
	}
	if user.ChangedPasswordAfter(issuedAt) {
		return nil, domerrors.ErrStaleCredential
	}
	return user, nil
}

// Protect rejects unauthenticated requests with 401. Stale credentials get
// the exact same response as missing or invalid tokens so the status of an
// account never leaks through this endpoint.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Authenticate(r)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "you are not logged in")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Identify is the best-effort variant of Protect: it runs the same steps but
// proceeds as anonymous on any failure. Used for pages that render
// differently for logged-in visitors without requiring authentication.
func (g *Guard) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := g.Authenticate(r); err == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// ExtractToken reads the bearer token from the Authorization header, falling
// back to the jwt cookie.
func ExtractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if c, err := r.Cookie(TokenCookieName); err == nil {
		return c.Value
	}
	return ""
}

// writeErr sends the same JSON error envelope the handlers use:
// { "status": "fail", "error": message, "code": ... }.
func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	errCode := "internal_error"
	switch code {
	case http.StatusUnauthorized:
		errCode = "unauthorized"
	case http.StatusForbidden:
		errCode = "forbidden"
	}
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "fail",
		"error":  message,
		"code":   errCode,
	})
}
