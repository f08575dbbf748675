package middleware

import (
	"net/http"

	"github.com/VaibhavKVerma/Natours/internal/domain"
)

// RequireRoles permits the request only when the authenticated user's role is
// in the allowed set. It must run after Guard.Protect: a missing user in the
// context is a wiring bug, not a client error, and returns 500.
func RequireRoles(roles ...domain.Role) func(next http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				writeErr(w, http.StatusInternalServerError, "internal error")
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				writeErr(w, http.StatusForbidden, "you do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
