package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/VaibhavKVerma/Natours/internal/domain"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/http/middleware"
)

func TestRequireRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	asRole := func(role domain.Role) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		user := &domain.User{ID: domain.NewUserID(uuid.New()), Role: role, Active: true}
		return r.WithContext(middleware.WithUser(r.Context(), user))
	}

	t.Run("allowed role passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		middleware.RequireRoles(domain.RoleAdmin)(next).ServeHTTP(w, asRole(domain.RoleAdmin))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("any of several roles passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		middleware.RequireRoles(domain.RoleAdmin, domain.RoleLeadGuide)(next).ServeHTTP(w, asRole(domain.RoleLeadGuide))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("disallowed role gets 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		middleware.RequireRoles(domain.RoleAdmin)(next).ServeHTTP(w, asRole(domain.RoleUser))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "permission")
	})

	t.Run("missing principal is a server error", func(t *testing.T) {
		w := httptest.NewRecorder()
		middleware.RequireRoles(domain.RoleAdmin)(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
