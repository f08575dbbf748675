package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/http/middleware"
)

// UsersHandler handles /users/*. All routes require Guard.Protect.
type UsersHandler struct {
	users    ports.UserRepository
	validate *validator.Validate
}

func NewUsersHandler(users ports.UserRepository) *UsersHandler {
	return &UsersHandler{users: users, validate: validator.New()}
}

// Me returns the current user resolved by the guard.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "you are not logged in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"user":   toUserResponse(user),
	})
}

// UpdateMe updates profile fields. Password fields are rejected here: the
// password routes are the only way to change a password.
func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "you are not logged in")
		return
	}
	var body struct {
		Name            string `json:"name" validate:"omitempty,max=100"`
		Email           string `json:"email" validate:"omitempty,email,max=254"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Password != "" || body.PasswordConfirm != "" {
		writeErr(w, http.StatusBadRequest, "this route is not for password updates; use /auth/update-password")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	name := body.Name
	if name == "" {
		name = user.Name
	}
	email := user.Email
	if body.Email != "" {
		email = SanitizeEmail(body.Email)
		if email == "" {
			writeErr(w, http.StatusBadRequest, "invalid email")
			return
		}
	}
	updated, err := h.users.UpdateProfile(r.Context(), user.ID, name, email)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"user":   toUserResponse(updated),
	})
}

// DeleteMe soft-deactivates the account. The record stays in the store but
// every read treats it as absent, so outstanding tokens stop resolving.
func (h *UsersHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "you are not logged in")
		return
	}
	if err := h.users.Deactivate(r.Context(), user.ID); err != nil {
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

const defaultListLimit = 20
const maxListLimit = 100

// List returns users with optional limit/offset. Admin only.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
			if limit > maxListLimit {
				limit = maxListLimit
			}
		}
	}
	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	users, err := h.users.List(r.Context(), limit, offset)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]userResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "users": items})
}
