package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/VaibhavKVerma/Natours/internal/domain"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
)

// writeErr sends JSON { "status": "fail", "error": message, "code": errCode }.
func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "fail",
		"error":  message,
		"code":   defaultErrCode(code),
	})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusBadGateway:
		return ErrCodeDeliveryFailed
	case http.StatusInternalServerError:
		return ErrCodeInternal
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain sentinels to HTTP statuses. Stale credentials map to
// the same status and message as a missing token on purpose.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domerrors.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, domerrors.ErrResetTokenInvalid):
		return http.StatusBadRequest
	case errors.Is(err, domerrors.ErrInvalidCredentials),
		errors.Is(err, domerrors.ErrNotAuthenticated),
		errors.Is(err, domerrors.ErrStaleCredential):
		return http.StatusUnauthorized
	case errors.Is(err, domerrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domerrors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domerrors.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, domerrors.ErrDeliveryFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userResponse is the serialized shape of a user. The password hash has no
// field here, so it can never be serialized by accident.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// writeAuthOK sends the success envelope for auth operations:
// { "status": "ok", "token": ..., "user": {...} }.
func writeAuthOK(w http.ResponseWriter, code int, token string, u *domain.User) {
	writeJSON(w, code, map[string]interface{}{
		"status": "ok",
		"token":  token,
		"user":   toUserResponse(u),
	})
}
