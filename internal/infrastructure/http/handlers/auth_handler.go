package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/VaibhavKVerma/Natours/internal/application/auth"
	"github.com/VaibhavKVerma/Natours/internal/domain"
	domerrors "github.com/VaibhavKVerma/Natours/internal/domain/errors"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/http/middleware"
)

// AuthHandler serves /auth/*: signup, login, logout and the password flows.
type AuthHandler struct {
	signUp         *auth.SignUp
	login          *auth.Login
	forgotPassword *auth.ForgotPassword
	resetPassword  *auth.ResetPassword
	changePassword *auth.ChangePassword
	cookieTTL      time.Duration
	cookieSecure   bool
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(signUp *auth.SignUp, login *auth.Login, forgotPassword *auth.ForgotPassword, resetPassword *auth.ResetPassword, changePassword *auth.ChangePassword, cookieTTL time.Duration, cookieSecure bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signUp:         signUp,
		login:          login,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
		changePassword: changePassword,
		cookieTTL:      cookieTTL,
		cookieSecure:   cookieSecure,
		validate:       validator.New(),
		log:            log,
	}
}

// setTokenCookie mirrors the token into an HTTP-only cookie for browser
// clients. The cookie expiry matches the configured cookie TTL.
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name            string `json:"name" validate:"required,max=100"`
		Email           string `json:"email" validate:"required,email,max=254"`
		Password        string `json:"password" validate:"required,min=8,max=128"`
		PasswordConfirm string `json:"passwordConfirm" validate:"required,max=128"`
		Role            string `json:"role" validate:"omitempty,max=32"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "invalid email or password length")
		return
	}
	result, err := h.signUp.Execute(r.Context(), auth.SignUpInput{
		Name:            body.Name,
		Email:           email,
		Password:        password,
		PasswordConfirm: SanitizePassword(body.PasswordConfirm),
		Role:            domain.Role(body.Role),
	})
	if err != nil {
		h.fail(w, r, "user.signup", "", err)
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	h.setTokenCookie(w, result.Token)
	writeAuthOK(w, http.StatusCreated, result.Token, result.User)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		h.fail(w, r, "user.login", "", err)
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	h.setTokenCookie(w, result.Token)
	writeAuthOK(w, http.StatusOK, result.Token, result.User)
}

// Logout overwrites the jwt cookie with an already-expired dummy value. The
// token itself stays valid until it expires; statelessness is the trade-off.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "loggedout",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	_, err := h.forgotPassword.Execute(r.Context(), auth.ForgotPasswordInput{
		Email: SanitizeEmail(body.Email),
	})
	if err != nil {
		h.fail(w, r, "user.forgot_password", "", err)
		return
	}
	AuditLog(h.log, r, "user.forgot_password", "", true, "")
	middleware.RecordAuthAttempt("forgot_password", true)
	// Uniform response whether or not the account exists.
	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "ok",
		"message": "if that account exists, a reset token has been sent",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	var body struct {
		Password        string `json:"password" validate:"required,min=8,max=128"`
		PasswordConfirm string `json:"passwordConfirm" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{
		Token:           token,
		Password:        SanitizePassword(body.Password),
		PasswordConfirm: SanitizePassword(body.PasswordConfirm),
	})
	if err != nil {
		h.fail(w, r, "user.reset_password", "", err)
		return
	}
	AuditLog(h.log, r, "user.reset_password", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("reset_password", true)
	h.setTokenCookie(w, result.Token)
	writeAuthOK(w, http.StatusOK, result.Token, result.User)
}

// UpdatePassword changes the password of the logged-in user. Requires
// Guard.Protect.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "you are not logged in")
		return
	}
	var body struct {
		PasswordCurrent string `json:"passwordCurrent" validate:"required,max=128"`
		Password        string `json:"password" validate:"required,min=8,max=128"`
		PasswordConfirm string `json:"passwordConfirm" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.changePassword.Execute(r.Context(), auth.ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: SanitizePassword(body.PasswordCurrent),
		Password:        SanitizePassword(body.Password),
		PasswordConfirm: SanitizePassword(body.PasswordConfirm),
	})
	if err != nil {
		h.fail(w, r, "user.update_password", user.ID.String(), err)
		return
	}
	AuditLog(h.log, r, "user.update_password", user.ID.String(), true, "")
	middleware.RecordAuthAttempt("update_password", true)
	h.setTokenCookie(w, result.Token)
	writeAuthOK(w, http.StatusOK, result.Token, result.User)
}

// fail audits the failure and writes the mapped status. Expected domain
// errors keep their message; anything else is an opaque internal error.
func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, event, userID string, err error) {
	AuditLog(h.log, r, event, userID, false, err.Error())
	middleware.RecordAuthAttempt(eventName(event), false)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("event", event).Msg("auth operation failed")
		writeErr(w, status, "internal error")
		return
	}
	msg := err.Error()
	// Stale credentials must read exactly like a missing login.
	if errors.Is(err, domerrors.ErrStaleCredential) || errors.Is(err, domerrors.ErrNotAuthenticated) {
		msg = "you are not logged in"
	}
	writeErr(w, status, msg)
}

func eventName(event string) string {
	if i := len("user."); len(event) > i && event[:i] == "user." {
		return event[i:]
	}
	return event
}
