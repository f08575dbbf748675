package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/VaibhavKVerma/Natours/internal/domain"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/http/handlers"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler   *handlers.AuthHandler
	UsersHandler  *handlers.UsersHandler
	HealthHandler *handlers.HealthHandler
	Guard         *middleware.Guard
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	IPRateLimit   func(http.Handler) http.Handler
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.SignUp)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Get("/logout", cfg.AuthHandler.Logout)
		r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
		r.Patch("/reset-password/{token}", cfg.AuthHandler.ResetPassword)
		r.Group(func(r chi.Router) {
			r.Use(cfg.Guard.Protect)
			r.Patch("/update-password", cfg.AuthHandler.UpdatePassword)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(cfg.Guard.Protect)
		r.Get("/me", cfg.UsersHandler.Me)
		r.Patch("/me", cfg.UsersHandler.UpdateMe)
		r.Delete("/me", cfg.UsersHandler.DeleteMe)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(domain.RoleAdmin))
			r.Get("/", cfg.UsersHandler.List)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
