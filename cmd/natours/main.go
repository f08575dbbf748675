package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/VaibhavKVerma/Natours/internal/application/auth"
	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/config"
	infraauth "github.com/VaibhavKVerma/Natours/internal/infrastructure/auth"
	httprouter "github.com/VaibhavKVerma/Natours/internal/infrastructure/http"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/http/handlers"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/http/middleware"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/mail"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/persistence/postgres"
	"github.com/VaibhavKVerma/Natours/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	userRepo := postgres.NewUserRepository(pool)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Expiry)
	resets := security.NewResetTokenSource(time.Duration(cfg.PasswordReset.TTLMinutes) * time.Minute)

	var mailer ports.Mailer
	if cfg.Mail.URL != "" {
		opts := []mail.HTTPMailerOption{}
		if cfg.Mail.APIKey != "" {
			opts = append(opts, mail.WithHeader("Authorization", "Bearer "+cfg.Mail.APIKey))
		}
		mailer = mail.NewHTTPMailer(cfg.Mail.URL, cfg.Mail.From, opts...)
	} else {
		log.Warn().Msg("MAIL_URL not set; reset emails will only be logged")
		mailer = mail.NewLogMailer(log)
	}

	signUpUC := auth.NewSignUp(userRepo, hasher, issuer)
	loginUC := auth.NewLogin(userRepo, hasher, issuer)
	forgotPasswordUC := auth.NewForgotPassword(userRepo, resets, mailer, cfg.PasswordReset.BaseURL)
	resetPasswordUC := auth.NewResetPassword(userRepo, resets, hasher, issuer)
	changePasswordUC := auth.NewChangePassword(userRepo, hasher, issuer)

	guard := middleware.NewGuard(issuer, userRepo)
	cookieTTL := time.Duration(cfg.Cookie.TTLDays) * 24 * time.Hour
	authHandler := handlers.NewAuthHandler(signUpUC, loginUC, forgotPasswordUC, resetPasswordUC, changePasswordUC, cookieTTL, !cfg.Secure.IsDevelopment, log)
	usersHandler := handlers.NewUsersHandler(userRepo)
	healthHandler := handlers.NewHealthHandler(pool)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		UsersHandler:  usersHandler,
		HealthHandler: healthHandler,
		Guard:         guard,
		Log:           log,
		Secure:        secureMiddleware,
		IPRateLimit:   ipLimit,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
