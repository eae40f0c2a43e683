// Package main initializes and starts the Mesto API server, setting up
// configuration, logging, the database, repositories, services, handlers
// and optional TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/mesto/internal/apperror"
	"github.com/atinyakov/mesto/internal/auth"
	"github.com/atinyakov/mesto/internal/config"
	"github.com/atinyakov/mesto/internal/db"
	"github.com/atinyakov/mesto/internal/logger"
	"github.com/atinyakov/mesto/internal/repository"
	"github.com/atinyakov/mesto/internal/server/handler/http"
	"github.com/atinyakov/mesto/internal/service"
	"github.com/atinyakov/mesto/internal/validation"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const (
	pingInterval    = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Parse .env, command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	requestLog, err := log.Sink("request", options.RequestLog)
	if err != nil {
		zapLogger.Fatal("failed to open request log", zap.Error(err))
	}
	defer func() { _ = requestLog.Sync() }()

	errorLog, err := log.Sink("error", options.ErrorLog)
	if err != nil {
		zapLogger.Fatal("failed to open error log", zap.Error(err))
	}
	defer func() { _ = errorLog.Sync() }()

	if options.JWTSecret == config.DevSecret {
		zapLogger.Warn("using the development JWT secret; set JWT_SECRET in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	db.StartPinger(ctx, postgresDB, pingInterval, zapLogger)

	// Initialize repositories.
	storeTimeout := options.StoreTimeout.Std()
	userRepo := repository.NewPostgresUserRepository(postgresDB, storeTimeout)
	cardRepo := repository.NewPostgresCardRepository(postgresDB, storeTimeout)

	// Initialize business-logic services.
	tokens := auth.NewTokenService(options.JWTSecret, options.TokenTTL.Std())
	authService := service.NewAuthService(userRepo, auth.NewBcryptHasher(options.BcryptCost), tokens)
	userService := service.NewUserService(userRepo)
	cardService := service.NewCardService(cardRepo)

	// Create HTTP handlers.
	validator := validation.New()
	authHandler := &http.AuthHandler{
		AuthService:  authService,
		Validator:    validator,
		CookieTTL:    tokens.TTL(),
		CookieSecure: options.CookieSecure,
	}
	userHandler := &http.UserHandler{UserService: userService, Validator: validator}
	cardHandler := &http.CardHandler{CardService: cardService, Validator: validator}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler,
		userHandler,
		cardHandler,
		tokens,
		apperror.NewResponder(errorLog),
		requestLog,
		options.AllowedOrigins,
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	useTLS := options.TLSCert != "" && options.TLSKey != ""
	if useTLS {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	serveErr := make(chan error, 1)
	go func() {
		zapLogger.Info("starting server", zap.String("addr", options.Port), zap.Bool("tls", useTLS))
		if useTLS {
			serveErr <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("failed to start server", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
