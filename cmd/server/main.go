package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hueareyou/internal/config"
	"hueareyou/internal/database"
	"hueareyou/internal/handlers"
	"hueareyou/internal/repository"
	"hueareyou/internal/security"
	"hueareyou/internal/service"
)

const (
	sessionCleanupInterval = time.Hour
	limiterCleanupInterval = time.Minute
	shutdownTimeout        = 10 * time.Second
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	status := handlers.NewStartupStatus()

	// Initialize database with config (supports sqlite, postgres, mysql)
	status.SetCurrentStep(handlers.StepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	status.CompleteStep(handlers.StepDatabase)
	logger.Info("database connection established", zap.String("type", cfg.DatabaseType))

	status.SetCurrentStep(handlers.StepMigrations)
	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	status.CompleteStep(handlers.StepMigrations)
	logger.Info("migrations completed")

	status.SetCurrentStep(handlers.StepServices)
	tokens, err := security.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		return err
	}

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, logger.Named("email"))
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	hueRepo := repository.NewHueRepository(db)

	authService := service.NewAuthService(userRepo, tokens, emailService, cfg.SessionDuration, logger.Named("auth"))
	hueService := service.NewHueService(hueRepo, logger.Named("hue"))

	limiter := security.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter, logger)

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:        handlers.NewAuthHandler(authService, logger),
		Hue:         handlers.NewHueHandler(hueService, authService, logger),
		Middleware:  middleware,
		Status:      status,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger.Named("http"),
	})
	status.CompleteStep(handlers.StepServices)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", server.Addr))
		status.MarkReady()
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return authService.RunCleanup(gctx, sessionCleanupInterval)
	})

	g.Go(func() error {
		return limiter.Run(gctx, limiterCleanupInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
