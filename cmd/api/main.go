package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atlantic-drive-backend/config"
	_ "atlantic-drive-backend/docs" // Important for Swagger
	v1 "atlantic-drive-backend/internal/delivery/http/v1"
	"atlantic-drive-backend/internal/domain"
	"atlantic-drive-backend/internal/usecase"
	"atlantic-drive-backend/pkg/email"
	"atlantic-drive-backend/pkg/logger"
	"atlantic-drive-backend/pkg/ratelimit"
	"atlantic-drive-backend/pkg/redis"
	"atlantic-drive-backend/pkg/submissionlog"
)

// @title           Atlantic Drive Tours Forms API
// @version         1.0
// @description     Contact and booking enquiry intake for the Atlantic Drive Tours site.
// @BasePath        /
func main() {
	if err := run(); err != nil {
		log.Printf("forms backend: %v", err)
		os.Exit(1)
	}
}

// run wires the server and blocks until it shuts down or fails to listen
func run() error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Setup Loggers
	logger.Init("atlantic-drive-backend", cfg.IsProduction())
	logger.Log.Info("Starting forms backend", "port", cfg.Port, "env", cfg.Environment)

	submissionLog := submissionlog.NewProduction("atlantic-drive-backend", cfg.Environment, domain.RequestIDFromContext)
	defer submissionLog.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Rate Limit Stores
	// Redis is optional; without it every instance counts on its own.
	var store ratelimit.Store
	var ping usecase.StorePinger
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
	} else {
		store = ratelimit.NewRedisStore(redis.Client())
		ping = redis.HealthCheck
		defer redis.Close()
	}

	fallback := ratelimit.NewMemoryStore()
	fallback.StartSweeper(ctx, 5*time.Minute)
	onStoreError := func(err error) {
		logger.Log.Warn("Rate limit store error, using in-memory fallback", "error", err)
	}

	submissionLimiter := ratelimit.New(ratelimit.Config{
		Limit:        cfg.RateLimitSubmissionMax,
		Window:       cfg.SubmissionWindow(),
		KeyPrefix:    "rl:submit:",
		Store:        store,
		Fallback:     fallback,
		OnStoreError: onStoreError,
	})
	globalLimiter := ratelimit.New(ratelimit.Config{
		Limit:        cfg.RateLimitGlobalThreshold,
		Window:       cfg.GlobalWindow(),
		KeyPrefix:    "rl:ip:",
		Store:        store,
		Fallback:     fallback,
		OnStoreError: onStoreError,
	})

	// 4. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if missing := emailService.MissingConfig(); len(missing) > 0 {
		logger.Log.Warn("Email delivery not fully configured",
			"missing", missing,
			"dev_fallback", emailService.DevFallback(),
		)
	}

	// 5. Setup UseCases
	intakeDeps := usecase.IntakeDeps{
		Validate: domain.NewValidator(),
		Limiter:  submissionLimiter,
		Composer: email.NewComposer(cfg.BrandName),
		Mailer:   emailService,
		Log:      submissionLog,
	}
	contactUC := usecase.NewContactUsecase(intakeDeps)
	enquiryUC := usecase.NewEnquiryUsecase(intakeDeps)
	healthUC := usecase.NewHealthUsecase(emailService, ping)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:     contactUC,
		EnquiryUC:     enquiryUC,
		HealthUC:      healthUC,
		GlobalLimiter: globalLimiter,
		SubmissionLog: submissionLog,
		Validate:      intakeDeps.Validate,
		Config:        cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		logger.Log.Error("Listen failed", "error", err)
		return fmt.Errorf("listen: %w", err)
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
