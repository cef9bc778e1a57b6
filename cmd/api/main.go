package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scribeflow/scribeflow-api/docs"
	"github.com/scribeflow/scribeflow-api/internal/ai"
	"github.com/scribeflow/scribeflow-api/internal/auth"
	"github.com/scribeflow/scribeflow-api/internal/config"
	"github.com/scribeflow/scribeflow-api/internal/database"
	"github.com/scribeflow/scribeflow-api/internal/http/handler"
	"github.com/scribeflow/scribeflow-api/internal/http/middleware"
	"github.com/scribeflow/scribeflow-api/internal/http/router"
	"github.com/scribeflow/scribeflow-api/internal/jobs"
	"github.com/scribeflow/scribeflow-api/internal/logger"
	"github.com/scribeflow/scribeflow-api/internal/repository"
	"github.com/scribeflow/scribeflow-api/internal/service"
	"github.com/scribeflow/scribeflow-api/internal/storage"
	"go.uber.org/zap"
)

// @title ScribeFlow API
// @version 1.0
// @description Content transformation API for expanding, summarizing and rewriting text

// @contact.name API Support
// @contact.email support@scribeflow.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "staging.api.scribeflow.io"
	case "production":
		docs.SwaggerInfo.Host = "api.scribeflow.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize the generation provider
	generator, err := ai.NewGeminiGenerator(ctx, &cfg.AI, log)
	if err != nil {
		return fmt.Errorf("failed to initialize generator: %w", err)
	}
	defer func() { _ = generator.Close() }()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)

	// Initialize auth
	tokens, err := auth.NewTokenManager(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}
	authMiddleware := auth.NewMiddleware(tokens, log)

	// Initialize services
	userService := service.NewUserService(userRepo, tokens, &cfg.Auth, log)
	contentService := service.NewContentService(contentRepo, log)
	transformService := service.NewTransformService(generator, cfg.AI.RequestTimeoutDuration(), log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, log)
	transformHandler := handler.NewTransformHandler(transformService, log)
	contentHandler := handler.NewContentHandler(contentService, log)
	profileHandler := handler.NewProfileHandler(userService, fileStorage, cfg.Storage.MaxUploadSizeMB, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		transformHandler,
		contentHandler,
		profileHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		sweep := jobs.NewImageSweepJob(userRepo, fileStorage, log)
		if err := scheduler.AddJob("profile-image-sweep", cfg.Jobs.ImageSweepSchedule, sweep.Run); err != nil {
			log.Error("Failed to register image sweep job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started",
				zap.String("image_sweep_schedule", cfg.Jobs.ImageSweepSchedule),
			)
		}
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
