package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/maxviazov/feedback-service/internal/config"
	"github.com/maxviazov/feedback-service/internal/handler"
	"github.com/maxviazov/feedback-service/internal/logger"
	"github.com/maxviazov/feedback-service/internal/repository"
	"github.com/maxviazov/feedback-service/internal/repository/memory"
	"github.com/maxviazov/feedback-service/internal/repository/postgres"
	"github.com/maxviazov/feedback-service/internal/server"
	"github.com/maxviazov/feedback-service/internal/service"
)

const defaultConfigFile = "config.yaml"

func main() {
	loadEnvFiles()

	// Load application config
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error().Err(err).Msg("service stopped with error")
		stop()
		os.Exit(1)
	}
	appLogger.Info().Msg("service stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	feedbackRepo, pinger, closeStore, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	feedbackSvc := service.NewFeedbackService(feedbackRepo, appLogger)

	srv, err := server.New(cfg, appLogger, pinger, feedbackSvc)
	if err != nil {
		return err
	}

	appLogger.Info().
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.App.Port).
		Msg("service started")
	return srv.Run(ctx)
}

// openStorage connects the configured feedback store. A Postgres connection
// failure is fatal; there is no retry loop.
func openStorage(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) (repository.FeedbackRepository, handler.Pinger, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		appLogger.Warn().Msg("using in-memory storage, entries are lost on restart")
		repo := memory.NewFeedbackRepository()
		return repo, repo, func() {}, nil

	case config.DriverPostgres:
		db, err := repository.New(ctx, cfg.Postgres, &appLogger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, db.Pool(), appLogger); err != nil {
				db.Close()
				return nil, nil, nil, fmt.Errorf("migrations failed: %w", err)
			}
		}
		return postgres.NewFeedbackRepository(db.Pool()), postgres.NewPinger(db.Pool()), db.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// configPath honours APP_CONFIG_FILE. Without it, config.yaml in the working
// directory is used when present, otherwise defaults and environment only.
func configPath() string {
	if p := os.Getenv("APP_CONFIG_FILE"); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigFile); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return defaultConfigFile
}

// loadEnvFiles reads .env files without overriding variables already set.
func loadEnvFiles() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
		}
	}
}
