package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logging.NewLogger(config.IsProduction(), cfg.LogLevel)
	slog.SetDefault(log)

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := database.RunMigrations(db, migrationsDir, log); err != nil {
		log.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Rate limiting is skipped when Redis is unreachable
	rdb, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Warn("failed to connect to redis", slog.Any("error", err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	srv, err := server.New(cfg, db, rdb, log)
	if err != nil {
		log.Error("failed to build server", slog.Any("error", err))
		os.Exit(1)
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		log.Info("received signal", slog.String("signal", sig.String()))
	}

	log.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
