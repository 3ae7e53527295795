package main

import (
	"context"
	_ "embed"
	"log/slog"
	"os"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
)

//go:embed recipes.yaml
var defaultSeed []byte

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	log := logging.NewLogger(false, cfg.LogLevel)

	data := defaultSeed
	if path := os.Getenv("SEED_FILE"); path != "" {
		if data, err = os.ReadFile(path); err != nil {
			log.Error("failed to read seed file", slog.String("path", path), slog.Any("error", err))
			os.Exit(1)
		}
	}

	seed, err := parseSeed(data)
	if err != nil {
		log.Error("failed to parse seed file", slog.Any("error", err))
		os.Exit(1)
	}

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

	stats, err := run(context.Background(), db, cfg.Limits, seed, log)
	if err != nil {
		log.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("seeding finished",
		slog.Int("users", stats.Users),
		slog.Int("recipes", stats.Recipes),
		slog.Int("reviews", stats.Reviews))
}
