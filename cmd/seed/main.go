// Package main provides a CLI tool that creates the catalog schema and seeds
// it with initial data. Any failure is fatal.
package main

import (
	"context"
	"fmt"
	"os"

	"catalog/internal/config"
	"catalog/internal/infrastructure/storage/postgres"
	"catalog/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	settings, err := config.Load(config.LoadOptions{})
	if err != nil {
		log.Fatalw("failed to load settings", "error", err)
	}
	db, err := config.ResolveConnection(settings)
	if err != nil {
		log.Fatalw("failed to resolve database connection", "error", err)
	}

	// Connect to database
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(db.DSN()))
	if err != nil {
		log.Fatalw("invalid database configuration", "error", err, "database", db.Redacted())
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalw("failed to connect to database", "error", err, "database", db.Redacted())
	}

	log.Infow("connected to database", "database", db.Redacted())

	if err := postgres.NewInitializer(postgres.NewTxManager(pool)).Initialize(ctx); err != nil {
		log.Fatalw("failed to seed database", "error", err)
	}

	log.Info("seeding completed successfully")
}
