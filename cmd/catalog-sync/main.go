package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/catalog-sync/internal/config"
	"github.com/tuanvumaihuynh/catalog-sync/internal/feed"
	"github.com/tuanvumaihuynh/catalog-sync/internal/log"
	"github.com/tuanvumaihuynh/catalog-sync/internal/repository"
	"github.com/tuanvumaihuynh/catalog-sync/internal/service"
	"github.com/tuanvumaihuynh/catalog-sync/internal/storage/db"
)

// catalog-sync runs a single reconciliation pass and exits. Useful from an
// external cron or CI job when the embedded scheduler is disabled.
func main() {
	if err := run(); err != nil {
		fmt.Printf("error running sync: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		Feed     config.Feed
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	feedClient := feed.NewContentfulClient(cfg.Feed)
	productRepository := repository.NewProductRepository(dbClient)
	syncService := service.NewSyncService(dbClient, logger, feedClient, productRepository)

	result, err := syncService.SyncCatalog(ctx)
	if err != nil {
		return fmt.Errorf("error syncing catalog: %w", err)
	}

	logger.InfoContext(ctx, "sync completed",
		slog.Int("fetched", result.Fetched),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped()),
		slog.Int("failed", result.Failed),
	)

	return nil
}
