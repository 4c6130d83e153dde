package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/tuanvumaihuynh/catalog-sync/internal/config"
	"github.com/tuanvumaihuynh/catalog-sync/internal/service"
)

// Service triggers a catalog sync on a cron schedule. The on-demand trigger
// shares the same sync service but is exposed over HTTP; this service only
// owns the timed path, and a tick's result is logged and discarded.
type Service struct {
	cfg     config.Scheduler
	logger  *slog.Logger
	syncSvc service.SyncService
	cron    *cron.Cron
}

func NewService(
	cfg config.Scheduler,
	logger *slog.Logger,
	syncSvc service.SyncService,
) *Service {
	return &Service{
		cfg:     cfg,
		logger:  logger.With(slog.String("service", "scheduler")),
		syncSvc: syncSvc,
		cron:    cron.New(),
	}
}

type CleanupFunc func()

// Run starts the schedule and returns a cleanup function that stops it,
// waiting for an in-flight run to finish.
func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if _, err := s.cron.AddFunc(s.cfg.Spec, func() { s.tick(ctx) }); err != nil {
		return nil, fmt.Errorf("add cron entry %q: %w", s.cfg.Spec, err)
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "sync schedule started", slog.String("spec", s.cfg.Spec))

	return func() {
		<-s.cron.Stop().Done()
	}, nil
}

func (s *Service) tick(ctx context.Context) {
	result, err := s.syncSvc.SyncCatalog(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled sync failed", slog.Any("error", err))
		return
	}

	s.logger.InfoContext(ctx, "scheduled sync completed",
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped()),
		slog.Int("failed", result.Failed),
	)
}
