package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/catalog-sync/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-sync/internal/feed"
	"github.com/tuanvumaihuynh/catalog-sync/internal/repository"
	"github.com/tuanvumaihuynh/catalog-sync/internal/storage/db"
)

// SyncResult tallies one reconciliation pass.
type SyncResult struct {
	Fetched         int `json:"fetched"`
	Inserted        int `json:"inserted"`
	SkippedExisting int `json:"skippedExisting"`
	SkippedDeleted  int `json:"skippedDeleted"`
	Failed          int `json:"failed"`
}

// Skipped is the total number of entries that were present but not written.
func (r SyncResult) Skipped() int {
	return r.SkippedExisting + r.SkippedDeleted
}

type SyncService interface {
	// SyncCatalog runs one fetch-normalize-reconcile pass. It fails only when
	// the feed itself fails; per-entry problems are counted and logged but
	// never abort the batch.
	SyncCatalog(ctx context.Context) (SyncResult, error)
}

type syncService struct {
	db          db.DB
	logger      *slog.Logger
	feedClient  feed.Client
	productRepo repository.ProductRepository
}

func NewSyncService(
	db db.DB,
	logger *slog.Logger,
	feedClient feed.Client,
	productRepo repository.ProductRepository,
) SyncService {
	return &syncService{
		db:          db,
		logger:      logger.With(slog.String("service", "sync")),
		feedClient:  feedClient,
		productRepo: productRepo,
	}
}

func (s *syncService) SyncCatalog(ctx context.Context) (SyncResult, error) {
	entries, err := s.feedClient.FetchEntries(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch entries: %w", err)
	}

	result := SyncResult{Fetched: len(entries)}

	s.logger.InfoContext(ctx, "fetched entries from content source", slog.Int("count", len(entries)))

	for _, entry := range entries {
		outcome, err := s.reconcile(ctx, entry)
		if err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "error reconciling entry",
				slog.String("entry_id", entry.ID),
				slog.Any("error", err),
			)
			continue
		}

		switch outcome {
		case outcomeInserted:
			result.Inserted++
		case outcomeSkippedExisting:
			result.SkippedExisting++
		case outcomeSkippedDeleted:
			result.SkippedDeleted++
			s.logger.WarnContext(ctx, "skipping deleted product", slog.String("product_id", entry.ID))
		}
	}

	s.logger.InfoContext(ctx, "catalog synchronized",
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped()),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}

type reconcileOutcome uint8

const (
	outcomeInserted reconcileOutcome = iota
	outcomeSkippedExisting
	outcomeSkippedDeleted
)

// reconcile decides insert / skip-existing / skip-deleted for one entry,
// keyed by existence of the id including soft-deleted rows. Sync is
// insert-only: an existing active row is never overwritten, and a deleted row
// is never resurrected.
func (s *syncService) reconcile(ctx context.Context, entry feed.Entry) (reconcileOutcome, error) {
	if entry.ID == "" {
		return 0, errors.New("entry has no id")
	}

	product := feed.Normalize(entry)

	var outcome reconcileOutcome
	err := s.db.WithTx(ctx, func(txDB db.DB) error {
		repo := s.productRepo.WithDB(txDB)

		existing, err := repo.FindByID(ctx, product.ID, true)
		switch {
		case err == nil:
			if existing.Deleted() {
				outcome = outcomeSkippedDeleted
			} else {
				outcome = outcomeSkippedExisting
			}
			return nil
		case errors.Is(err, apperr.ProductNotFoundErr):
			// fall through to insert
		default:
			return fmt.Errorf("find product: %w", err)
		}

		if _, err := repo.Insert(ctx, product); err != nil {
			// A concurrent pass won the insert; the primary key is the source
			// of truth, the pre-check above is only an optimization.
			if errors.Is(err, apperr.ProductAlreadyExistsErr) {
				outcome = outcomeSkippedExisting
				return nil
			}
			return fmt.Errorf("insert product: %w", err)
		}

		outcome = outcomeInserted
		return nil
	})
	if err != nil {
		return 0, err
	}

	return outcome, nil
}
