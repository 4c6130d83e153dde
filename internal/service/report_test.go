package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
	"github.com/tuanvumaihuynh/catalog-sync/internal/repository"
	"github.com/tuanvumaihuynh/catalog-sync/internal/service"
	"github.com/tuanvumaihuynh/catalog-sync/pkg/ptr"
)

func TestDeletedPercentage(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report the deleted share of the whole catalog", func(t *testing.T) {
		repo := &funcProductRepo{
			count: func(_ context.Context, filters ...repository.Filter) (int, error) {
				if len(filters) == 0 {
					return 10, nil
				}
				assert.Equal(t, []repository.Filter{repository.StatusIs(model.StatusDeleted)}, filters)
				return 3, nil
			},
		}
		svc := service.NewReportService(repo)

		message, err := svc.DeletedPercentage(ctx)
		require.NoError(t, err)

		assert.Equal(t, "The percentage of deleted products is 30.00%", message)
	})

	t.Run("Should report zero for an empty catalog", func(t *testing.T) {
		repo := &funcProductRepo{
			count: func(context.Context, ...repository.Filter) (int, error) { return 0, nil },
		}
		svc := service.NewReportService(repo)

		message, err := svc.DeletedPercentage(ctx)
		require.NoError(t, err)

		assert.Equal(t, "The percentage of deleted products is 0.00%", message)
	})
}

func TestNonDeletedPercentage(t *testing.T) {
	ctx := context.Background()

	t.Run("Should use the whole catalog as denominator", func(t *testing.T) {
		var matchedFilters []repository.Filter
		repo := &funcProductRepo{
			count: func(_ context.Context, filters ...repository.Filter) (int, error) {
				if len(filters) == 0 {
					return 10, nil
				}
				matchedFilters = filters
				return 4, nil
			},
		}
		svc := service.NewReportService(repo)

		percentage, err := svc.NonDeletedPercentage(ctx, service.ReportFilter{WithPrice: ptr.New(true)})
		require.NoError(t, err)

		assert.InDelta(t, 40.0, percentage, 0.001)
		assert.Equal(t, []repository.Filter{
			repository.StatusIs(model.StatusActive),
			repository.HasPrice(true),
		}, matchedFilters)
	})

	t.Run("Should apply the date range only when both ends are set", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		var matchedFilters []repository.Filter
		repo := &funcProductRepo{
			count: func(_ context.Context, filters ...repository.Filter) (int, error) {
				if len(filters) > 0 {
					matchedFilters = filters
				}
				return 5, nil
			},
		}
		svc := service.NewReportService(repo)

		_, err := svc.NonDeletedPercentage(ctx, service.ReportFilter{StartDate: &start})
		require.NoError(t, err)

		assert.Equal(t, []repository.Filter{repository.StatusIs(model.StatusActive)}, matchedFilters)
	})

	t.Run("Should report zero for an empty catalog", func(t *testing.T) {
		repo := &funcProductRepo{
			count: func(context.Context, ...repository.Filter) (int, error) { return 0, nil },
		}
		svc := service.NewReportService(repo)

		percentage, err := svc.NonDeletedPercentage(ctx, service.ReportFilter{})
		require.NoError(t, err)

		assert.Zero(t, percentage)
	})
}

func TestGenerateCustomReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Should count across deleted and active rows", func(t *testing.T) {
		var gotFilters []repository.Filter
		repo := &funcProductRepo{
			count: func(_ context.Context, filters ...repository.Filter) (int, error) {
				gotFilters = filters
				return 7, nil
			},
		}
		svc := service.NewReportService(repo)

		report, err := svc.GenerateCustomReport(ctx, service.ReportFilter{
			Brand: ptr.New("Apple"),
			Stock: ptr.New(3),
		})
		require.NoError(t, err)

		assert.Equal(t, 7, report.Count)
		// No status filter: the custom report spans the whole catalog.
		assert.Equal(t, []repository.Filter{
			repository.BrandIs("Apple"),
			repository.StockIs(3),
		}, gotFilters)
	})

	t.Run("Should describe every applied filter in order", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

		repo := &funcProductRepo{
			count: func(context.Context, ...repository.Filter) (int, error) { return 2, nil },
		}
		svc := service.NewReportService(repo)

		report, err := svc.GenerateCustomReport(ctx, service.ReportFilter{
			WithPrice: ptr.New(false),
			StartDate: &start,
			EndDate:   &end,
			Brand:     ptr.New("Apple"),
			Model:     ptr.New("Mi Watch"),
			Color:     ptr.New("Black"),
			Stock:     ptr.New(3),
		})
		require.NoError(t, err)

		assert.Equal(t,
			"The custom report generated successfully."+
				" The report is filtered by date range: 2024-03-01 to 2024-03-31."+
				" The report includes products from the brand: Apple."+
				" The report includes products of model: Mi Watch."+
				" The report includes products of color: Black."+
				" The report includes products with 3 stock."+
				" The report is filtered by products without a price."+
				" Total products matching the filter criteria: 2.",
			report.Message)
	})

	t.Run("Should describe an unfiltered report with just the total", func(t *testing.T) {
		repo := &funcProductRepo{
			count: func(context.Context, ...repository.Filter) (int, error) { return 11, nil },
		}
		svc := service.NewReportService(repo)

		report, err := svc.GenerateCustomReport(ctx, service.ReportFilter{})
		require.NoError(t, err)

		assert.Equal(t,
			"The custom report generated successfully. Total products matching the filter criteria: 11.",
			report.Message)
	})
}
