package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
	"github.com/tuanvumaihuynh/catalog-sync/internal/repository"
)

// ReportFilter carries the optional predicates for aggregate reports. The
// date range is applied only when both ends are set.
type ReportFilter struct {
	WithPrice *bool
	StartDate *time.Time
	EndDate   *time.Time
	Brand     *string
	Model     *string
	Color     *string
	Stock     *int
}

// CustomReport is the result of a custom filtered count.
type CustomReport struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type ReportService interface {
	// DeletedPercentage reports the share of soft-deleted rows as a message
	// string. An empty catalog reports 0% rather than dividing by zero.
	DeletedPercentage(ctx context.Context) (string, error)
	// NonDeletedPercentage reports the share of the whole catalog that is
	// active and matches the filter. The denominator is the total row count
	// including deleted rows, not the filtered-active count; callers depend
	// on that reading.
	NonDeletedPercentage(ctx context.Context, filter ReportFilter) (float64, error)
	// GenerateCustomReport counts rows matching an arbitrary filter
	// combination, deleted rows included, and describes the filters applied.
	GenerateCustomReport(ctx context.Context, filter ReportFilter) (CustomReport, error)
}

type reportService struct {
	productRepo repository.ProductRepository
}

func NewReportService(productRepo repository.ProductRepository) ReportService {
	return &reportService{productRepo: productRepo}
}

func (s *reportService) DeletedPercentage(ctx context.Context) (string, error) {
	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count products: %w", err)
	}

	deleted, err := s.productRepo.Count(ctx, repository.StatusIs(model.StatusDeleted))
	if err != nil {
		return "", fmt.Errorf("count deleted products: %w", err)
	}

	return fmt.Sprintf("The percentage of deleted products is %.2f%%", percentage(deleted, total)), nil
}

func (s *reportService) NonDeletedPercentage(ctx context.Context, filter ReportFilter) (float64, error) {
	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	filters := append([]repository.Filter{repository.StatusIs(model.StatusActive)}, reportFilters(filter)...)

	matched, err := s.productRepo.Count(ctx, filters...)
	if err != nil {
		return 0, fmt.Errorf("count non-deleted products: %w", err)
	}

	return percentage(matched, total), nil
}

func (s *reportService) GenerateCustomReport(ctx context.Context, filter ReportFilter) (CustomReport, error) {
	count, err := s.productRepo.Count(ctx, reportFilters(filter)...)
	if err != nil {
		return CustomReport{}, fmt.Errorf("count products: %w", err)
	}

	return CustomReport{
		Message: customReportMessage(count, filter),
		Count:   count,
	}, nil
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func reportFilters(filter ReportFilter) []repository.Filter {
	var filters []repository.Filter

	if filter.WithPrice != nil {
		filters = append(filters, repository.HasPrice(*filter.WithPrice))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		filters = append(filters, repository.CreatedBetween{
			Start: *filter.StartDate,
			End:   *filter.EndDate,
		})
	}
	if filter.Brand != nil {
		filters = append(filters, repository.BrandIs(*filter.Brand))
	}
	if filter.Model != nil {
		filters = append(filters, repository.ModelIs(*filter.Model))
	}
	if filter.Color != nil {
		filters = append(filters, repository.ColorIs(*filter.Color))
	}
	if filter.Stock != nil {
		filters = append(filters, repository.StockIs(*filter.Stock))
	}

	return filters
}

func customReportMessage(count int, filter ReportFilter) string {
	message := "The custom report generated successfully."

	if filter.StartDate != nil && filter.EndDate != nil {
		message += fmt.Sprintf(" The report is filtered by date range: %s to %s.",
			filter.StartDate.Format(time.DateOnly), filter.EndDate.Format(time.DateOnly))
	}
	if filter.Brand != nil {
		message += fmt.Sprintf(" The report includes products from the brand: %s.", *filter.Brand)
	}
	if filter.Model != nil {
		message += fmt.Sprintf(" The report includes products of model: %s.", *filter.Model)
	}
	if filter.Color != nil {
		message += fmt.Sprintf(" The report includes products of color: %s.", *filter.Color)
	}
	if filter.Stock != nil {
		message += fmt.Sprintf(" The report includes products with %d stock.", *filter.Stock)
	}
	if filter.WithPrice != nil {
		if *filter.WithPrice {
			message += " The report is filtered by products with a price."
		} else {
			message += " The report is filtered by products without a price."
		}
	}

	message += fmt.Sprintf(" Total products matching the filter criteria: %d.", count)

	return message
}
