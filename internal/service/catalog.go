package service

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/catalog-sync/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
	"github.com/tuanvumaihuynh/catalog-sync/internal/repository"
)

// ListProductsParams carries the optional listing filters plus pagination.
// Zero-valued filters are not applied. Page is 1-indexed; the limit ceiling
// is enforced at the HTTP boundary, not here.
type ListProductsParams struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

type CatalogService interface {
	// ListProducts returns one page of active products matching the filters
	// and the total matching count.
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, int, error)
	// DeleteProduct soft-deletes a product. Deletion is authoritative: the
	// sync path will never re-create the row.
	DeleteProduct(ctx context.Context, id string) error
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, int, error) {
	if params.Page < 1 {
		return nil, 0, apperr.InvalidPageErr
	}
	if params.Limit < 1 {
		return nil, 0, apperr.InvalidLimitErr
	}

	var filters []repository.Filter
	if params.Name != "" {
		filters = append(filters, repository.NameContains(params.Name))
	}
	if params.Category != "" {
		filters = append(filters, repository.CategoryIs(params.Category))
	}
	if params.MinPrice != nil {
		filters = append(filters, repository.PriceAtLeast(*params.MinPrice))
	}
	if params.MaxPrice != nil {
		filters = append(filters, repository.PriceAtMost(*params.MaxPrice))
	}

	products, total, err := s.productRepo.QueryPage(ctx, filters, params.Page, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("query product page: %w", err)
	}

	return products, total, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}

	return nil
}
