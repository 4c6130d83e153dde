package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-sync/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
	"github.com/tuanvumaihuynh/catalog-sync/internal/repository"
	"github.com/tuanvumaihuynh/catalog-sync/internal/service"
)

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject page below one", func(t *testing.T) {
		svc := service.NewCatalogService(&funcProductRepo{})

		_, _, err := svc.ListProducts(ctx, service.ListProductsParams{Page: 0, Limit: 5})
		assert.ErrorIs(t, err, apperr.InvalidPageErr)
	})

	t.Run("Should reject limit below one", func(t *testing.T) {
		svc := service.NewCatalogService(&funcProductRepo{})

		_, _, err := svc.ListProducts(ctx, service.ListProductsParams{Page: 1, Limit: 0})
		assert.ErrorIs(t, err, apperr.InvalidLimitErr)
	})

	t.Run("Should pass no filters when no params are set", func(t *testing.T) {
		var gotFilters []repository.Filter
		svc := service.NewCatalogService(&funcProductRepo{
			queryPage: func(_ context.Context, filters []repository.Filter, page, limit int) ([]model.Product, int, error) {
				gotFilters = filters
				assert.Equal(t, 1, page)
				assert.Equal(t, 5, limit)
				return []model.Product{}, 0, nil
			},
		})

		_, _, err := svc.ListProducts(ctx, service.ListProductsParams{Page: 1, Limit: 5})
		require.NoError(t, err)
		assert.Empty(t, gotFilters)
	})

	t.Run("Should map every set param to its filter", func(t *testing.T) {
		minPrice, maxPrice := 10.0, 99.5

		var gotFilters []repository.Filter
		svc := service.NewCatalogService(&funcProductRepo{
			queryPage: func(_ context.Context, filters []repository.Filter, _, _ int) ([]model.Product, int, error) {
				gotFilters = filters
				return []model.Product{}, 0, nil
			},
		})

		_, _, err := svc.ListProducts(ctx, service.ListProductsParams{
			Name:     "watch",
			Category: "Smartwatch",
			MinPrice: &minPrice,
			MaxPrice: &maxPrice,
			Page:     2,
			Limit:    5,
		})
		require.NoError(t, err)

		assert.Equal(t, []repository.Filter{
			repository.NameContains("watch"),
			repository.CategoryIs("Smartwatch"),
			repository.PriceAtLeast(10.0),
			repository.PriceAtMost(99.5),
		}, gotFilters)
	})

	t.Run("Should return page rows and total", func(t *testing.T) {
		products := []model.Product{{ID: "p1"}, {ID: "p2"}}
		svc := service.NewCatalogService(&funcProductRepo{
			queryPage: func(context.Context, []repository.Filter, int, int) ([]model.Product, int, error) {
				return products, 42, nil
			},
		})

		got, total, err := svc.ListProducts(ctx, service.ListProductsParams{Page: 1, Limit: 2})
		require.NoError(t, err)

		assert.Equal(t, products, got)
		assert.Equal(t, 42, total)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should soft delete by id", func(t *testing.T) {
		repo := newMemProductRepo(model.Product{ID: "p1", Status: model.StatusActive})
		svc := service.NewCatalogService(repo)

		require.NoError(t, svc.DeleteProduct(ctx, "p1"))
		assert.Equal(t, model.StatusDeleted, repo.products["p1"].Status)
	})

	t.Run("Should surface not found for an unknown id", func(t *testing.T) {
		svc := service.NewCatalogService(newMemProductRepo())

		err := svc.DeleteProduct(ctx, "missing")
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})
}
