package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/catalog-sync/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
	"github.com/tuanvumaihuynh/catalog-sync/internal/service"
)

type listProductsQuery struct {
	Page     int `validate:"gte=1"`
	Limit    int `validate:"gte=1"`
	Name     string
	Category string
	MinPrice *float64 `validate:"omitempty,gte=0"`
	MaxPrice *float64 `validate:"omitempty,gte=0"`
}

type paginatedProductsResponse struct {
	Data  []model.Product `json:"data"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type syncResponse struct {
	InsertedCount int `json:"insertedCount"`
	SkippedCount  int `json:"skippedCount"`
}

func (s *Service) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseListProductsQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	products, total, err := s.catalogSvc.ListProducts(r.Context(), service.ListProductsParams{
		Name:     query.Name,
		Category: query.Category,
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
		Page:     query.Page,
		Limit:    query.Limit,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, paginatedProductsResponse{
		Data:  products,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}

func (s *Service) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.catalogSvc.DeleteProduct(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleSyncCatalog(w http.ResponseWriter, r *http.Request) {
	result, err := s.syncSvc.SyncCatalog(r.Context())
	if err != nil {
		s.metrics.SyncRunsTotal.WithLabelValues("error").Inc()
		s.respondError(w, r, err)
		return
	}

	s.metrics.SyncRunsTotal.WithLabelValues("ok").Inc()
	s.metrics.SyncEntriesTotal.WithLabelValues("inserted").Add(float64(result.Inserted))
	s.metrics.SyncEntriesTotal.WithLabelValues("skipped").Add(float64(result.Skipped()))
	s.metrics.SyncEntriesTotal.WithLabelValues("failed").Add(float64(result.Failed))

	s.respondJSON(w, r, http.StatusOK, syncResponse{
		InsertedCount: result.Inserted,
		SkippedCount:  result.Skipped(),
	})
}

// parseListProductsQuery coerces and validates the listing query parameters.
// Absent page/limit default to the first page with the maximum page size;
// out-of-range values are rejected, not clamped.
func (s *Service) parseListProductsQuery(r *http.Request) (listProductsQuery, error) {
	q := listProductsQuery{
		Page:     1,
		Limit:    s.cfg.MaxPageSize,
		Name:     r.URL.Query().Get("name"),
		Category: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperr.ValidationErr.WrapParent(fmt.Errorf("invalid page: %w", err))
		}
		q.Page = page
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperr.ValidationErr.WrapParent(fmt.Errorf("invalid limit: %w", err))
		}
		q.Limit = limit
	}

	minPrice, err := parseFloatParam(r, "minPrice")
	if err != nil {
		return q, err
	}
	q.MinPrice = minPrice

	maxPrice, err := parseFloatParam(r, "maxPrice")
	if err != nil {
		return q, err
	}
	q.MaxPrice = maxPrice

	if err := s.validator.Validate(q); err != nil {
		return q, err
	}

	if q.Limit > s.cfg.MaxPageSize {
		return q, apperr.PageSizeExceededErr
	}

	return q, nil
}

func parseFloatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.ValidationErr.WrapParent(fmt.Errorf("invalid %s: %w", name, err))
	}
	return &v, nil
}
