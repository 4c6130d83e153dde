package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tuanvumaihuynh/catalog-sync/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-sync/internal/service"
)

type deletedPercentageResponse struct {
	Message string `json:"message"`
}

type nonDeletedPercentageResponse struct {
	Percentage float64 `json:"percentage"`
}

func (s *Service) handleDeletedPercentage(w http.ResponseWriter, r *http.Request) {
	message, err := s.reportSvc.DeletedPercentage(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, deletedPercentageResponse{Message: message})
}

func (s *Service) handleNonDeletedPercentage(w http.ResponseWriter, r *http.Request) {
	// The non-deleted report treats the range as whole days, so the end bound
	// is stretched to the last instant of its day.
	filter, err := parseReportFilter(r, true)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	percentage, err := s.reportSvc.NonDeletedPercentage(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, nonDeletedPercentageResponse{Percentage: percentage})
}

func (s *Service) handleCustomReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReportFilter(r, false)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	report, err := s.reportSvc.GenerateCustomReport(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, report)
}

func parseReportFilter(r *http.Request, expandEndOfDay bool) (service.ReportFilter, error) {
	var filter service.ReportFilter

	query := r.URL.Query()

	if raw := query.Get("withPrice"); raw != "" {
		withPrice, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperr.ValidationErr.WrapParent(fmt.Errorf("invalid withPrice: %w", err))
		}
		filter.WithPrice = &withPrice
	}

	startDate, err := parseDateParam(query.Get("startDate"), "startDate")
	if err != nil {
		return filter, err
	}
	filter.StartDate = startDate

	endDate, err := parseDateParam(query.Get("endDate"), "endDate")
	if err != nil {
		return filter, err
	}
	if endDate != nil && expandEndOfDay {
		end := endDate.Add(24*time.Hour - time.Millisecond)
		endDate = &end
	}
	filter.EndDate = endDate

	if brand := query.Get("brand"); brand != "" {
		filter.Brand = &brand
	}
	if productModel := query.Get("model"); productModel != "" {
		filter.Model = &productModel
	}
	if color := query.Get("color"); color != "" {
		filter.Color = &color
	}
	if raw := query.Get("stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return filter, apperr.ValidationErr.WrapParent(fmt.Errorf("invalid stock: %w", err))
		}
		filter.Stock = &stock
	}

	return filter, nil
}

func parseDateParam(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, apperr.ValidationErr.WrapParent(fmt.Errorf("invalid %s: %w", name, err))
	}
	return &t, nil
}
