// Package http holds the chi handlers that expose the analytics pipeline to
// the presentation layer. Handlers parse and validate requests, delegate to
// the analytics service and render plain JSON aggregates; no formatting is
// applied to any value.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"retailpulse/internal/analytics"
	apierrors "retailpulse/internal/errors"
	"retailpulse/internal/loader"
	"retailpulse/internal/pipeline"
	"retailpulse/internal/services"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	service      *services.AnalyticsService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *services.AnalyticsService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "dashboard")),
		errorHandler: apierrors.NewErrorHandler(logger),
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the dashboard routes.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.GetDashboard)
		r.Get("/summary", h.GetSummary)
		r.Get("/months", h.GetMonths)
		r.Post("/refresh", h.Refresh)
	})
}

// dashboardRequest is the validated month selection of a dashboard request.
type dashboardRequest struct {
	Months []int `validate:"dive,min=1,max=12"`
}

// GetDashboard handles GET /api/v1/dashboard?months=1,2,3. An absent or
// empty months parameter selects the full dataset (the fallback is flagged
// in the response warnings).
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := parseDashboardRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("months", "months must be integers between 1 and 12"))
		return
	}

	h.logger.InfoContext(ctx, "computing dashboard", slog.Any("months", req.Months))

	dash, err := h.service.Dashboard(ctx, req.Months)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapPipelineError(err, req.Months))
		return
	}

	render.JSON(w, r, dash)
}

// GetSummary handles GET /api/v1/dashboard/summary?months=1,2,3 and returns
// just the headline KPIs for the selection.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	req, err := parseDashboardRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("months", "months must be integers between 1 and 12"))
		return
	}

	dash, err := h.service.Dashboard(r.Context(), req.Months)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapPipelineError(err, req.Months))
		return
	}
	render.JSON(w, r, dash.Summary)
}

// GetMonths handles GET /api/v1/dashboard/months and returns the distinct
// months present in the data, for populating filter widgets.
func (h *DashboardHandler) GetMonths(w http.ResponseWriter, r *http.Request) {
	months, err := h.service.MonthsAvailable(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapPipelineError(err, nil))
		return
	}
	render.JSON(w, r, map[string]interface{}{"months": months})
}

// Refresh handles POST /api/v1/dashboard/refresh: drops the cached base
// dataset so the next request re-reads the source.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.service.Invalidate()
	h.logger.InfoContext(r.Context(), "base dataset cache invalidated")
	render.JSON(w, r, map[string]string{"status": "cache invalidated"})
}

// parseDashboardRequest reads the months query parameter, accepting both
// repeated parameters and comma-separated lists.
func parseDashboardRequest(r *http.Request) (*dashboardRequest, error) {
	var months []int
	for _, raw := range r.URL.Query()["months"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			m, err := strconv.Atoi(part)
			if err != nil {
				return nil, err
			}
			months = append(months, m)
		}
	}
	return &dashboardRequest{Months: months}, nil
}

// mapPipelineError converts pipeline sentinels to their API errors.
func mapPipelineError(err error, months []int) error {
	switch {
	case errors.Is(err, pipeline.ErrEmptyFilterResult):
		return apierrors.EmptyFilterResultError(months)
	case errors.Is(err, loader.ErrSourceUnavailable):
		return apierrors.SourceUnavailableError(err)
	case errors.Is(err, analytics.ErrSchemaDefect):
		return apierrors.SchemaDefectError(err)
	default:
		return err
	}
}
