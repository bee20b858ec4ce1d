// Package services wires the pipeline stages behind the transport and CLI
// surfaces: one service owns the source location, the dataset cache and the
// aggregation engine, and exposes per-selection dashboard computation.
package services

import (
	"context"
	"log/slog"
	"time"

	"retailpulse/internal/analytics"
	"retailpulse/internal/loader"
	"retailpulse/internal/pipeline"
	"retailpulse/pkg/contracts/domain"
)

// AnalyticsService runs the pipeline end to end for a month selection:
// cached base dataset -> time filter -> aggregation engine. The base dataset
// is built once per source content; everything after the cache is recomputed
// per call and never persisted.
type AnalyticsService struct {
	source loader.Source
	cache  *pipeline.DatasetCache
	engine *analytics.Engine
	logger *slog.Logger
}

// NewAnalyticsService creates the service. The cache is passed in as a
// collaborator so tests can inject their own load function and callers can
// share one cache across surfaces.
func NewAnalyticsService(source loader.Source, cache *pipeline.DatasetCache, engine *analytics.Engine, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		source: source,
		cache:  cache,
		engine: engine,
		logger: logger.With(slog.String("component", "analytics_service")),
	}
}

// Dashboard computes every analytical view for the given month selection.
// An empty selection falls back to the full dataset (flagged in the
// dashboard's warnings); a selection matching nothing returns
// pipeline.ErrEmptyFilterResult; a source failure returns
// loader.ErrSourceUnavailable.
func (s *AnalyticsService) Dashboard(ctx context.Context, months []int) (*domain.Dashboard, error) {
	start := time.Now()

	dataset, err := s.cache.Get(ctx, s.source)
	if err != nil {
		return nil, err
	}

	filtered, warnings, err := pipeline.FilterByMonths(dataset, months)
	if err != nil {
		return nil, err
	}

	dash, err := s.engine.Compute(ctx, filtered)
	if err != nil {
		return nil, err
	}
	dash.FilterWarnings = warnings

	s.logger.InfoContext(ctx, "dashboard ready",
		slog.Any("months", months),
		slog.Int("filtered_rows", len(filtered)),
		slog.Int("base_rows", len(dataset)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return dash, nil
}

// MonthsAvailable returns the sorted distinct months present in the base
// dataset, for populating filter options.
func (s *AnalyticsService) MonthsAvailable(ctx context.Context) ([]int, error) {
	dataset, err := s.cache.Get(ctx, s.source)
	if err != nil {
		return nil, err
	}
	return pipeline.MonthsPresent(dataset), nil
}

// Invalidate drops the cached base dataset; the next call rebuilds it from
// the source.
func (s *AnalyticsService) Invalidate() {
	s.cache.Invalidate()
}
