// Package analytics is the aggregation engine: a set of independent pure
// reductions over a filtered, non-empty slice of cleaned transaction lines.
// Each view is computable in isolation; the engine fans them out in parallel
// since none of them mutates shared state.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"retailpulse/pkg/contracts/domain"
)

// Engine computes every analytical view from a filtered dataset. All
// reductions assume a schema-valid, non-empty input; emptiness is gated by
// the time filter before the engine runs.
type Engine struct {
	dominantCountry string
	topN            int
	logger          *slog.Logger
}

// NewEngine creates an engine. dominantCountry is the label whose presence
// switches the country-share view to the rest-of-world branch; topN is the
// ranking size for products and countries.
func NewEngine(dominantCountry string, topN int, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		dominantCountry: dominantCountry,
		topN:            topN,
		logger:          logger,
	}
}

// Compute reduces the filtered dataset into the full dashboard of views. The
// reductions run in parallel, one goroutine per view; the first schema
// defect or context cancellation aborts the batch.
func (e *Engine) Compute(ctx context.Context, lines []domain.CleanTransactionLine) (*domain.Dashboard, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("aggregation requires a non-empty dataset")
	}

	start := time.Now()
	dash := &domain.Dashboard{RowCount: len(lines)}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dash.Summary = Summarize(lines)
		return gctx.Err()
	})
	g.Go(func() error {
		dash.MonthlyTrend = MonthlyTrend(lines)
		return gctx.Err()
	})
	g.Go(func() error {
		totals, err := WeekdayTotals(lines)
		if err != nil {
			return err
		}
		dash.WeekdaySales = totals
		return gctx.Err()
	})
	g.Go(func() error {
		matrix, err := WeekdayHourMatrix(lines)
		if err != nil {
			return err
		}
		dash.HourlyMatrix = *matrix
		return gctx.Err()
	})
	g.Go(func() error {
		dash.TopByQuantity = TopProductsByQuantity(lines, e.topN)
		dash.TopByRevenue = TopProductsByRevenue(lines, e.topN)
		return gctx.Err()
	})
	g.Go(func() error {
		dash.CountryShares = CountryRevenueShares(lines, e.dominantCountry, e.topN)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "dashboard computed",
		slog.Int("rows", len(lines)),
		slog.String("country_branch", string(dash.CountryShares.Branch)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return dash, nil
}
