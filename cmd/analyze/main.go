// Command analyze runs the pipeline once against a transaction source and
// writes every analytical view as a report file.
//
// Usage:
//
//	analyze -source "Online Retail.xlsx" -months 1,2,3 -out reports -format csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"retailpulse/internal/analytics"
	"retailpulse/internal/config"
	"retailpulse/internal/exporter"
	"retailpulse/internal/infrastructure"
	"retailpulse/internal/loader"
	"retailpulse/internal/pipeline"
	"retailpulse/internal/services"
	"retailpulse/pkg/contracts"
)

func main() {
	var (
		sourceFile  = flag.String("source", "", "transaction workbook or CSV (defaults to configured source)")
		sheet       = flag.String("sheet", "", "workbook sheet to read (default: auto-detect)")
		monthsArg   = flag.String("months", "", "comma-separated month numbers 1-12 (default: all)")
		outDir      = flag.String("out", "", "report output directory (defaults to configured reports dir)")
		format      = flag.String("format", "csv", "report format: csv or json")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	if *sourceFile == "" {
		*sourceFile = cfg.Source.File
	}
	if *sheet == "" {
		*sheet = cfg.Source.Sheet
	}
	if *outDir == "" {
		*outDir = cfg.Reports.Dir
	}

	months, err := parseMonths(*monthsArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -months: %v\n", err)
		os.Exit(2)
	}

	ctx := context.Background()

	source := loader.Source{File: *sourceFile, Sheet: *sheet}
	cache := pipeline.NewDatasetCache(loader.Load, logger)
	engine := analytics.NewEngine(cfg.Analytics.DominantCountry, cfg.Analytics.TopN, logger)
	service := services.NewAnalyticsService(source, cache, engine, logger)

	dash, err := service.Dashboard(ctx, months)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrEmptyFilterResult):
			fmt.Fprintf(os.Stderr, "no transactions match months %v; adjust the selection\n", months)
			os.Exit(3)
		case errors.Is(err, loader.ErrSourceUnavailable):
			fmt.Fprintf(os.Stderr, "source unavailable: %v\n", err)
			os.Exit(4)
		default:
			fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
			os.Exit(1)
		}
	}

	for _, warning := range dash.FilterWarnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	writer := exporter.NewReportWriter(*outDir)
	if err := writer.WriteDashboard(dash, exporter.Format(*format)); err != nil {
		fmt.Fprintf(os.Stderr, "write reports: %v\n", err)
		os.Exit(1)
	}

	logger.Info("reports written",
		slog.String("dir", *outDir),
		slog.String("format", *format),
		slog.Int("rows", dash.RowCount),
		slog.Float64("total_sales", dash.Summary.TotalSales),
	)
	fmt.Printf("analyzed %d rows; total sales %.2f across %d orders from %d customers\n",
		dash.RowCount, dash.Summary.TotalSales, dash.Summary.TotalOrders, dash.Summary.TotalCustomers)
}

func parseMonths(arg string) ([]int, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}
	var months []int
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		if m < 1 || m > 12 {
			return nil, fmt.Errorf("month %d outside 1-12", m)
		}
		months = append(months, m)
	}
	return months, nil
}
