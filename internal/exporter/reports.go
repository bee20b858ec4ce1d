package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"retailpulse/pkg/contracts/domain"
)

// Format selects the report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ReportWriter exports a full dashboard as one file per view.
type ReportWriter struct {
	dir string
	csv *CSVWriter
}

// NewReportWriter creates a report writer rooted at dir.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir, csv: NewCSVWriter(dir)}
}

// WriteDashboard writes every view of the dashboard in the given format.
func (w *ReportWriter) WriteDashboard(dash *domain.Dashboard, format Format) error {
	switch format {
	case FormatJSON:
		return w.writeJSONReports(dash)
	case FormatCSV:
		return w.writeCSVReports(dash)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func (w *ReportWriter) writeJSONReports(dash *domain.Dashboard) error {
	views := map[string]interface{}{
		"summary.json":         dash.Summary,
		"monthly_trend.json":   dash.MonthlyTrend,
		"weekday_sales.json":   dash.WeekdaySales,
		"hourly_matrix.json":   dash.HourlyMatrix,
		"top_by_quantity.json": dash.TopByQuantity,
		"top_by_revenue.json":  dash.TopByRevenue,
		"country_shares.json":  dash.CountryShares,
	}
	for name, view := range views {
		if err := w.writeJSON(name, view); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeJSON(name string, view interface{}) error {
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (w *ReportWriter) writeCSVReports(dash *domain.Dashboard) error {
	if err := w.csv.WriteCSV("summary.csv", WriteOptions{
		Headers: []string{"TotalSales", "TotalOrders", "TotalCustomers", "AvgOrderValue"},
		Records: [][]string{{
			formatFloat(dash.Summary.TotalSales),
			strconv.Itoa(dash.Summary.TotalOrders),
			strconv.Itoa(dash.Summary.TotalCustomers),
			formatFloat(dash.Summary.AvgOrderValue),
		}},
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	trend := make([][]string, 0, len(dash.MonthlyTrend))
	for _, p := range dash.MonthlyTrend {
		trend = append(trend, []string{p.YearMonth, formatFloat(p.TotalSales), strconv.Itoa(p.OrderCount)})
	}
	if err := w.csv.WriteCSV("monthly_trend.csv", WriteOptions{
		Headers:   []string{"YearMonth", "TotalSales", "OrderCount"},
		Records:   trend,
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	weekdays := make([][]string, 0, len(dash.WeekdaySales))
	for _, d := range dash.WeekdaySales {
		weekdays = append(weekdays, []string{d.Day.String(), formatFloat(d.TotalSales)})
	}
	if err := w.csv.WriteCSV("weekday_sales.csv", WriteOptions{
		Headers:   []string{"DayOfWeek", "TotalSales"},
		Records:   weekdays,
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	matrixHeaders := make([]string, 0, 25)
	matrixHeaders = append(matrixHeaders, "DayOfWeek")
	for h := 0; h < 24; h++ {
		matrixHeaders = append(matrixHeaders, strconv.Itoa(h))
	}
	matrix := make([][]string, 0, domain.NumWeekdays)
	for _, day := range domain.Weekdays() {
		row := make([]string, 0, 25)
		row = append(row, day.String())
		for h := 0; h < 24; h++ {
			row = append(row, formatFloat(dash.HourlyMatrix.Cells[day][h]))
		}
		matrix = append(matrix, row)
	}
	if err := w.csv.WriteCSV("hourly_matrix.csv", WriteOptions{
		Headers:   matrixHeaders,
		Records:   matrix,
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	if err := w.writeRankingCSV("top_by_quantity.csv", "Quantity", dash.TopByQuantity); err != nil {
		return err
	}
	if err := w.writeRankingCSV("top_by_revenue.csv", "TotalSales", dash.TopByRevenue); err != nil {
		return err
	}

	countries := make([][]string, 0, len(dash.CountryShares.Entries))
	for _, c := range dash.CountryShares.Entries {
		countries = append(countries, []string{c.Country, formatFloat(c.TotalSales), string(dash.CountryShares.Branch)})
	}
	return w.csv.WriteCSV("country_shares.csv", WriteOptions{
		Headers:   []string{"Country", "TotalSales", "Branch"},
		Records:   countries,
		BOMPrefix: true,
	})
}

func (w *ReportWriter) writeRankingCSV(name, metric string, ranks []domain.ProductRank) error {
	records := make([][]string, 0, len(ranks))
	for _, r := range ranks {
		records = append(records, []string{r.Description, formatFloat(r.Value)})
	}
	return w.csv.WriteCSV(name, WriteOptions{
		Headers:   []string{"Description", metric},
		Records:   records,
		BOMPrefix: true,
	})
}

// formatFloat renders aggregates with full precision and no locale
// formatting; presentation rounding is the consumer's concern.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
