package exporter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/pkg/contracts/domain"
)

func sampleDashboard() *domain.Dashboard {
	dash := &domain.Dashboard{
		Summary: domain.Summary{
			TotalSales:     78.5,
			TotalOrders:    3,
			TotalCustomers: 2,
			AvgOrderValue:  78.5 / 3,
		},
		MonthlyTrend: []domain.MonthlyPoint{
			{YearMonth: "2011-01", TotalSales: 42.5, OrderCount: 2},
			{YearMonth: "2011-02", TotalSales: 36, OrderCount: 1},
		},
		TopByQuantity: []domain.ProductRank{
			{Description: "WHITE HANGING HEART", Value: 12},
			{Description: "METAL LANTERN", Value: 5},
		},
		TopByRevenue: []domain.ProductRank{
			{Description: "METAL LANTERN", Value: 50},
			{Description: "WHITE HANGING HEART", Value: 28.5},
		},
		CountryShares: domain.CountryShares{
			Branch:   domain.BranchTopCountries,
			Dominant: "United Kingdom",
			Entries: []domain.CountryShare{
				{Country: "France", TotalSales: 61},
				{Country: "Germany", TotalSales: 17.5},
			},
		},
		RowCount: 4,
	}
	for _, day := range domain.Weekdays() {
		dash.WeekdaySales = append(dash.WeekdaySales, domain.WeekdaySales{Day: day})
	}
	dash.WeekdaySales[domain.Wednesday].TotalSales = 17.5
	dash.WeekdaySales[domain.Saturday].TotalSales = 25
	dash.WeekdaySales[domain.Monday].TotalSales = 36
	dash.HourlyMatrix.Cells[domain.Wednesday][10] = 17.5
	dash.HourlyMatrix.Cells[domain.Saturday][9] = 25
	dash.HourlyMatrix.Cells[domain.Monday][14] = 36
	return dash
}

func readCSVReport(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Excel compatibility: every CSV report starts with a UTF-8 BOM.
	require.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"), "missing BOM in %s", path)

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xEF\xBB\xBF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteDashboardCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewReportWriter(dir)

	require.NoError(t, writer.WriteDashboard(sampleDashboard(), FormatCSV))

	summary := readCSVReport(t, filepath.Join(dir, "summary.csv"))
	require.Len(t, summary, 2)
	assert.Equal(t, []string{"TotalSales", "TotalOrders", "TotalCustomers", "AvgOrderValue"}, summary[0])
	assert.Equal(t, "78.5", summary[1][0])
	assert.Equal(t, "3", summary[1][1])
	assert.Equal(t, "2", summary[1][2])

	trend := readCSVReport(t, filepath.Join(dir, "monthly_trend.csv"))
	require.Len(t, trend, 3)
	assert.Equal(t, []string{"2011-01", "42.5", "2"}, trend[1])
	assert.Equal(t, []string{"2011-02", "36", "1"}, trend[2])

	weekdays := readCSVReport(t, filepath.Join(dir, "weekday_sales.csv"))
	require.Len(t, weekdays, 8)
	assert.Equal(t, []string{"Monday", "36"}, weekdays[1])
	assert.Equal(t, []string{"Sunday", "0"}, weekdays[7])

	matrix := readCSVReport(t, filepath.Join(dir, "hourly_matrix.csv"))
	require.Len(t, matrix, 8)
	require.Len(t, matrix[0], 25)
	assert.Equal(t, "DayOfWeek", matrix[0][0])
	assert.Equal(t, "Wednesday", matrix[3][0])
	assert.Equal(t, "17.5", matrix[3][11]) // hour 10 is column 11 after the label

	quantity := readCSVReport(t, filepath.Join(dir, "top_by_quantity.csv"))
	assert.Equal(t, []string{"Description", "Quantity"}, quantity[0])
	assert.Equal(t, []string{"WHITE HANGING HEART", "12"}, quantity[1])

	revenue := readCSVReport(t, filepath.Join(dir, "top_by_revenue.csv"))
	assert.Equal(t, []string{"Description", "TotalSales"}, revenue[0])
	assert.Equal(t, []string{"METAL LANTERN", "50"}, revenue[1])

	countries := readCSVReport(t, filepath.Join(dir, "country_shares.csv"))
	require.Len(t, countries, 3)
	assert.Equal(t, []string{"France", "61", "top_countries"}, countries[1])
}

func TestWriteDashboardJSON(t *testing.T) {
	dir := t.TempDir()
	writer := NewReportWriter(dir)
	dash := sampleDashboard()

	require.NoError(t, writer.WriteDashboard(dash, FormatJSON))

	names := []string{
		"summary.json", "monthly_trend.json", "weekday_sales.json",
		"hourly_matrix.json", "top_by_quantity.json", "top_by_revenue.json",
		"country_shares.json",
	}
	for _, name := range names {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	require.NoError(t, err)
	var summary domain.Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, dash.Summary, summary)

	data, err = os.ReadFile(filepath.Join(dir, "country_shares.json"))
	require.NoError(t, err)
	var shares domain.CountryShares
	require.NoError(t, json.Unmarshal(data, &shares))
	assert.Equal(t, domain.BranchTopCountries, shares.Branch)
	assert.Len(t, shares.Entries, 2)
}

func TestWriteDashboardUnsupportedFormat(t *testing.T) {
	writer := NewReportWriter(t.TempDir())
	err := writer.WriteDashboard(sampleDashboard(), Format("xml"))
	assert.Error(t, err)
}

func TestWriteCSVCreatesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	err := w.WriteCSV(filepath.Join("2011", "report.csv"), WriteOptions{
		Headers: []string{"A", "B"},
		Records: [][]string{{"1", "2"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "2011", "report.csv"))
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))
	assert.Equal(t, "A,B\n1,2\n", string(data))
}
