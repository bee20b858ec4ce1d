// Package loader reads raw transaction lines from the tabular sources the
// pipeline accepts: the "Online Retail" Excel workbook or a CSV export of it.
// The loader maps columns from a whitespace-trimmed header row, converts the
// cells it can and skips the rows it cannot, leaving all business validation
// (returns, missing customers) to the sanitizer.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"retailpulse/pkg/contracts/domain"
)

// ErrSourceUnavailable marks a source that could not be opened or read at
// all. Callers treat it as fatal for the invocation; there is no retry and
// no default substitute.
var ErrSourceUnavailable = fmt.Errorf("transaction source unavailable")

// Source describes where raw transaction lines come from.
type Source struct {
	// File is the path to a .xlsx workbook or .csv export.
	File string

	// Sheet optionally pins the workbook sheet. Ignored for CSV.
	Sheet string
}

// Load reads all raw transaction lines from the source, dispatching on the
// file extension. Any failure to obtain the data is wrapped in
// ErrSourceUnavailable.
func Load(ctx context.Context, src Source) ([]domain.RawTransactionLine, error) {
	switch strings.ToLower(filepath.Ext(src.File)) {
	case ".xlsx", ".xlsm":
		return LoadWorkbook(ctx, src.File, src.Sheet)
	case ".csv":
		return LoadCSV(ctx, src.File)
	default:
		return nil, fmt.Errorf("%w: unsupported source format %q", ErrSourceUnavailable, filepath.Ext(src.File))
	}
}

// columnIndex maps the six semantic fields (plus stock code) to their column
// positions in a header row. The pipeline requires invoice, quantity, price,
// customer, country and date; stock code and description are both carried.
type columnIndex struct {
	invoiceNo   int
	stockCode   int
	description int
	quantity    int
	unitPrice   int
	customerID  int
	invoiceDate int
	country     int
}

// mapColumns builds a columnIndex from a header row. Header cells are
// trimmed before comparison so incidental whitespace in the source headers
// never breaks field lookup.
func mapColumns(header []string) (columnIndex, error) {
	idx := columnIndex{
		invoiceNo:   -1,
		stockCode:   -1,
		description: -1,
		quantity:    -1,
		unitPrice:   -1,
		customerID:  -1,
		invoiceDate: -1,
		country:     -1,
	}

	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "invoiceno", "invoice no":
			idx.invoiceNo = i
		case "stockcode", "stock code":
			idx.stockCode = i
		case "description":
			idx.description = i
		case "quantity":
			idx.quantity = i
		case "unitprice", "unit price":
			idx.unitPrice = i
		case "customerid", "customer id":
			idx.customerID = i
		case "invoicedate", "invoice date":
			idx.invoiceDate = i
		case "country":
			idx.country = i
		}
	}

	missing := idx.missing()
	if len(missing) > 0 {
		return idx, fmt.Errorf("header is missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// missing lists required columns absent from the index. StockCode is
// optional; the reference dataset has it but analysis never keys on it.
func (idx columnIndex) missing() []string {
	var missing []string
	for _, col := range []struct {
		name string
		pos  int
	}{
		{"InvoiceNo", idx.invoiceNo},
		{"Description", idx.description},
		{"Quantity", idx.quantity},
		{"UnitPrice", idx.unitPrice},
		{"CustomerID", idx.customerID},
		{"InvoiceDate", idx.invoiceDate},
		{"Country", idx.country},
	} {
		if col.pos < 0 {
			missing = append(missing, col.name)
		}
	}
	return missing
}

// isHeaderRow reports whether a row looks like the column header of a
// transaction sheet.
func isHeaderRow(row []string) bool {
	text := strings.ToLower(strings.Join(row, " "))
	return strings.Contains(text, "invoiceno") &&
		strings.Contains(text, "quantity") &&
		strings.Contains(text, "unitprice")
}

// convertRow turns one data row into a RawTransactionLine. Rows whose
// numeric or date cells cannot be parsed are unrecoverable source defects;
// they are reported to the caller, which logs and skips them.
func convertRow(row []string, idx columnIndex) (domain.RawTransactionLine, error) {
	var line domain.RawTransactionLine

	cell := func(pos int) string {
		if pos < 0 || pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	line.InvoiceNo = cell(idx.invoiceNo)
	line.StockCode = cell(idx.stockCode)
	line.Description = cell(idx.description)
	line.Country = cell(idx.country)

	if line.InvoiceNo == "" {
		return line, fmt.Errorf("empty invoice number")
	}

	qty := cell(idx.quantity)
	quantity, err := strconv.Atoi(qty)
	if err != nil {
		// Some exports render integers as "6.0".
		f, ferr := strconv.ParseFloat(qty, 64)
		if ferr != nil {
			return line, fmt.Errorf("parse quantity %q: %w", qty, err)
		}
		quantity = int(f)
	}
	line.Quantity = quantity

	price, err := strconv.ParseFloat(cell(idx.unitPrice), 64)
	if err != nil {
		return line, fmt.Errorf("parse unit price %q: %w", cell(idx.unitPrice), err)
	}
	line.UnitPrice = price

	// A blank customer cell is valid raw data (unattributed checkout); the
	// sanitizer drops those rows. A non-numeric one is a source defect.
	if customer := cell(idx.customerID); customer != "" {
		id, err := strconv.ParseFloat(customer, 64)
		if err != nil {
			return line, fmt.Errorf("parse customer id %q: %w", customer, err)
		}
		line.CustomerID = int(id)
		line.HasCustomerID = true
	}

	date, err := parseTimestamp(cell(idx.invoiceDate))
	if err != nil {
		return line, fmt.Errorf("parse invoice date %q: %w", cell(idx.invoiceDate), err)
	}
	line.InvoiceDate = date

	return line, nil
}

// timestampLayouts are the datetime renderings seen across workbook cell
// formats and CSV exports of the reference dataset.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"01-02-06 15:04",
	"2006-01-02",
	time.RFC3339,
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format")
}

// convertRows converts every data row, logging and skipping defects.
func convertRows(ctx context.Context, rows [][]string, idx columnIndex, logger *slog.Logger) []domain.RawTransactionLine {
	lines := make([]domain.RawTransactionLine, 0, len(rows))
	skipped := 0

	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		line, err := convertRow(row, idx)
		if err != nil {
			skipped++
			logger.DebugContext(ctx, "skipping malformed source row",
				slog.Int("row", i),
				slog.String("error", err.Error()),
			)
			continue
		}
		lines = append(lines, line)
	}

	if skipped > 0 {
		logger.WarnContext(ctx, "skipped malformed source rows",
			slog.Int("skipped", skipped),
			slog.Int("loaded", len(lines)),
		)
	}
	return lines
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
