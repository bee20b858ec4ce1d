package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"retailpulse/pkg/contracts/domain"
)

// LoadWorkbook reads raw transaction lines from an Excel workbook. When
// sheet is empty the loader scans the workbook for the first sheet whose
// header row carries the expected transaction columns.
func LoadWorkbook(ctx context.Context, path, sheet string) ([]domain.RawTransactionLine, error) {
	logger := slog.Default()

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	rows, sheetName, err := findTransactionSheet(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	logger.InfoContext(ctx, "loading transaction workbook",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("total_rows", len(rows)),
	)

	headerPos, idx, err := locateHeader(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %v", ErrSourceUnavailable, sheetName, err)
	}

	lines := convertRows(ctx, rows[headerPos+1:], idx, logger)

	logger.InfoContext(ctx, "workbook loaded",
		slog.String("sheet", sheetName),
		slog.Int("lines", len(lines)),
	)
	return lines, nil
}

// findTransactionSheet returns all rows of the requested sheet, or of the
// first sheet that looks like it holds transaction data.
func findTransactionSheet(f *excelize.File, sheet string) ([][]string, string, error) {
	if sheet != "" {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, "", fmt.Errorf("read sheet %q: %v", sheet, err)
		}
		return rows, sheet, nil
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			continue
		}
		// The header is on one of the first few rows in every export seen.
		limit := len(rows)
		if limit > 5 {
			limit = 5
		}
		for _, row := range rows[:limit] {
			if isHeaderRow(row) {
				return rows, name, nil
			}
		}
	}
	return nil, "", fmt.Errorf("no sheet with transaction columns found")
}

// locateHeader finds the header row and maps its columns.
func locateHeader(rows [][]string) (int, columnIndex, error) {
	for i, row := range rows {
		if !isHeaderRow(row) {
			continue
		}
		idx, err := mapColumns(row)
		if err != nil {
			return 0, idx, err
		}
		return i, idx, nil
	}
	return 0, columnIndex{}, fmt.Errorf("no header row found")
}
