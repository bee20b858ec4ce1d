package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"retailpulse/pkg/contracts/domain"
)

// utf8BOM is the byte order mark some spreadsheet exports prepend.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadCSV reads raw transaction lines from a CSV export. The first
// non-blank row must be the column header.
func LoadCSV(ctx context.Context, path string) ([]domain.RawTransactionLine, error) {
	logger := slog.Default()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, path, err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // ragged rows are handled per cell

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrSourceUnavailable, path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s has no data rows", ErrSourceUnavailable, path)
	}

	headerPos, idx, err := locateHeader(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	logger.InfoContext(ctx, "loading transaction CSV",
		slog.String("path", path),
		slog.Int("total_rows", len(rows)),
	)

	lines := convertRows(ctx, rows[headerPos+1:], idx, logger)

	logger.InfoContext(ctx, "CSV loaded", slog.Int("lines", len(lines)))
	return lines, nil
}
