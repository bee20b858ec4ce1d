package analytics

import (
	"fmt"

	"retailpulse/pkg/contracts/domain"
)

// ErrSchemaDefect marks derived data violating the canonical schema. The
// defect is surfaced, never coerced into a bucket.
var ErrSchemaDefect = fmt.Errorf("derived data violates the canonical schema")

// WeekdayTotals sums revenue per weekday and returns all seven entries in
// canonical Monday-to-Sunday order, with explicit zeros for weekdays that
// had no rows. A weekday rank outside the canonical set is a schema defect
// and is surfaced, never coerced into a bucket.
func WeekdayTotals(lines []domain.CleanTransactionLine) ([]domain.WeekdaySales, error) {
	var totals [domain.NumWeekdays]float64
	for _, line := range lines {
		if !line.DayOfWeek.IsValid() {
			return nil, schemaDefect(line)
		}
		totals[line.DayOfWeek] += line.TotalPrice
	}

	out := make([]domain.WeekdaySales, 0, domain.NumWeekdays)
	for _, day := range domain.Weekdays() {
		out = append(out, domain.WeekdaySales{Day: day, TotalSales: totals[day]})
	}
	return out, nil
}

// WeekdayHourMatrix builds the dense 7x24 revenue matrix: rows in canonical
// weekday order, columns hours 0-23. Missing combinations are explicit zero
// cells; a sparse matrix would misrepresent "no sales" as "no data".
func WeekdayHourMatrix(lines []domain.CleanTransactionLine) (*domain.HourlyMatrix, error) {
	var m domain.HourlyMatrix
	for _, line := range lines {
		if !line.DayOfWeek.IsValid() {
			return nil, schemaDefect(line)
		}
		if line.Hour < 0 || line.Hour > 23 {
			return nil, fmt.Errorf("%w: hour %d outside 0-23 on invoice %s", ErrSchemaDefect, line.Hour, line.InvoiceNo)
		}
		m.Cells[line.DayOfWeek][line.Hour] += line.TotalPrice
	}
	return &m, nil
}

func schemaDefect(line domain.CleanTransactionLine) error {
	return fmt.Errorf("%w: weekday rank %d outside canonical set on invoice %s",
		ErrSchemaDefect, int(line.DayOfWeek), line.InvoiceNo)
}
