package pipeline

import (
	"retailpulse/pkg/contracts/domain"
)

// Derive computes the derived attributes for every sanitized row and returns
// one CleanTransactionLine per input, same order:
//
//   - TotalPrice = Quantity * UnitPrice, no rounding,
//   - YearMonth  = invoice timestamp truncated to month, "YYYY-MM",
//   - Month      = month number 1-12,
//   - DayOfWeek  = canonical Monday-first weekday,
//   - Hour       = hour of day 0-23, local to the stored timestamp.
//
// Derive assumes its input already satisfies the sanitizer's contract.
func Derive(sanitized []domain.RawTransactionLine) []domain.CleanTransactionLine {
	clean := make([]domain.CleanTransactionLine, len(sanitized))
	for i, line := range sanitized {
		clean[i] = domain.CleanTransactionLine{
			InvoiceNo:   line.InvoiceNo,
			StockCode:   line.StockCode,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			CustomerID:  line.CustomerID,
			InvoiceDate: line.InvoiceDate,
			Country:     line.Country,

			TotalPrice: float64(line.Quantity) * line.UnitPrice,
			YearMonth:  line.InvoiceDate.Format("2006-01"),
			Month:      int(line.InvoiceDate.Month()),
			DayOfWeek:  domain.WeekdayOf(line.InvoiceDate),
			Hour:       line.InvoiceDate.Hour(),
		}
	}
	return clean
}
