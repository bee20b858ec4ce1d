package analytics

import (
	"time"

	"retailpulse/pkg/contracts/domain"
)

// line builds a cleaned transaction line the way the pipeline's deriver
// would, so tests exercise the same field relationships.
func line(invoice, description string, qty int, price float64, customer int, ts time.Time, country string) domain.CleanTransactionLine {
	return domain.CleanTransactionLine{
		InvoiceNo:   invoice,
		Description: description,
		Quantity:    qty,
		UnitPrice:   price,
		CustomerID:  customer,
		InvoiceDate: ts,
		Country:     country,

		TotalPrice: float64(qty) * price,
		YearMonth:  ts.Format("2006-01"),
		Month:      int(ts.Month()),
		DayOfWeek:  domain.WeekdayOf(ts),
		Hour:       ts.Hour(),
	}
}

// referenceLines is a small mixed dataset: two invoices in January, one in
// February, spanning two customers, three products and two countries.
func referenceLines() []domain.CleanTransactionLine {
	jan5 := time.Date(2011, 1, 5, 10, 0, 0, 0, time.UTC)  // Wednesday
	jan8 := time.Date(2011, 1, 8, 14, 0, 0, 0, time.UTC)  // Saturday
	feb7 := time.Date(2011, 2, 7, 19, 0, 0, 0, time.UTC)  // Monday

	return []domain.CleanTransactionLine{
		line("536365", "CANDLE", 3, 2.5, 17850, jan5, "Germany"),     // 7.5
		line("536365", "LANTERN", 1, 10.0, 17850, jan5, "Germany"),   // 10
		line("536380", "CANDLE", 10, 2.5, 12583, jan8, "France"),     // 25
		line("537011", "POSTAGE", 2, 18.0, 12583, feb7, "France"),    // 36
	}
}
