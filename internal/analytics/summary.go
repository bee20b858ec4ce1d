package analytics

import (
	"sort"

	"retailpulse/pkg/contracts/domain"
)

// Summarize computes the headline KPIs: total sales, distinct orders,
// distinct customers and average order value. The zero-orders guard on the
// average documents the division contract even though the empty-result gate
// upstream makes it unreachable on real requests.
func Summarize(lines []domain.CleanTransactionLine) domain.Summary {
	var totalSales float64
	orders := make(map[string]struct{})
	customers := make(map[int]struct{})

	for _, line := range lines {
		totalSales += line.TotalPrice
		orders[line.InvoiceNo] = struct{}{}
		customers[line.CustomerID] = struct{}{}
	}

	avg := 0.0
	if len(orders) > 0 {
		avg = totalSales / float64(len(orders))
	}

	return domain.Summary{
		TotalSales:     totalSales,
		TotalOrders:    len(orders),
		TotalCustomers: len(customers),
		AvgOrderValue:  avg,
	}
}

// MonthlyTrend groups by YearMonth and reduces each bucket to total sales
// and distinct order count, ascending by bucket label. Lexicographic order
// is chronological order because the label is zero-padded "YYYY-MM".
func MonthlyTrend(lines []domain.CleanTransactionLine) []domain.MonthlyPoint {
	type bucket struct {
		sales  float64
		orders map[string]struct{}
	}

	buckets := make(map[string]*bucket)
	for _, line := range lines {
		b, ok := buckets[line.YearMonth]
		if !ok {
			b = &bucket{orders: make(map[string]struct{})}
			buckets[line.YearMonth] = b
		}
		b.sales += line.TotalPrice
		b.orders[line.InvoiceNo] = struct{}{}
	}

	trend := make([]domain.MonthlyPoint, 0, len(buckets))
	for ym, b := range buckets {
		trend = append(trend, domain.MonthlyPoint{
			YearMonth:  ym,
			TotalSales: b.sales,
			OrderCount: len(b.orders),
		})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].YearMonth < trend[j].YearMonth })
	return trend
}
