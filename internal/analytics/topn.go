package analytics

import (
	"sort"

	"retailpulse/pkg/contracts/domain"
)

// TopProductsByQuantity groups by product description, sums units sold and
// returns the n largest, descending. Ties are broken by ascending
// description so the boundary never depends on input order.
func TopProductsByQuantity(lines []domain.CleanTransactionLine, n int) []domain.ProductRank {
	sums := make(map[string]float64)
	for _, line := range lines {
		sums[line.Description] += float64(line.Quantity)
	}
	return topRanks(sums, n)
}

// TopProductsByRevenue is TopProductsByQuantity with summed revenue as the
// ranking metric, same tie-break discipline.
func TopProductsByRevenue(lines []domain.CleanTransactionLine, n int) []domain.ProductRank {
	sums := make(map[string]float64)
	for _, line := range lines {
		sums[line.Description] += line.TotalPrice
	}
	return topRanks(sums, n)
}

// topRanks orders grouped sums descending by value, ascending by key on
// equal values, and keeps the first n.
func topRanks(sums map[string]float64, n int) []domain.ProductRank {
	ranks := make([]domain.ProductRank, 0, len(sums))
	for desc, value := range sums {
		ranks = append(ranks, domain.ProductRank{Description: desc, Value: value})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Value != ranks[j].Value {
			return ranks[i].Value > ranks[j].Value
		}
		return ranks[i].Description < ranks[j].Description
	})

	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}
