package analytics

import (
	"sort"

	"retailpulse/pkg/contracts/domain"
)

// CountryRevenueShares groups revenue by country and picks the share view:
//
//   - the dominant country (the seller's home market in the reference
//     dataset) is present in the grouped set: return every other country,
//     descending by revenue, tagged rest_of_dominant, since one overwhelming
//     slice would visually obscure all the others;
//   - the dominant country is absent: return the top n countries by
//     revenue, nothing excluded, tagged top_countries.
//
// Detection is membership of the dominant label in the grouped country set,
// not a statistical threshold. The tag lets consumers branch without
// re-deriving which case fired.
func CountryRevenueShares(lines []domain.CleanTransactionLine, dominant string, n int) domain.CountryShares {
	sums := make(map[string]float64)
	for _, line := range lines {
		sums[line.Country] += line.TotalPrice
	}

	_, dominantPresent := sums[dominant]

	entries := make([]domain.CountryShare, 0, len(sums))
	for country, sales := range sums {
		if dominantPresent && country == dominant {
			continue
		}
		entries = append(entries, domain.CountryShare{Country: country, TotalSales: sales})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalSales != entries[j].TotalSales {
			return entries[i].TotalSales > entries[j].TotalSales
		}
		return entries[i].Country < entries[j].Country
	})

	shares := domain.CountryShares{Dominant: dominant}
	if dominantPresent {
		shares.Branch = domain.BranchRestOfDominant
		shares.Entries = entries
		return shares
	}

	shares.Branch = domain.BranchTopCountries
	if len(entries) > n {
		entries = entries[:n]
	}
	shares.Entries = entries
	return shares
}
