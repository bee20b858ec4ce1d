package domain

// Summary holds the headline KPIs for a filtered dataset. Values are plain
// aggregates with no currency or locale formatting applied; presentation is
// the consumer's job.
type Summary struct {
	// TotalSales is the sum of TotalPrice over the filtered set.
	TotalSales float64 `json:"total_sales"`

	// TotalOrders is the count of distinct invoice numbers.
	TotalOrders int `json:"total_orders"`

	// TotalCustomers is the count of distinct customer identifiers.
	TotalCustomers int `json:"total_customers"`

	// AvgOrderValue is TotalSales / TotalOrders, or 0 when TotalOrders is 0.
	// The zero guard documents the contract even though upstream gates make
	// an empty input unreachable here.
	AvgOrderValue float64 `json:"avg_order_value"`
}

// MonthlyPoint is one bucket of the monthly trend series.
type MonthlyPoint struct {
	// YearMonth is the zero-padded "YYYY-MM" bucket label.
	YearMonth string `json:"year_month"`

	// TotalSales is the sum of TotalPrice for the bucket.
	TotalSales float64 `json:"total_sales"`

	// OrderCount is the count of distinct invoice numbers in the bucket.
	OrderCount int `json:"order_count"`
}

// WeekdaySales is the revenue total for one canonical weekday. A full series
// always carries all seven weekdays Monday through Sunday, with explicit
// zeros for weekdays that had no matching rows.
type WeekdaySales struct {
	Day        Weekday `json:"day"`
	TotalSales float64 `json:"total_sales"`
}

// HourlyMatrix is the dense weekday-by-hour revenue matrix: 7 rows in
// canonical weekday order, 24 columns for hours 0-23. Combinations with no
// sales are explicit zero cells, so a heatmap over it never confuses "no
// sales" with "no data".
type HourlyMatrix struct {
	// Cells[d][h] is the summed TotalPrice for weekday rank d at hour h.
	Cells [NumWeekdays][24]float64 `json:"cells"`
}

// Total returns the sum over all cells. It equals the TotalSales of the
// input the matrix was reduced from.
func (m *HourlyMatrix) Total() float64 {
	var total float64
	for d := range m.Cells {
		for h := range m.Cells[d] {
			total += m.Cells[d][h]
		}
	}
	return total
}

// ProductRank is one entry of a top-N product ranking. Value is the summed
// metric the ranking was built on (units for the quantity ranking, revenue
// for the revenue ranking).
type ProductRank struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

// CountryShareBranch tags which country-share view was produced, so
// consumers branch on an explicit variant instead of re-deriving it.
type CountryShareBranch string

const (
	// BranchRestOfDominant means the dominant country was present and has
	// been excluded; the entries are every other country.
	BranchRestOfDominant CountryShareBranch = "rest_of_dominant"

	// BranchTopCountries means the dominant country was absent; the entries
	// are the top countries by revenue, nothing excluded.
	BranchTopCountries CountryShareBranch = "top_countries"
)

// CountryShare is one country's summed revenue.
type CountryShare struct {
	Country    string  `json:"country"`
	TotalSales float64 `json:"total_sales"`
}

// CountryShares is the country revenue breakdown together with the branch
// that produced it.
type CountryShares struct {
	Branch CountryShareBranch `json:"branch"`

	// Dominant is the configured dominant-country label the branch decision
	// was made against.
	Dominant string `json:"dominant"`

	Entries []CountryShare `json:"entries"`
}

// Dashboard bundles every analytical view computed from one filtered
// dataset, plus any informational warnings raised while filtering.
type Dashboard struct {
	Summary        Summary        `json:"summary"`
	MonthlyTrend   []MonthlyPoint `json:"monthly_trend"`
	WeekdaySales   []WeekdaySales `json:"weekday_sales"`
	HourlyMatrix   HourlyMatrix   `json:"hourly_matrix"`
	TopByQuantity  []ProductRank  `json:"top_by_quantity"`
	TopByRevenue   []ProductRank  `json:"top_by_revenue"`
	CountryShares  CountryShares  `json:"country_shares"`
	FilterWarnings []string       `json:"filter_warnings,omitempty"`

	// RowCount is the number of cleaned lines the views were reduced from.
	RowCount int `json:"row_count"`
}
