package pipeline

import (
	"fmt"
	"sort"

	"retailpulse/pkg/contracts/domain"
)

// ErrEmptyFilterResult is returned when a month selection matches no rows at
// all. Aggregation must not run over an empty view; the caller surfaces a
// non-fatal "adjust your filter" condition and the session stays interactive.
var ErrEmptyFilterResult = fmt.Errorf("month selection matches no transactions")

// Filter warning messages, surfaced verbatim to the presentation layer.
const (
	// WarnNoSelection flags the empty-selection fallback: no selection is
	// treated as no filtering, not as filter-everything-out.
	WarnNoSelection = "no months selected; showing all data"

	// WarnNoNarrowing flags a selection that covers every month present in
	// the data, so no real narrowing occurred.
	WarnNoNarrowing = "selection covers all months present; no narrowing applied"
)

// FilterByMonths restricts the dataset to rows whose Month is in the
// selected set and reports any informational warnings:
//
//   - empty selection: the full dataset passes through with WarnNoSelection,
//   - selection covering every month present: identity filter with
//     WarnNoNarrowing,
//   - selection matching zero rows: ErrEmptyFilterResult.
//
// An empty dataset yields ErrEmptyFilterResult on every path, selection or
// not, so aggregation never sees zero rows. The input is never mutated; the
// result is an independent slice.
func FilterByMonths(dataset []domain.CleanTransactionLine, months []int) ([]domain.CleanTransactionLine, []string, error) {
	if len(months) == 0 {
		// The fallback still guards the zero-rows gate: a fully-invalid
		// source leaves nothing to aggregate even with no filter applied.
		if len(dataset) == 0 {
			return nil, nil, fmt.Errorf("%w: dataset has no rows", ErrEmptyFilterResult)
		}
		out := make([]domain.CleanTransactionLine, len(dataset))
		copy(out, dataset)
		return out, []string{WarnNoSelection}, nil
	}

	selected := make(map[int]bool, len(months))
	for _, m := range months {
		selected[m] = true
	}

	filtered := make([]domain.CleanTransactionLine, 0, len(dataset))
	for _, line := range dataset {
		if selected[line.Month] {
			filtered = append(filtered, line)
		}
	}

	if len(filtered) == 0 {
		return nil, nil, fmt.Errorf("%w: months %v", ErrEmptyFilterResult, sortedMonths(selected))
	}

	var warnings []string
	if coversAllPresent(dataset, selected) {
		warnings = append(warnings, WarnNoNarrowing)
	}
	return filtered, warnings, nil
}

// MonthsPresent returns the sorted distinct months occurring in the dataset.
// The presentation layer uses it to populate filter options.
func MonthsPresent(dataset []domain.CleanTransactionLine) []int {
	seen := make(map[int]bool)
	for _, line := range dataset {
		seen[line.Month] = true
	}
	return sortedMonths(seen)
}

func coversAllPresent(dataset []domain.CleanTransactionLine, selected map[int]bool) bool {
	for _, line := range dataset {
		if !selected[line.Month] {
			return false
		}
	}
	return true
}

func sortedMonths(set map[int]bool) []int {
	months := make([]int, 0, len(set))
	for m := range set {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}
