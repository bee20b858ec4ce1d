// Package pipeline implements the deterministic transformations that turn
// raw transaction lines into an immutable, analysis-ready dataset: sanitize,
// derive, cache, filter. Every stage is pure; rows are dropped or passed
// through, never repaired or imputed.
package pipeline

import (
	"retailpulse/pkg/contracts/domain"
)

// Sanitize validates raw rows against the cleaned-line contract and returns
// the survivors in input order:
//
//  1. rows without a customer identifier are dropped (customer-level
//     analysis needs identity),
//  2. rows with Quantity <= 0 or UnitPrice <= 0 are dropped (returns,
//     cancellations, corrupted prices must not count as sales).
//
// Sanitize is total: an all-invalid input yields an empty slice, which the
// filter stage's empty-result gate handles downstream.
func Sanitize(raw []domain.RawTransactionLine) []domain.RawTransactionLine {
	clean := make([]domain.RawTransactionLine, 0, len(raw))
	for _, line := range raw {
		if !line.HasCustomerID {
			continue
		}
		if line.Quantity <= 0 || line.UnitPrice <= 0 {
			continue
		}
		clean = append(clean, line)
	}
	return clean
}
