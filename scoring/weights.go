package scoring

import (
	"fmt"
	"time"
)

// =============================================================================
// MONTH WEIGHT TABLE - Fixed per-day point values
// =============================================================================

// MonthWeights maps each calendar month to the point value of a single
// vacation day taken in that month. The table is process-wide immutable
// configuration: it is built once and injected into the Calculator.
type MonthWeights map[time.Month]int

// DefaultWeights returns the standard season table. High season months
// (January, February, July, December) cost 11 points per day; August is
// the cheapest month at 3.
func DefaultWeights() MonthWeights {
	return MonthWeights{
		time.January:   11,
		time.February:  11,
		time.March:     7,
		time.April:     5,
		time.May:       5,
		time.June:      6,
		time.July:      11,
		time.August:    3,
		time.September: 5,
		time.October:   6,
		time.November:  6,
		time.December:  11,
	}
}

// Validate checks that the table covers all twelve months with positive
// values. A partial or non-positive table would silently zero out whole
// months of a vacation period.
func (w MonthWeights) Validate() error {
	for m := time.January; m <= time.December; m++ {
		points, ok := w[m]
		if !ok {
			return fmt.Errorf("month weights: missing entry for %s", m)
		}
		if points <= 0 {
			return fmt.Errorf("month weights: %s must be positive, got %d", m, points)
		}
	}
	return nil
}
