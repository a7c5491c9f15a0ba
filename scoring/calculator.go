/*
Package scoring computes vacation point totals and employee rankings.

PURPOSE:
  Every vacation day costs points depending on which calendar month it
  falls in (see MonthWeights). The Calculator prices a single vacation
  period; Rank aggregates all periods per employee and orders the
  roster by total cost, cheapest first.

DESIGN:
  Scores are derived values. They are never stored: the ranking is
  recomputed from the current vacation periods on every request, so it
  can never go stale after an edit or delete.

PURITY:
  The Calculator holds only the immutable weight table. Compute and
  Rank perform no I/O and keep no state between calls; identical inputs
  always produce identical outputs, including tie order.

SEE ALSO:
  - calendar/range.go: day enumeration and range validation
  - store/sqlite: supplies the employees and periods that feed Rank
*/
package scoring

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/vacation-manager/calendar"
)

// =============================================================================
// VACATION POINT CALCULATOR
// =============================================================================

// Calculator prices vacation periods against a month weight table.
type Calculator struct {
	weights MonthWeights
}

// NewCalculator creates a Calculator with the given weight table.
// The table must be valid (see MonthWeights.Validate).
func NewCalculator(weights MonthWeights) *Calculator {
	return &Calculator{weights: weights}
}

// Weights returns the table the calculator prices against.
func (c *Calculator) Weights() MonthWeights {
	return c.weights
}

// MonthTally is one month's share of a vacation period.
type MonthTally struct {
	Days   int
	Points int
}

// Result is the priced decomposition of a single vacation period.
type Result struct {
	TotalDays   int
	TotalPoints int
	Breakdown   map[time.Month]MonthTally
}

// PointsPerDay returns the average point cost of one day in the result,
// rounded to two decimal places. Zero-day results average to zero.
func (r Result) PointsPerDay() decimal.Decimal {
	return pointsPerDay(r.TotalPoints, r.TotalDays)
}

// Compute prices every day of the closed interval [r.Start, r.End] at
// its month's weight and sums the contributions.
//
// The day-by-day walk (rather than closed-form month-boundary math) is
// what makes cross-month and cross-year periods correct with no special
// cases: December 28 through January 3 splits into four December days
// and three January days, each priced at its own month's rate.
//
// Callers are expected to pass validated ranges (the store rejects
// start > end before anything is persisted). A reversed range here is a
// programming error and fails fast with *calendar.InvalidRangeError; no
// partial result is returned.
func (c *Calculator) Compute(r calendar.DateRange) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}

	daysByMonth := make(map[time.Month]int)
	r.EachDay(func(d calendar.Date) {
		daysByMonth[d.Month()]++
	})

	result := Result{Breakdown: make(map[time.Month]MonthTally, len(daysByMonth))}
	for month, days := range daysByMonth {
		points := days * c.weights[month]
		result.Breakdown[month] = MonthTally{Days: days, Points: points}
		result.TotalDays += days
		result.TotalPoints += points
	}
	return result, nil
}

func pointsPerDay(points, days int) decimal.Decimal {
	if days == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(points)).
		Div(decimal.NewFromInt(int64(days))).
		Round(2)
}
