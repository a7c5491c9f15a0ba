package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/vacation-manager/calendar"
)

// =============================================================================
// RANKING AGGREGATOR
// =============================================================================

// Employee is the identity the aggregator needs: an opaque id and a
// display name.
type Employee struct {
	ID   string
	Name string
}

// RankingEntry is one employee's aggregated score across all their
// vacation periods.
type RankingEntry struct {
	EmployeeID   string
	Name         string
	TotalDays    int
	TotalPoints  int
	PointsPerDay decimal.Decimal
	Breakdown    map[time.Month]MonthTally
}

// Rank computes one entry per employee and orders them ascending by
// total points, cheapest vacation footprint first.
//
// Guarantees:
//   - Exactly one entry per input employee: no duplicates, no omissions.
//     Employees with no periods appear with a total of zero.
//   - The sort is stable: employees with equal totals keep their input
//     order, so identical inputs yield identical output on every call.
//   - Periods keyed by an id that is not in employees are ignored. The
//     store's referential integrity should make that impossible; no
//     orphan entries are synthesized if it is not.
func (c *Calculator) Rank(employees []Employee, periodsByEmployee map[string][]calendar.DateRange) ([]RankingEntry, error) {
	entries := make([]RankingEntry, 0, len(employees))

	for _, emp := range employees {
		entry := RankingEntry{
			EmployeeID:   emp.ID,
			Name:         emp.Name,
			PointsPerDay: decimal.Zero,
			Breakdown:    make(map[time.Month]MonthTally),
		}

		for _, period := range periodsByEmployee[emp.ID] {
			result, err := c.Compute(period)
			if err != nil {
				return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
			}

			entry.TotalDays += result.TotalDays
			entry.TotalPoints += result.TotalPoints
			for month, tally := range result.Breakdown {
				agg := entry.Breakdown[month]
				agg.Days += tally.Days
				agg.Points += tally.Points
				entry.Breakdown[month] = agg
			}
		}

		entry.PointsPerDay = pointsPerDay(entry.TotalPoints, entry.TotalDays)
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints < entries[j].TotalPoints
	})

	return entries, nil
}
