package scoring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-manager/calendar"
	"github.com/warp/vacation-manager/scoring"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newCalculator(t *testing.T) *scoring.Calculator {
	t.Helper()
	weights := scoring.DefaultWeights()
	require.NoError(t, weights.Validate())
	return scoring.NewCalculator(weights)
}

func dateRange(startY int, startM time.Month, startD, endY int, endM time.Month, endD int) calendar.DateRange {
	return calendar.DateRange{
		Start: calendar.NewDate(startY, startM, startD),
		End:   calendar.NewDate(endY, endM, endD),
	}
}

// =============================================================================
// WEIGHT TABLE
// =============================================================================

func TestDefaultWeights(t *testing.T) {
	weights := scoring.DefaultWeights()
	require.NoError(t, weights.Validate())

	// High season: January, February, July, December
	for _, m := range []time.Month{time.January, time.February, time.July, time.December} {
		assert.Equal(t, 11, weights[m], "high season month %s", m)
	}
	// Low season: August
	assert.Equal(t, 3, weights[time.August])

	// The rest of the reference table
	assert.Equal(t, 7, weights[time.March])
	assert.Equal(t, 5, weights[time.April])
	assert.Equal(t, 5, weights[time.May])
	assert.Equal(t, 6, weights[time.June])
	assert.Equal(t, 5, weights[time.September])
	assert.Equal(t, 6, weights[time.October])
	assert.Equal(t, 6, weights[time.November])
}

func TestWeightsValidateRejectsPartialTable(t *testing.T) {
	weights := scoring.DefaultWeights()
	delete(weights, time.June)
	assert.Error(t, weights.Validate())

	weights = scoring.DefaultWeights()
	weights[time.June] = 0
	assert.Error(t, weights.Validate())
}

// =============================================================================
// CALCULATOR
// =============================================================================

func TestCompute_SingleDay(t *testing.T) {
	// GIVEN: a one-day period on January 15
	// THEN: one month entry, 1 day, 11 points
	calc := newCalculator(t)

	result, err := calc.Compute(dateRange(2024, time.January, 15, 2024, time.January, 15))
	require.NoError(t, err)

	assert.Equal(t, 11, result.TotalPoints)
	assert.Equal(t, 1, result.TotalDays)
	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, scoring.MonthTally{Days: 1, Points: 11}, result.Breakdown[time.January])
}

func TestCompute_CrossYearBoundary(t *testing.T) {
	// GIVEN: December 28 2023 through January 3 2024
	// THEN: 4 December days at 11 and 3 January days at 11, 77 total
	calc := newCalculator(t)

	result, err := calc.Compute(dateRange(2023, time.December, 28, 2024, time.January, 3))
	require.NoError(t, err)

	assert.Equal(t, 77, result.TotalPoints)
	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, scoring.MonthTally{Days: 4, Points: 44}, result.Breakdown[time.December])
	assert.Equal(t, scoring.MonthTally{Days: 3, Points: 33}, result.Breakdown[time.January])
}

func TestCompute_LeapYearFebruary(t *testing.T) {
	calc := newCalculator(t)

	result, err := calc.Compute(dateRange(2024, time.February, 1, 2024, time.February, 29))
	require.NoError(t, err)

	assert.Equal(t, 29, result.Breakdown[time.February].Days)
	assert.Equal(t, 29*11, result.TotalPoints)
}

func TestCompute_CrossMonthPricesEachMonthAtItsOwnRate(t *testing.T) {
	// July (11/day) into August (3/day)
	calc := newCalculator(t)

	result, err := calc.Compute(dateRange(2024, time.July, 30, 2024, time.August, 2))
	require.NoError(t, err)

	assert.Equal(t, scoring.MonthTally{Days: 2, Points: 22}, result.Breakdown[time.July])
	assert.Equal(t, scoring.MonthTally{Days: 2, Points: 6}, result.Breakdown[time.August])
	assert.Equal(t, 28, result.TotalPoints)
}

func TestCompute_RejectsReversedRange(t *testing.T) {
	calc := newCalculator(t)

	result, err := calc.Compute(dateRange(2024, time.May, 10, 2024, time.May, 5))
	require.Error(t, err)
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)

	// No partial result
	assert.Zero(t, result.TotalPoints)
	assert.Zero(t, result.TotalDays)
	assert.Empty(t, result.Breakdown)
}

func TestCompute_DayCountConservation(t *testing.T) {
	// Sum of breakdown day counts always equals the range length.
	calc := newCalculator(t)
	weights := scoring.DefaultWeights()

	ranges := []calendar.DateRange{
		dateRange(2024, time.January, 15, 2024, time.January, 15),
		dateRange(2023, time.December, 28, 2024, time.January, 3),
		dateRange(2024, time.February, 1, 2024, time.February, 29),
		dateRange(2024, time.March, 10, 2024, time.June, 20),
		dateRange(2023, time.August, 1, 2024, time.July, 31),
	}

	for _, r := range ranges {
		result, err := calc.Compute(r)
		require.NoError(t, err, "range %s", r)

		days, points := 0, 0
		for month, tally := range result.Breakdown {
			days += tally.Days
			points += tally.Days * weights[month]
		}
		assert.Equal(t, r.Days(), days, "day conservation for %s", r)
		assert.Equal(t, result.TotalDays, days, "total days for %s", r)
		assert.Equal(t, result.TotalPoints, points, "points identity for %s", r)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	calc := newCalculator(t)
	r := dateRange(2023, time.December, 28, 2024, time.January, 3)

	first, err := calc.Compute(r)
	require.NoError(t, err)
	second, err := calc.Compute(r)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResultPointsPerDay(t *testing.T) {
	calc := newCalculator(t)

	result, err := calc.Compute(dateRange(2024, time.July, 30, 2024, time.August, 2))
	require.NoError(t, err)
	// 28 points over 4 days
	assert.Equal(t, "7.00", result.PointsPerDay().StringFixed(2))

	assert.Equal(t, "0.00", scoring.Result{}.PointsPerDay().StringFixed(2))
}
