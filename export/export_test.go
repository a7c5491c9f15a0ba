package export_test

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-manager/export"
	"github.com/warp/vacation-manager/scoring"
)

func TestRankingWorkbook(t *testing.T) {
	entries := []scoring.RankingEntry{
		{
			EmployeeID:   "emp-2",
			Name:         "Bob",
			TotalDays:    4,
			TotalPoints:  20,
			PointsPerDay: decimal.NewFromInt(5),
		},
		{
			EmployeeID:   "emp-1",
			Name:         "Alice",
			TotalDays:    10,
			TotalPoints:  110,
			PointsPerDay: decimal.NewFromInt(11),
		},
	}

	f, err := export.RankingWorkbook(entries, scoring.DefaultWeights())
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Ranking", "Month Weights"}, f.GetSheetList())

	// Header row
	name, err := f.GetCellValue("Ranking", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Employee", name)

	// First data row is the cheapest footprint
	position, err := f.GetCellValue("Ranking", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1", position)
	name, err = f.GetCellValue("Ranking", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Bob", name)
	points, err := f.GetCellValue("Ranking", "D2")
	require.NoError(t, err)
	assert.Equal(t, "20", points)
	perDay, err := f.GetCellValue("Ranking", "E2")
	require.NoError(t, err)
	assert.Equal(t, "5.00", perDay)

	name, err = f.GetCellValue("Ranking", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
}

func TestRankingWorkbookWeightsSheet(t *testing.T) {
	f, err := export.RankingWorkbook(nil, scoring.DefaultWeights())
	require.NoError(t, err)
	defer f.Close()

	weights := scoring.DefaultWeights()
	for m := time.January; m <= time.December; m++ {
		row := int(m) + 1

		name, err := f.GetCellValue("Month Weights", fmt.Sprintf("A%d", row))
		require.NoError(t, err)
		assert.Equal(t, m.String(), name)

		points, err := f.GetCellValue("Month Weights", fmt.Sprintf("B%d", row))
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(weights[m]), points)
	}
}
