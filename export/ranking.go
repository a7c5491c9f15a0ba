// Package export renders the ranking as an xlsx workbook for download.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/warp/vacation-manager/scoring"
)

const (
	rankingSheet = "Ranking"
	weightsSheet = "Month Weights"
)

// RankingWorkbook builds a two-sheet workbook: the ranking itself and
// the month weight reference table. The caller owns the file and must
// Close it.
func RankingWorkbook(entries []scoring.RankingEntry, weights scoring.MonthWeights) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return nil, fmt.Errorf("failed to name ranking sheet: %w", err)
	}
	if _, err := f.NewSheet(weightsSheet); err != nil {
		return nil, fmt.Errorf("failed to create weights sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRankingSheet(f, entries, headerStyle); err != nil {
		return nil, err
	}
	if err := writeWeightsSheet(f, weights, headerStyle); err != nil {
		return nil, err
	}

	return f, nil
}

func writeRankingSheet(f *excelize.File, entries []scoring.RankingEntry, headerStyle int) error {
	headers := []string{"Position", "Employee", "Total Days", "Total Points", "Points/Day"}
	for col, title := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(rankingSheet, cell, title); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(rankingSheet, "A1", "E1", headerStyle); err != nil {
		return err
	}

	for i, entry := range entries {
		row := i + 2
		values := []any{
			i + 1,
			entry.Name,
			entry.TotalDays,
			entry.TotalPoints,
			entry.PointsPerDay.StringFixed(2),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(rankingSheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SetColWidth(rankingSheet, "B", "B", 28)
}

func writeWeightsSheet(f *excelize.File, weights scoring.MonthWeights, headerStyle int) error {
	if err := f.SetCellValue(weightsSheet, "A1", "Month"); err != nil {
		return err
	}
	if err := f.SetCellValue(weightsSheet, "B1", "Points per Day"); err != nil {
		return err
	}
	if err := f.SetCellStyle(weightsSheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	for m := time.January; m <= time.December; m++ {
		row := int(m) + 1
		if err := f.SetCellValue(weightsSheet, fmt.Sprintf("A%d", row), m.String()); err != nil {
			return err
		}
		if err := f.SetCellValue(weightsSheet, fmt.Sprintf("B%d", row), weights[m]); err != nil {
			return err
		}
	}

	return f.SetColWidth(weightsSheet, "A", "B", 16)
}
