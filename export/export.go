// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/council-ballot/models"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	ResultsSheet = "Results"
	SummarySheet = "Summary"
)

var resultsHeaders = []string{"Rank", "Candidate", "Council votes", "Executive votes", "Council %"}

// ResultsWorkbook lays out ranked election results as an xlsx workbook.
// The caller must Close the returned file.
func ResultsWorkbook(results models.ResultsResponse) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name results sheet: %w", err)
	}

	for i, h := range resultsHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ResultsSheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	f.SetRowStyle(ResultsSheet, 1, 1, headerStyle)

	// Council % is stored as a fraction so spreadsheet formatting applies
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create percent style: %w", err)
	}

	for i, r := range results.Results {
		row := i + 2
		f.SetCellValue(ResultsSheet, fmt.Sprintf("A%d", row), r.Rank)
		f.SetCellValue(ResultsSheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(ResultsSheet, fmt.Sprintf("C%d", row), r.CouncilVotes)
		f.SetCellValue(ResultsSheet, fmt.Sprintf("D%d", row), r.ExecutiveVotes)

		share := 0.0
		if results.TotalVotes > 0 {
			share = float64(r.CouncilVotes) / float64(results.TotalVotes)
		}
		cell := fmt.Sprintf("E%d", row)
		f.SetCellValue(ResultsSheet, cell, share)
		f.SetCellStyle(ResultsSheet, cell, cell, percentStyle)
	}

	f.SetColWidth(ResultsSheet, "A", "A", 8)
	f.SetColWidth(ResultsSheet, "B", "B", 30)
	f.SetColWidth(ResultsSheet, "C", "E", 16)

	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Field", "Value"},
		{"Election", results.ElectionID},
		{"Total votes", results.TotalVotes},
		{"Candidates", len(results.Results)},
		{"Fetched at", results.FetchedAt},
	}
	for i, row := range summary {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(SummarySheet, cell, val)
		}
	}
	f.SetRowStyle(SummarySheet, 1, 1, headerStyle)
	f.SetColWidth(SummarySheet, "A", "B", 24)

	f.SetActiveSheet(0)
	return f, nil
}
