package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"housingdata/pkg/contracts/domain"
)

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// writeFile writes content into dir/name
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// sheetFixture describes one worksheet as rows of cell values
type sheetFixture struct {
	name string
	rows [][]interface{}
}

// writeWorkbook saves the given sheets into dir/name. The first fixture
// replaces the default sheet.
func writeWorkbook(t *testing.T, dir, name string, sheets ...sheetFixture) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet.name))
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for r, row := range sheet.rows {
			for c, value := range row {
				if value == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet.name, cell, value))
			}
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// loanReportSheet mirrors "Page 3 Data": caption rows, a header on row 3 and
// a date column mixing timestamps with fiscal-quarter codes.
func loanReportSheet() sheetFixture {
	return sheetFixture{
		name: "Page 3 Data",
		rows: [][]interface{}{
			{"Total Debt Balance and its Composition"},
			{"Trillions of $"},
			{"Source: New York Fed Consumer Credit Panel/Equifax"},
			{nil, "Mortgage", "HE Revolving", nil, "Auto Loan", "Mortgage"},
			{utcDate(2003, time.March, 1), 4.94, 0.24, "ignored", 0.64, 1.5},
			{utcDate(2003, time.June, 1), 5.08, 0.26, nil, 0.62, 1.6},
			{"11:Q2", 8.52, nil, nil, 0.73, 1.7},
			{},
			{"Note: footnote rows below the table are not data"},
		},
	}
}

// delinquencySheet mirrors "Page 13 Data": a footnoted title and a header on row 4
func delinquencySheet() sheetFixture {
	return sheetFixture{
		name: "Page 13 Data",
		rows: [][]interface{}{
			{"Percent of Balance 90+ Days Delinquent by Loan Type*"},
			{"Percent"},
			{"*Seriously delinquent"},
			{},
			{nil, "Mortgage", "Student Loan"},
			{"03:Q1", 1.2, 6.1},
			{"03:Q2", "n/a", 6.3},
		},
	}
}

// badDateSheet has an unknown quarter code in the date column
func badDateSheet() sheetFixture {
	return sheetFixture{
		name: "Page 17 Data",
		rows: [][]interface{}{
			{"Number of Consumers with New Foreclosures and Bankruptcies"},
			{"Thousands"},
			{},
			{nil, "Foreclosures"},
			{"03:Q1", 203.1},
			{"03:Q5", 199.4},
		},
	}
}

func writeNewYorkFedWorkbook(t *testing.T, dir string) string {
	t.Helper()
	return writeWorkbook(t, dir, domain.NewYorkFedWorkbook,
		loanReportSheet(), delinquencySheet(), badDateSheet())
}

func writeRecessionsWorkbook(t *testing.T, dir string) string {
	t.Helper()
	return writeWorkbook(t, dir, domain.RecessionsWorkbook, sheetFixture{
		name: "Sheet1",
		rows: [][]interface{}{
			{"Name", "Start", "End", "Duration"},
			{"Great Recession", utcDate(2007, time.December, 1), utcDate(2009, time.June, 1), "1 year 6 months"},
			{"COVID-19 recession", "February 2020", "April 2020", "2 months"},
			{},
			{"Hypothetical", "2030-01-01", nil, "ongoing"},
		},
	})
}
