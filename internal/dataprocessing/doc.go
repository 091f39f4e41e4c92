// Package dataprocessing loads housing and economic time series from the
// spreadsheet and CSV releases kept in a local data directory.
//
// # Sources
//
//  1. St. Louis Fed (FRED) CSV downloads, one series per file
//  2. New York Fed household debt and credit report, one workbook with a
//     data sheet per chart
//  3. The Wikipedia list of US recessions, exported to a workbook
//
// Each loader reads one file, renames columns, normalizes dates and returns a
// domain.Table wrapping a go-gota dataframe.
//
// # Usage
//
//	datasets := dataprocessing.NewHousingDatasets("data")
//	table, err := datasets.LoadLoanReport()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(table.Title, table.ValueLabel, table.Rows())
//
// # Dates
//
// The New York Fed sheets mix full timestamps with fiscal-quarter codes such
// as "11:Q2" in the same column. Both are handed to dates.NormalizeColumn,
// which fails the whole load on the first bad value.
//
// # Error Handling
//
// Failures are returned as *errors.AppError: NOT_FOUND for missing files or
// sheets, STORAGE for unreadable files and PARSING for malformed content.
// Date failures still unwrap to *dates.FormatError.
package dataprocessing
