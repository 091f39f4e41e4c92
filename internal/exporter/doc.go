// Package exporter writes loaded dataset tables to CSV files.
//
// Float columns are written with their shortest exact representation and
// missing values as empty cells, so the output reads back cleanly in a
// spreadsheet. An optional UTF-8 BOM helps Excel detect the encoding.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter("output")
//	path, err := writer.WriteTable(ctx, table, true)
package exporter
