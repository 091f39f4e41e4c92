package exporter

import (
	"math"
	"strconv"

	"github.com/go-gota/gota/series"
)

// formatFloat formats a float64 value for CSV output with the shortest
// exact representation. Missing values (NaN) are written as empty cells.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// columnRecords renders one series as CSV cells
func columnRecords(s series.Series) []string {
	if s.Type() != series.Float {
		records := s.Records()
		for i := range records {
			if s.Elem(i).IsNA() {
				records[i] = ""
			}
		}
		return records
	}

	floats := s.Float()
	records := make([]string, len(floats))
	for i, f := range floats {
		records[i] = formatFloat(f)
	}
	return records
}
