package domain

import (
	"time"

	"github.com/go-gota/gota/dataframe"
)

// DateColumn is the name every loader gives its normalized date column
const DateColumn = "date"

// ValueColumn is the name FRED series values are renamed to
const ValueColumn = "value"

// Table is the result of loading one dataset file
type Table struct {
	Name       string
	Title      string
	ValueLabel string
	Dates      []time.Time
	Frame      dataframe.DataFrame
}

// Rows returns the number of rows in the table
func (t *Table) Rows() int {
	if t == nil {
		return 0
	}
	return t.Frame.Nrow()
}

// DateRange returns the first and last date in the table
func (t *Table) DateRange() (time.Time, time.Time) {
	if t == nil || len(t.Dates) == 0 {
		return time.Time{}, time.Time{}
	}
	return t.Dates[0], t.Dates[len(t.Dates)-1]
}
