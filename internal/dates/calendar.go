package dates

import (
	"strings"
	"time"
)

// calendarLayouts covers the free-form dates found in hand-maintained
// spreadsheets such as the recession list.
var calendarLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"1/2/2006",
	"01/02/2006",
	"2006-01",
	"2006",
}

// ParseCalendar parses a free-form calendar date. Month- or year-only values
// resolve to the first day of that period.
func ParseCalendar(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, newFormatError(value, KindInvalidDate, nil)
	}
	if t, ok := parseLayouts(s, calendarLayouts); ok {
		return t, nil
	}
	return time.Time{}, newFormatError(value, KindInvalidDate, nil)
}

// Format renders normalized dates with OutputLayout.
func Format(ds []time.Time) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Format(OutputLayout)
	}
	return out
}
