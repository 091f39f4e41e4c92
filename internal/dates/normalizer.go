package dates

import (
	"fmt"
	"strings"
	"time"
)

// OutputLayout is the layout used when a normalized date is written back
// into a table.
const OutputLayout = "2006-01-02"

// timestampLayouts are tried in order for tokens that contain a space,
// before falling back to calendarLayouts.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05 -0700",
}

// quarterAnchors maps a quarter code to the first day of its final month.
var quarterAnchors = map[string]string{
	"Q1": "03-01",
	"Q2": "06-01",
	"Q3": "09-01",
	"Q4": "12-01",
}

// centuryPrefix is prepended to every two-digit fiscal year.
const centuryPrefix = "20"

// Normalize converts a single raw token into a calendar date at midnight UTC.
//
// Tokens containing a space are treated as full timestamps
// ("2003-03-01 00:00:00") or written-out dates ("March 1, 2003") and keep
// only their date; a zone offset does not shift the day. Anything else must be a
// fiscal-quarter code ("11:Q2"), which is anchored to the first day of the
// quarter's last month in the 2000s.
func Normalize(token string) (time.Time, error) {
	if strings.Contains(token, " ") {
		return parseTimestamp(token)
	}
	return parseFiscalQuarter(token)
}

// NormalizeColumn normalizes every token in order. It stops at the first
// bad token and returns no partial result.
func NormalizeColumn(tokens []string) ([]time.Time, error) {
	out := make([]time.Time, len(tokens))
	for i, token := range tokens {
		d, err := Normalize(token)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

func parseTimestamp(token string) (time.Time, error) {
	if t, ok := parseLayouts(token, timestampLayouts); ok {
		return t, nil
	}
	if t, ok := parseLayouts(token, calendarLayouts); ok {
		return t, nil
	}
	return time.Time{}, newFormatError(token, KindInvalidDate, nil)
}

// parseLayouts returns the date of the first layout that parses s
func parseLayouts(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOf(t), true
		}
	}
	return time.Time{}, false
}

func parseFiscalQuarter(token string) (time.Time, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return time.Time{}, newFormatError(token, KindUnrecognizedShape, nil)
	}
	yy, quarter := parts[0], parts[1]

	anchor, ok := quarterAnchors[quarter]
	if !ok {
		return time.Time{}, newFormatError(token, KindUnknownQuarter, fmt.Errorf("quarter %q", quarter))
	}

	composed := centuryPrefix + yy + "-" + anchor
	t, err := time.Parse(OutputLayout, composed)
	if err != nil {
		return time.Time{}, newFormatError(token, KindInvalidDate, err)
	}
	return t, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
