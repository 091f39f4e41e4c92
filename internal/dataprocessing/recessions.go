package dataprocessing

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"housingdata/internal/dates"
	apperrors "housingdata/internal/errors"
	"housingdata/pkg/contracts/domain"
)

// Recession table columns holding dates
const (
	RecessionStart = "Start"
	RecessionEnd   = "End"
)

func (h *HousingDatasets) loadRecessions() (*domain.Table, error) {
	filePath := h.path(domain.RecessionsWorkbook)
	ws, err := openSheet(filePath, "")
	if err != nil {
		return nil, err
	}
	defer ws.Close()
	rows, sheet := ws.rows, ws.name

	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("recession sheet is empty", nil).
			WithContext("file", filePath).
			WithContext("sheet", sheet)
	}

	var names []string
	var cols []int
	for j := range rows[0] {
		if n := rows.cell(0, j); n != "" {
			names = append(names, n)
			cols = append(cols, j)
		}
	}
	names = uniqueNames(names)

	startIdx, endIdx := -1, -1
	for k, n := range names {
		switch n {
		case RecessionStart:
			startIdx = k
		case RecessionEnd:
			endIdx = k
		}
	}
	if startIdx < 0 || endIdx < 0 {
		return nil, apperrors.NewParsingError("recession sheet needs Start and End columns", nil).
			WithContext("file", filePath).
			WithContext("columns", names)
	}

	values := make([][]string, len(cols))
	var starts []time.Time
	for i := 1; i < len(rows); i++ {
		if rows.emptyRow(i) {
			continue
		}

		start, err := recessionDate(ws, i, cols[startIdx])
		if err != nil {
			return nil, apperrors.NewParsingError("invalid Start date", fmt.Errorf("row %d: %w", i, err)).
				WithContext("file", filePath)
		}
		var end time.Time
		if rows.cell(i, cols[endIdx]) != "" {
			end, err = recessionDate(ws, i, cols[endIdx])
		}
		if err != nil {
			return nil, apperrors.NewParsingError("invalid End date", fmt.Errorf("row %d: %w", i, err)).
				WithContext("file", filePath)
		}
		starts = append(starts, start)

		for k, j := range cols {
			switch k {
			case startIdx:
				values[k] = append(values[k], start.Format(dates.OutputLayout))
			case endIdx:
				values[k] = append(values[k], formatOptional(end))
			default:
				values[k] = append(values[k], rows.cell(i, j))
			}
		}
	}

	cs := make([]series.Series, len(names))
	for k, n := range names {
		cs[k] = series.New(values[k], series.String, n)
	}
	frame := dataframe.New(cs...)
	if frame.Err != nil {
		return nil, apperrors.NewParsingError("failed to build table", frame.Err).
			WithContext("file", filePath)
	}

	return &domain.Table{
		Name:  "recessions",
		Title: "List of recessions in the United States",
		Dates: starts,
		Frame: frame,
	}, nil
}

// recessionDate parses one Start or End cell. Date-formatted numbers are
// Excel serials; text and plain numbers such as a bare year go through
// dates.ParseCalendar.
func recessionDate(ws *worksheet, row, col int) (time.Time, error) {
	raw := ws.rows.cell(row, col)
	if ws.dateCell(row, col) {
		if t, ok := excelSerial(raw); ok {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return dates.ParseCalendar(raw)
}

// formatOptional renders a date, leaving unknown (zero) dates blank
func formatOptional(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dates.OutputLayout)
}
