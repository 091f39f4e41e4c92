package dataprocessing

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"housingdata/internal/dates"
	apperrors "housingdata/internal/errors"
	"housingdata/pkg/contracts/domain"
)

// LoadNewYorkFedSheet reads one data sheet of the New York Fed household debt
// and credit workbook. headerRow is the 0-based row holding column names.
func (h *HousingDatasets) LoadNewYorkFedSheet(sheet string, headerRow int) (*domain.Table, error) {
	return h.observe(context.Background(), sheet, func() (*domain.Table, error) {
		return h.loadNewYorkFed(sheet, sheet, headerRow)
	})
}

func (h *HousingDatasets) loadNewYorkFed(name, sheet string, headerRow int) (*domain.Table, error) {
	filePath := h.path(domain.NewYorkFedWorkbook)
	if headerRow < 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("header row %d is negative", headerRow), nil).
			WithContext("sheet", sheet)
	}

	ws, err := openSheet(filePath, sheet)
	if err != nil {
		return nil, err
	}
	defer ws.Close()
	rows, sheet := ws.rows, ws.name

	if headerRow >= len(rows) {
		return nil, apperrors.NewParsingError(fmt.Sprintf("sheet has no header row %d", headerRow), nil).
			WithContext("file", filePath).
			WithContext("sheet", sheet)
	}

	title, valueLabel := sheetCaption(rows)

	// Column 0 is the date column; columns with a blank header are dropped.
	var names []string
	var cols []int
	for j := 1; j < len(rows[headerRow]); j++ {
		if n := rows.cell(headerRow, j); n != "" {
			names = append(names, n)
			cols = append(cols, j)
		}
	}
	names = uniqueNames(append([]string{domain.DateColumn}, names...))[1:]

	var tokens []string
	values := make([][]float64, len(cols))
	for i := headerRow + 1; i < len(rows); i++ {
		if rows.cell(i, 0) == "" {
			break
		}
		tokens = append(tokens, ws.dateToken(i, 0))
		for k, j := range cols {
			values[k] = append(values[k], parseValue(rows.cell(i, j)))
		}
	}

	parsed, err := dates.NormalizeColumn(tokens)
	if err != nil {
		return nil, apperrors.NewParsingError("invalid date column", err).
			WithContext("file", filePath).
			WithContext("sheet", sheet)
	}

	cs := make([]series.Series, 0, len(cols)+1)
	cs = append(cs, series.New(dates.Format(parsed), series.String, domain.DateColumn))
	for k, n := range names {
		cs = append(cs, series.New(values[k], series.Float, n))
	}
	frame := dataframe.New(cs...)
	if frame.Err != nil {
		return nil, apperrors.NewParsingError("failed to build table", frame.Err).
			WithContext("file", filePath).
			WithContext("sheet", sheet)
	}

	return &domain.Table{
		Name:       name,
		Title:      title,
		ValueLabel: valueLabel,
		Dates:      parsed,
		Frame:      frame,
	}, nil
}

// sheetCaption reads the title and value label from the top of a data sheet.
// Footnoted titles (containing "*") carry the footnote from the third row.
func sheetCaption(rows sheetRows) (string, string) {
	title := rows.cell(0, 0)
	valueLabel := rows.cell(1, 0)
	if strings.Contains(title, "*") {
		title += fmt.Sprintf("(%s)", rows.cell(2, 0))
	}
	return title, valueLabel
}
