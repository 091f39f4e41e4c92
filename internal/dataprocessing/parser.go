package dataprocessing

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "housingdata/internal/errors"
)

// timestampLayout matches how spreadsheet date cells render as text, so they
// can be fed to the mixed date normalizer.
const timestampLayout = "2006-01-02 15:04:05"

// sheetRows holds the raw cell values of one worksheet
type sheetRows [][]string

// cell returns the trimmed value at (row, col) or "" when out of range
func (r sheetRows) cell(row, col int) string {
	if row < 0 || row >= len(r) || col < 0 || col >= len(r[row]) {
		return ""
	}
	return strings.TrimSpace(r[row][col])
}

// emptyRow reports whether every cell in the row is blank
func (r sheetRows) emptyRow(row int) bool {
	if row < 0 || row >= len(r) {
		return true
	}
	for _, v := range r[row] {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// worksheet is one sheet of an open workbook. rows holds the unformatted
// cell values; the workbook stays open so cell formats can be inspected.
type worksheet struct {
	file *excelize.File
	name string
	rows sheetRows
}

// openSheet opens a workbook and reads one sheet. An empty sheet name selects
// the first sheet. Callers must Close the returned worksheet.
func openSheet(filePath, sheet string) (*worksheet, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fileError(filePath, err)
	}

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			f.Close()
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).
				WithContext("file", filePath)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		f.Close()
		var missing excelize.ErrSheetNotExist
		if errors.As(err, &missing) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("sheet %q", sheet), err).
				WithContext("file", filePath)
		}
		return nil, apperrors.NewParsingError("failed to read sheet", err).
			WithContext("file", filePath).
			WithContext("sheet", sheet)
	}
	return &worksheet{file: f, name: sheet, rows: sheetRows(rows)}, nil
}

// Close releases the workbook
func (w *worksheet) Close() error {
	return w.file.Close()
}

// dateCell reports whether the cell at (row, col) is a number displayed with
// a date or time format, which is how spreadsheets store dates.
func (w *worksheet) dateCell(row, col int) bool {
	if w.rows.cell(row, col) == "" {
		return false
	}
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}

	typ, err := w.file.GetCellType(w.name, ref)
	if err != nil {
		return false
	}
	switch typ {
	case excelize.CellTypeDate:
		return true
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
	default:
		return false
	}

	styleID, err := w.file.GetCellStyle(w.name, ref)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := w.file.GetStyle(styleID)
	if err != nil {
		return false
	}
	return isDateFormat(style)
}

// dateToken renders a date cell the way the normalizer expects it.
// Date-formatted numbers become "YYYY-MM-DD HH:MM:SS"; anything else passes
// through as written.
func (w *worksheet) dateToken(row, col int) string {
	raw := w.rows.cell(row, col)
	if w.dateCell(row, col) {
		if t, ok := excelSerial(raw); ok {
			return t.Format(timestampLayout)
		}
	}
	return raw
}

// isDateFormat reports whether a cell style displays numbers as dates or times
func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return dateFormatCode(*style.CustomNumFmt)
	}
	id := style.NumFmt
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// dateFormatCode reports whether a number format code has date or time
// placeholders outside quoted literals and [..] sections.
func dateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '\\':
			i++
		case c == '[':
			inBracket = true
		case c == ']':
			inBracket = false
		case inBracket:
		default:
			switch c | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

// fileError classifies a failure to open a dataset file
func fileError(filePath string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return apperrors.NewNotFoundError(fmt.Sprintf("dataset file %s", filePath), err)
	}
	return apperrors.NewStorageError("failed to open dataset file", err).
		WithContext("file", filePath)
}

// excelSerial converts a raw numeric cell to a timestamp. ok is false when
// the cell is not a number.
func excelSerial(raw string) (time.Time, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(v, false)
	if err != nil {
		return time.Time{}, false
	}
	return t.Round(time.Second), true
}

// parseValue parses a numeric cell; blank or non-numeric cells become NaN
func parseValue(raw string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// uniqueNames suffixes repeated column names with ".1", ".2", ...
func uniqueNames(names []string) []string {
	seen := make(map[string]int, len(names))
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}

	out := make([]string, len(names))
	for i, n := range names {
		count := seen[n]
		seen[n] = count + 1
		if count == 0 {
			out[i] = n
			continue
		}
		candidate := fmt.Sprintf("%s.%d", n, count)
		for taken[candidate] {
			count++
			candidate = fmt.Sprintf("%s.%d", n, count)
		}
		seen[n] = count + 1
		taken[candidate] = true
		out[i] = candidate
	}
	return out
}
