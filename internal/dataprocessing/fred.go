package dataprocessing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"housingdata/internal/dates"
	apperrors "housingdata/internal/errors"
	"housingdata/pkg/contracts/domain"
)

// fredDateColumns are the headers FRED has used for the observation date
var fredDateColumns = []string{"DATE", "observation_date"}

// fredMissing are the placeholders FRED writes for missing observations
var fredMissing = []string{"NA", "NaN", "<nil>", ".", ""}

// LoadFREDSeries reads <seriesID>.csv, a St. Louis Fed download with one
// date column and one value column named after the series.
func (h *HousingDatasets) LoadFREDSeries(seriesID string) (*domain.Table, error) {
	return h.observe(context.Background(), seriesID, func() (*domain.Table, error) {
		return h.loadFRED(seriesID, seriesID)
	})
}

func (h *HousingDatasets) loadFRED(name, seriesID string) (*domain.Table, error) {
	fileName := seriesID + ".csv"
	df, err := h.readCSV(fileName, dataframe.DetectTypes(false), dataframe.NaNValues(fredMissing))
	if err != nil {
		return nil, err
	}
	filePath := h.path(fileName)

	dateCol := findColumn(df.Names(), fredDateColumns...)
	if dateCol == "" {
		return nil, apperrors.NewParsingError("missing date column", nil).
			WithContext("file", filePath).
			WithContext("columns", df.Names())
	}
	valueCol := findColumn(df.Names(), seriesID)
	if valueCol == "" {
		valueCol = soleOtherColumn(df.Names(), dateCol)
	}
	if valueCol == "" {
		return nil, apperrors.NewParsingError(fmt.Sprintf("missing value column %s", seriesID), nil).
			WithContext("file", filePath).
			WithContext("columns", df.Names())
	}

	raw := df.Col(dateCol).Records()
	parsed := make([]time.Time, len(raw))
	for i, v := range raw {
		d, err := dates.ParseCalendar(v)
		if err != nil {
			return nil, apperrors.NewParsingError("invalid date column", fmt.Errorf("row %d: %w", i, err)).
				WithContext("file", filePath)
		}
		parsed[i] = d
	}

	frame := dataframe.New(
		series.New(dates.Format(parsed), series.String, domain.DateColumn),
		series.New(df.Col(valueCol).Records(), series.Float, domain.ValueColumn),
	)
	if frame.Err != nil {
		return nil, apperrors.NewParsingError("failed to build table", frame.Err).
			WithContext("file", filePath)
	}

	return &domain.Table{
		Name:       name,
		Title:      seriesID,
		ValueLabel: domain.ValueColumn,
		Dates:      parsed,
		Frame:      frame,
	}, nil
}

// readCSV loads a CSV file from the data directory into a dataframe
func (h *HousingDatasets) readCSV(fileName string, opts ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	filePath := h.path(fileName)
	f, err := os.Open(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fileError(filePath, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, opts...)
	if df.Err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("failed to parse CSV", df.Err).
			WithContext("file", filePath)
	}
	return df, nil
}

// findColumn returns the first name in names matching one of candidates,
// ignoring case and surrounding whitespace.
func findColumn(names []string, candidates ...string) string {
	for _, c := range candidates {
		for _, n := range names {
			if strings.EqualFold(strings.TrimSpace(n), c) {
				return n
			}
		}
	}
	return ""
}

// soleOtherColumn returns the only column besides skip, if there is exactly one
func soleOtherColumn(names []string, skip string) string {
	if len(names) != 2 {
		return ""
	}
	if names[0] == skip {
		return names[1]
	}
	return names[0]
}
