package dates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  time.Time
	}{
		{"timestamp at midnight", "2003-03-01 00:00:00", day(2003, time.March, 1)},
		{"timestamp drops time of day", "2019-12-31 23:59:59", day(2019, time.December, 31)},
		{"timestamp with fraction", "2010-07-15 08:30:00.250", day(2010, time.July, 15)},
		{"timestamp without seconds", "2021-01-02 10:00", day(2021, time.January, 2)},
		{"timestamp with utc offset", "2003-03-01 00:00:00+00:00", day(2003, time.March, 1)},
		{"offset keeps the local day", "2003-03-01 23:30:00-05:00", day(2003, time.March, 1)},
		{"timestamp with numeric zone", "2003-03-01 08:00:00 +0100", day(2003, time.March, 1)},
		{"written out date", "March 1, 2003", day(2003, time.March, 1)},
		{"month and year", "Jun 2011", day(2011, time.June, 1)},
		{"quarter one", "03:Q1", day(2003, time.March, 1)},
		{"quarter two", "11:Q2", day(2011, time.June, 1)},
		{"quarter three", "08:Q3", day(2008, time.September, 1)},
		{"quarter four", "24:Q4", day(2024, time.December, 1)},
		{"century prefix applies uniformly", "99:Q4", day(2099, time.December, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.token)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		kind     ErrorKind
		sentinel error
	}{
		{"unknown quarter", "11:Q5", KindUnknownQuarter, ErrUnknownQuarter},
		{"lowercase quarter", "11:q2", KindUnknownQuarter, ErrUnknownQuarter},
		{"no separator", "abc", KindUnrecognizedShape, ErrUnrecognizedShape},
		{"empty token", "", KindUnrecognizedShape, ErrUnrecognizedShape},
		{"too many parts", "11:Q2:extra", KindUnrecognizedShape, ErrUnrecognizedShape},
		{"non numeric year", "ab:Q2", KindInvalidDate, ErrInvalidDate},
		{"single digit year", "1:Q2", KindInvalidDate, ErrInvalidDate},
		{"impossible day", "2003-02-30 00:00:00", KindInvalidDate, ErrInvalidDate},
		{"garbage with space", "not a date", KindInvalidDate, ErrInvalidDate},
		{"bad offset", "2003-03-01 00:00:00+zz:00", KindInvalidDate, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.token)
			require.Error(t, err)
			assert.True(t, got.IsZero())

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.token, fe.Token)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestFormatError_IsOnlyMatchesOwnKind(t *testing.T) {
	_, err := Normalize("11:Q5")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUnknownQuarter)
	assert.NotErrorIs(t, err, ErrUnrecognizedShape)
	assert.NotErrorIs(t, err, ErrInvalidDate)
	assert.Contains(t, err.Error(), "11:Q5")
}

func TestNormalizeColumn(t *testing.T) {
	got, err := NormalizeColumn([]string{"2003-03-01 00:00:00", "11:Q2"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(day(2003, time.March, 1)))
	assert.True(t, got[1].Equal(day(2011, time.June, 1)))
}

func TestNormalizeColumn_Empty(t *testing.T) {
	got, err := NormalizeColumn(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalizeColumn_FailsFast(t *testing.T) {
	tokens := []string{"03:Q1", "03:Q2", "bogus", "03:Q3"}

	got, err := NormalizeColumn(tokens)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "row 2")

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "bogus", fe.Token)
}

func TestParseCalendar(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2008-12-01", day(2008, time.December, 1)},
		{"2001-03-01 00:00:00", day(2001, time.March, 1)},
		{"December 2007", day(2007, time.December, 1)},
		{"Jul 1981", day(1981, time.July, 1)},
		{"March 6, 1933", day(1933, time.March, 6)},
		{"6/1/1990", day(1990, time.June, 1)},
		{" 1797 ", day(1797, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseCalendar(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseCalendar_Invalid(t *testing.T) {
	for _, value := range []string{"", "   ", "someday", "13/45/2001"} {
		_, err := ParseCalendar(value)
		assert.ErrorIs(t, err, ErrInvalidDate, value)
	}
}

func TestFormat(t *testing.T) {
	got := Format([]time.Time{day(2011, time.June, 1), day(2003, time.March, 1)})
	assert.Equal(t, []string{"2011-06-01", "2003-03-01"}, got)
}
