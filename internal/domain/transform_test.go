package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	march14 := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"day-month-year dashes", "14-03-2024", march14},
		{"day-month-year dots", "14.03.2024", march14},
		{"month/day/year", "03/14/2024", march14},
		{"iso", "2024-03-14", march14},
		{"day/month/year when month-first is invalid", "14/03/2024", march14},
		{"month-day-year when day-first is invalid", "03-25-2024", time.Date(2024, time.March, 25, 0, 0, 0, 0, time.UTC)},
		{"month.day.year when day-first is invalid", "3.25.2024", time.Date(2024, time.March, 25, 0, 0, 0, 0, time.UTC)},
		{"year.month.day", "2024.03.14", march14},
		{"year/month/day", "2024/3/14", march14},
		{"unpadded", "4-3-2024", time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)},
		{"ambiguous slash is month-first", "03/04/2024", time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", " 2024-03-14 ", march14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	for _, bad := range []string{"", "yesterday", "2024-13-45", "32-01-2024", "14 March 2024"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseDate(bad)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errUnrecognizedDate))
		})
	}
}

func TestCelsiusToFahrenheit(t *testing.T) {
	assert.InDelta(t, 32.0, CelsiusToFahrenheit(0), 1e-9)
	assert.InDelta(t, 212.0, CelsiusToFahrenheit(100), 1e-9)
	assert.InDelta(t, -40.0, CelsiusToFahrenheit(-40), 1e-9)
	assert.InDelta(t, 98.6, CelsiusToFahrenheit(37), 1e-9)
	assert.True(t, IsMissing(CelsiusToFahrenheit(Missing())))
}

func TestTransform(t *testing.T) {
	tbl := newTable(
		obs("Lagos", "14-03-2024", testSunny, 31.5, 78, 12),
		obs("Oslo", "2024/1/2", "Snowy", -3, 85, 20),
	)

	stats, err := Transform(tbl, DatePolicyFail)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DroppedBadDate)

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "2024-03-14", tbl.Rows[0].Date)
	assert.Equal(t, "2024-01-02", tbl.Rows[1].Date)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), tbl.Rows[1].Day)

	for _, row := range tbl.Rows {
		assert.InDelta(t, row.TemperatureCelsius*9/5+32, row.TemperatureFahrenheit, 1e-9)
	}
	assert.Equal(t, ColTemperatureFahrenheit, tbl.Header[len(tbl.Header)-1])
}

func TestTransform_HeaderNotDuplicated(t *testing.T) {
	tbl := newTable(obs("Lagos", "2024-03-14", testSunny, 30, 70, 10))

	_, err := Transform(tbl, DatePolicyFail)
	require.NoError(t, err)
	_, err = Transform(tbl, DatePolicyFail)
	require.NoError(t, err)

	count := 0
	for _, h := range tbl.Header {
		if h == ColTemperatureFahrenheit {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "2024-03-14", tbl.Rows[0].Date, "normalized dates parse again")
}

func TestTransform_BadDatePolicy(t *testing.T) {
	rows := func() *Table {
		return newTable(
			obs("Lagos", "14-03-2024", testSunny, 31, 78, 12),
			obs("Lagos", "not a date", testSunny, 30, 78, 12),
			obs("Lagos", "15-03-2024", testSunny, 29, 78, 12),
		)
	}

	t.Run("fail", func(t *testing.T) {
		_, err := Transform(rows(), DatePolicyFail)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), "row 2")
		assert.Contains(t, err.Error(), "not a date")
	})

	t.Run("drop", func(t *testing.T) {
		tbl := rows()
		stats, err := Transform(tbl, DatePolicyDrop)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.DroppedBadDate)
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, "2024-03-14", tbl.Rows[0].Date)
		assert.Equal(t, "2024-03-15", tbl.Rows[1].Date)
	})
}

func TestTransform_UnresolvedCelsiusStaysMissing(t *testing.T) {
	tbl := newTable(obs("Quito", "2024-03-14", testSunny, Missing(), 50, 4))
	_, err := Transform(tbl, DatePolicyFail)
	require.NoError(t, err)
	assert.True(t, IsMissing(tbl.Rows[0].TemperatureFahrenheit))
}
