package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DatePolicy decides what Transform does with a date it cannot parse.
type DatePolicy string

const (
	// DatePolicyFail aborts the transform with ErrParse.
	DatePolicyFail DatePolicy = "fail"
	// DatePolicyDrop removes the row.
	DatePolicyDrop DatePolicy = "drop"
)

// NormalizedDateLayout is the layout dates are rewritten to.
const NormalizedDateLayout = "2006-01-02"

// DateLayouts are the accepted input layouts, tried in order. Day and month
// accept one or two digits.
var DateLayouts = []string{
	"2-1-2006",
	"2.1.2006",
	"1/2/2006",
	"2006-1-2",
	"2/1/2006",
	"1-2-2006",
	"1.2.2006",
	"2006.1.2",
	"2006/1/2",
}

var errUnrecognizedDate = errors.New("unrecognized date format")

// TransformStats describes what Transform changed.
type TransformStats struct {
	DroppedBadDate int
}

// ParseDate parses a date in any of DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, errUnrecognizedDate)
}

// CelsiusToFahrenheit converts a Celsius temperature. NaN stays NaN.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// Transform normalizes every row's date and derives temperature_fahrenheit,
// adding the column to the header when absent. Under DatePolicyFail the first
// unparseable date returns an ErrParse error and the table is left partially
// transformed.
func Transform(t *Table, policy DatePolicy) (TransformStats, error) {
	var stats TransformStats

	kept := t.Rows[:0]
	for i, row := range t.Rows {
		day, err := ParseDate(row.Date)
		if err != nil {
			if policy == DatePolicyDrop {
				stats.DroppedBadDate++
				continue
			}
			return stats, fmt.Errorf("%w: row %d (%s): %w", ErrParse, i+1, row.City, err)
		}
		row.Day = day
		row.Date = day.Format(NormalizedDateLayout)
		row.TemperatureFahrenheit = CelsiusToFahrenheit(row.TemperatureCelsius)
		kept = append(kept, row)
	}
	t.Rows = kept

	if !t.HasColumn(ColTemperatureFahrenheit) {
		t.Header = append(t.Header, ColTemperatureFahrenheit)
	}
	return stats, nil
}
