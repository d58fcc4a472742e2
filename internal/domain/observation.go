package domain

import (
	"math"
	"time"
)

// Canonical column names.
const (
	ColCity                  = "city"
	ColDate                  = "date"
	ColWeatherCondition      = "weather_condition"
	ColTemperatureCelsius    = "temperature_celsius"
	ColHumidity              = "humidity"
	ColWindSpeed             = "wind_speed"
	ColTemperatureFahrenheit = "temperature_fahrenheit"
)

// RequiredColumns lists the canonical columns every input file must carry.
var RequiredColumns = []string{
	ColCity,
	ColDate,
	ColWeatherCondition,
	ColTemperatureCelsius,
	ColHumidity,
	ColWindSpeed,
}

// ColumnAliases maps alternative input header names to their canonical column.
var ColumnAliases = map[string]string{
	"humidity_percent": ColHumidity,
	"wind_speed_kph":   ColWindSpeed,
}

// CanonicalColumn resolves an input header name to its canonical column.
// Unknown names are returned unchanged.
func CanonicalColumn(name string) string {
	if c, ok := ColumnAliases[name]; ok {
		return c
	}
	return name
}

// Missing returns the marker used for a missing numeric value.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v marks a missing numeric value.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Observation is one city weather reading. Numeric fields hold NaN when the
// value is missing; text fields hold "".
type Observation struct {
	City             string
	Date             string    // as read; rewritten to YYYY-MM-DD by Transform
	Day              time.Time // zero until Transform parses Date
	WeatherCondition string

	TemperatureCelsius    float64
	Humidity              float64
	WindSpeed             float64
	TemperatureFahrenheit float64

	// Extra holds input columns outside the fixed schema, keyed by header name.
	Extra map[string]string
}

// Table is an ordered set of observations sharing one column layout.
// Header keeps the input column names in input order.
type Table struct {
	Header []string
	Rows   []Observation
}

// HasColumn reports whether the header contains the canonical column.
func (t *Table) HasColumn(canonical string) bool {
	for _, h := range t.Header {
		if CanonicalColumn(h) == canonical {
			return true
		}
	}
	return false
}

// CitySummary is the mean temperature of one city.
type CitySummary struct {
	City           string
	AverageCelsius float64
	Observations   int // rows with a valid temperature
}
