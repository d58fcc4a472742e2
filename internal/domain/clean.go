package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ImputeFallback decides how a gap is filled when the row's city has no
// valid value for the column.
type ImputeFallback string

const (
	// FallbackGlobal fills with the column mean over all cities.
	FallbackGlobal ImputeFallback = "global"
	// FallbackNone leaves the gap unresolved (NaN).
	FallbackNone ImputeFallback = "none"
)

// SentinelConditions are placeholder conditions that carry no observation.
var SentinelConditions = []string{"Unknown", "Null"}

// CleanOptions configures Clean.
type CleanOptions struct {
	Fallback ImputeFallback
}

// CleanStats describes what Clean changed.
type CleanStats struct {
	RowsIn            int
	RowsOut           int
	Imputed           map[string]int // filled gaps per column
	Unresolved        map[string]int // gaps left as NaN per column
	DroppedIncomplete int
	DroppedSentinel   int
}

type numericColumn struct {
	name  string
	field func(*Observation) *float64
}

var imputedColumns = []numericColumn{
	{ColTemperatureCelsius, func(o *Observation) *float64 { return &o.TemperatureCelsius }},
	{ColHumidity, func(o *Observation) *float64 { return &o.Humidity }},
	{ColWindSpeed, func(o *Observation) *float64 { return &o.WindSpeed }},
}

// Clean repairs the table in place: numeric gaps are imputed with the city
// mean, rows without a date or condition are dropped, conditions are
// normalized, and rows with a sentinel condition are dropped. An empty
// result is valid.
func Clean(t *Table, opts CleanOptions) CleanStats {
	stats := CleanStats{
		RowsIn:     len(t.Rows),
		Imputed:    make(map[string]int, len(imputedColumns)),
		Unresolved: make(map[string]int, len(imputedColumns)),
	}

	for _, col := range imputedColumns {
		filled, unresolved := imputeColumn(t.Rows, col, opts.Fallback)
		stats.Imputed[col.name] = filled
		stats.Unresolved[col.name] = unresolved
	}

	kept := t.Rows[:0]
	for _, row := range t.Rows {
		if strings.TrimSpace(row.Date) == "" || strings.TrimSpace(row.WeatherCondition) == "" {
			stats.DroppedIncomplete++
			continue
		}
		row.WeatherCondition = NormalizeCondition(row.WeatherCondition)
		if IsSentinelCondition(row.WeatherCondition) {
			stats.DroppedSentinel++
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
	stats.RowsOut = len(kept)

	return stats
}

// imputeColumn fills missing values of one column with the mean of the
// row's city. Rows without a city only receive the global fallback.
func imputeColumn(rows []Observation, col numericColumn, fallback ImputeFallback) (filled, unresolved int) {
	type mean struct {
		sum float64
		n   int
	}
	byCity := make(map[string]*mean)
	var global mean

	for i := range rows {
		v := *col.field(&rows[i])
		if IsMissing(v) {
			continue
		}
		global.sum += v
		global.n++
		if rows[i].City == "" {
			continue
		}
		m, ok := byCity[rows[i].City]
		if !ok {
			m = &mean{}
			byCity[rows[i].City] = m
		}
		m.sum += v
		m.n++
	}

	for i := range rows {
		p := col.field(&rows[i])
		if !IsMissing(*p) {
			continue
		}
		if m, ok := byCity[rows[i].City]; ok {
			*p = m.sum / float64(m.n)
			filled++
			continue
		}
		if fallback == FallbackGlobal && global.n > 0 {
			*p = global.sum / float64(global.n)
			filled++
			continue
		}
		unresolved++
	}
	return filled, unresolved
}

// NormalizeCondition trims surrounding whitespace and title-cases the
// condition, e.g. " partly CLOUDY " -> "Partly Cloudy".
func NormalizeCondition(condition string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(condition))
}

// IsSentinelCondition reports whether a normalized condition is a placeholder.
func IsSentinelCondition(condition string) bool {
	for _, s := range SentinelConditions {
		if condition == s {
			return true
		}
	}
	return false
}
