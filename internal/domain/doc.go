// Package domain models city weather observations and the pure functions
// that clean, transform, and summarize them.
//
// # Input Conventions
//
// Observations arrive as CSV rows with one reading per city per day:
//
//	city,date,weather_condition,temperature_celsius,humidity,wind_speed
//	Lagos,14-03-2024, sunny ,31.5,78,12
//
// Older exports name the last two columns humidity_percent and
// wind_speed_kph; both spellings are accepted (see [ColumnAliases]).
//
// Missing values:
//
//	Numeric cells that are empty or hold one of the pandas-style missing
//	literals (NA, NaN, NULL, None, ...) are loaded as NaN. See [Missing] and
//	[IsMissing]. Text cells holding those literals are loaded as "".
//
// Sentinel conditions:
//
//	"Unknown" and "Null" are placeholders written by the upstream collector
//	when no condition was reported. They are compared after normalization
//	(trimmed, title-cased), so " unknown " is also a sentinel. Note that the
//	upper-case "NULL" is a missing literal and never reaches this check.
//
// Date formats:
//
//	Dates are recorded in whatever format the station used. [ParseDate]
//	tries the layouts in [DateLayouts] in order; month-first wins over
//	day-first for slash-separated values ("03/04/2024" is March 4th).
//	Normalized dates are written as YYYY-MM-DD.
//
// # Processing Order
//
//	Clean:      impute numeric gaps per city → drop incomplete rows →
//	            normalize condition → drop sentinel rows
//	Transform:  normalize dates → derive temperature_fahrenheit
//	Summarize:  per-city mean temperature → stable descending top N
//
// Imputation runs before incomplete rows are dropped, so a row without a date
// still contributes its temperature to its city's mean.
package domain
