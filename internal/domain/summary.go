package domain

import "sort"

// CityAverages returns the mean temperature_celsius of every city, in order
// of each city's first row in the table. Missing temperatures are skipped; a
// city with no valid temperature is omitted. Rows without a city belong to
// no group and are ignored.
func CityAverages(rows []Observation) []CitySummary {
	index := make(map[string]int)
	var all []CitySummary
	var sums []float64

	for i := range rows {
		city := rows[i].City
		if city == "" {
			continue
		}
		j, ok := index[city]
		if !ok {
			j = len(all)
			index[city] = j
			all = append(all, CitySummary{City: city})
			sums = append(sums, 0)
		}
		if v := rows[i].TemperatureCelsius; !IsMissing(v) {
			sums[j] += v
			all[j].Observations++
		}
	}

	out := all[:0]
	for j, c := range all {
		if c.Observations == 0 {
			continue
		}
		c.AverageCelsius = sums[j] / float64(c.Observations)
		out = append(out, c)
	}
	return out
}

// TopCities returns the n warmest cities, hottest first. Equal averages keep
// their input order. The input slice is not modified.
func TopCities(averages []CitySummary, n int) []CitySummary {
	ranked := make([]CitySummary, len(averages))
	copy(ranked, averages)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageCelsius > ranked[j].AverageCelsius
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
