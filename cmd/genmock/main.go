// Command genmock writes a deterministic, deliberately messy weather CSV for
// exercising the pipeline: mixed date formats, inconsistent condition
// casing, missing-value literals, sentinel conditions, and one city that
// never reports a temperature.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/weather_data.csv -rows 500 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
)

var baseDate = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

type city struct {
	name     string
	meanTemp float64
	humidity float64
	wind     float64
}

var cities = []city{
	{name: "Lagos", meanTemp: 31, humidity: 80, wind: 11},
	{name: "Cairo", meanTemp: 27, humidity: 25, wind: 15},
	{name: "Nairobi", meanTemp: 22, humidity: 60, wind: 9},
	{name: "London", meanTemp: 10, humidity: 82, wind: 19},
	{name: "Oslo", meanTemp: 1, humidity: 74, wind: 23},
	{name: "Tokyo", meanTemp: 15, humidity: 58, wind: 12},
	{name: "Sydney", meanTemp: 23, humidity: 64, wind: 17},
	{name: "Mumbai", meanTemp: 30, humidity: 70, wind: 13},
	// Never reports a temperature, so every value has to come from the
	// global mean.
	{name: "Atlantis", meanTemp: math.NaN(), humidity: 90, wind: 30},
}

var conditions = []string{
	"Sunny", "sunny", " Sunny ", "Rainy", "RAINY", "Cloudy", "partly cloudy",
	"Windy", "Snowy", "Unknown", "Null", "", "N/A",
}

var missingLiterals = []string{"", "NA", "N/A", "NULL", "null", "NaN", "None"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated CSV")
	rows := flag.Int("rows", 500, "number of data rows to generate")
	seed := flag.Uint64("seed", 42, "random seed; the same seed yields the same file")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *rows < 0 {
		return fmt.Errorf("-rows must not be negative, got %d", *rows)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()

	if err := generate(f, *rows, *seed); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("wrote %d rows to %s", *rows, *out)
	return nil
}

func generate(w io.Writer, rows int, seed uint64) error {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	cw := csv.NewWriter(w)

	header := []string{"city", "date", "weather_condition", "temperature_celsius", "humidity_percent", "wind_speed_kph"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range rows {
		c := cities[i%len(cities)]
		day := baseDate.AddDate(0, 0, i/len(cities))
		layout := domain.DateLayouts[rng.IntN(len(domain.DateLayouts))]

		record := []string{
			c.name,
			day.Format(layout),
			conditions[rng.IntN(len(conditions))],
			sample(rng, c.meanTemp, 5, 0.1),
			sample(rng, c.humidity, 8, 0.1),
			sample(rng, c.wind, 4, 0.15),
		}
		if rng.Float64() < 0.03 {
			record[1] = ""
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// sample draws a value around mean, or a missing literal with probability
// pMissing. A NaN mean always yields a missing literal.
func sample(rng *rand.Rand, mean, stddev, pMissing float64) string {
	if math.IsNaN(mean) || rng.Float64() < pMissing {
		return missingLiterals[rng.IntN(len(missingLiterals))]
	}
	v := math.Round((rng.NormFloat64()*stddev+mean)*10) / 10
	return strconv.FormatFloat(v, 'f', -1, 64)
}
