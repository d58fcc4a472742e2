// Command validate checks a cleaned weather CSV, and optionally the top-N
// report produced from it, against the pipeline's output guarantees: no
// incomplete or sentinel rows, normalized dates, a consistent Fahrenheit
// column, and a report that matches the averages recomputed from the CSV.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv outputs/transformed_weather_data.csv \
//	  -report outputs/top_5_hottest_cities.txt \
//	  -top 5
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/adapter/csvfile"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
)

// Averages in the report are printed with two decimals.
const reportTolerance = 0.005

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the cleaned CSV")
	reportPath := flag.String("report", "", "path to the top-N report (optional)")
	top := flag.Int("top", 5, "N the report was generated with")
	flag.Parse()

	if *csvPath == "" || *top <= 0 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *reportPath, *top); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath, reportPath string, top int) int {
	fmt.Println("=== Weather Output Validation ===")
	fmt.Println()

	table, err := csvfile.Load(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load cleaned CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(table),
		validateRows(table.Rows),
		validateConversion(table.Rows),
	}

	if reportPath != "" {
		lines, err := loadReport(reportPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load report: %v\n", err)
			return 1
		}
		phases = append(phases, validateReport(lines, table.Rows, top))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d cleaned, %d cities\n", len(table.Rows), len(domain.CityAverages(table.Rows)))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateSchema(t *domain.Table) *phase {
	p := &phase{name: "Schema"}
	for _, col := range append(append([]string(nil), domain.RequiredColumns...), domain.ColTemperatureFahrenheit) {
		if !t.HasColumn(col) {
			p.errorf("missing column %s", col)
		}
	}
	return p
}

func validateRows(rows []domain.Observation) *phase {
	p := &phase{name: "Row integrity"}
	for i, r := range rows {
		line := i + 2
		if strings.TrimSpace(r.City) == "" {
			p.errorf("line %d: empty city", line)
		}
		if strings.TrimSpace(r.WeatherCondition) == "" {
			p.errorf("line %d: empty weather_condition", line)
		}
		if domain.IsSentinelCondition(r.WeatherCondition) {
			p.errorf("line %d: sentinel weather_condition %q", line, r.WeatherCondition)
		}
		if norm := domain.NormalizeCondition(r.WeatherCondition); norm != r.WeatherCondition {
			p.errorf("line %d: weather_condition %q not normalized (want %q)", line, r.WeatherCondition, norm)
		}
		if _, err := time.Parse(domain.NormalizedDateLayout, r.Date); err != nil {
			p.errorf("line %d: date %q not in %s form", line, r.Date, domain.NormalizedDateLayout)
		}
	}
	return p
}

func validateConversion(rows []domain.Observation) *phase {
	p := &phase{name: "Fahrenheit conversion"}
	for i, r := range rows {
		line := i + 2
		c, f := r.TemperatureCelsius, r.TemperatureFahrenheit
		switch {
		case domain.IsMissing(c) && domain.IsMissing(f):
		case domain.IsMissing(c) != domain.IsMissing(f):
			p.errorf("line %d: celsius and fahrenheit disagree on missing", line)
		case math.Abs(domain.CelsiusToFahrenheit(c)-f) > 1e-9:
			p.errorf("line %d: %g°C should be %g°F, got %g", line, c, domain.CelsiusToFahrenheit(c), f)
		}
	}
	return p
}

func validateReport(lines []reportLine, rows []domain.Observation, top int) *phase {
	p := &phase{name: "Top-N report"}

	want := domain.TopCities(domain.CityAverages(rows), top)
	if len(lines) != len(want) {
		p.errorf("report lists %d cities, want %d", len(lines), len(want))
	}

	for i, l := range lines {
		if i > 0 && l.average > lines[i-1].average {
			p.errorf("%s (%.2f) ranked below %s (%.2f)", l.city, l.average, lines[i-1].city, lines[i-1].average)
		}
		if i >= len(want) {
			continue
		}
		if l.city != want[i].City {
			p.errorf("rank %d: got %s, want %s", i+1, l.city, want[i].City)
		}
		if math.Abs(l.average-want[i].AverageCelsius) > reportTolerance {
			p.errorf("rank %d: %s average %.2f, recomputed %.4f", i+1, l.city, l.average, want[i].AverageCelsius)
		}
	}
	return p
}

// ── Report loading ──

type reportLine struct {
	city    string
	average float64
}

// loadReport parses the "City: 12.34°C" lines of a report, skipping the
// header and the empty-ranking message.
func loadReport(path string) ([]reportLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []reportLine
	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		text := sc.Text()
		if lineNum <= 2 || !strings.HasSuffix(text, "°C") {
			continue
		}
		idx := strings.LastIndex(text, ": ")
		if idx < 0 {
			return nil, fmt.Errorf("line %d: malformed entry %q", lineNum, text)
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(text[idx+2:], "°C"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		lines = append(lines, reportLine{city: text[:idx], average: v})
	}
	return lines, sc.Err()
}
