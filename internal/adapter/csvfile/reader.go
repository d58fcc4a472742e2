package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingLiterals are the cell values read as missing, matching the pandas
// defaults the upstream exports were produced with.
var utf8BOM = []byte("\ufeff")

var missingLiterals = []string{"", "#N/A", "#NA", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null", "<NA>"}

// Reader loads an observations CSV file.
// It implements pipeline.Extractor.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the CSV file at path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Extract loads the configured file into a Table.
func (r *Reader) Extract(_ context.Context) (*domain.Table, error) {
	t, err := Load(r.path)
	if err != nil {
		return nil, err
	}
	r.logger.Info("observations loaded", "path", r.path, "rows", len(t.Rows), "columns", len(t.Header))
	return t, nil
}

// Load reads the CSV file at path into a Table.
func Load(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrFileAccess, path, err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Decode reads CSV data with a header row into a Table. Every required
// column (or one of its aliases) must be present; numeric cells must be a
// number or a missing literal.
func Decode(r io.Reader) (*domain.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", domain.ErrFileAccess, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: no header row", domain.ErrSchema)
	}

	// gota rejects a header without records, so that case is handled here.
	header, empty, err := headerOnly(data)
	if err != nil {
		return nil, err
	}
	if empty {
		if _, err := resolveColumns(header); err != nil {
			return nil, err
		}
		return &domain.Table{Header: header}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingLiterals),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: read csv: %w", domain.ErrParse, df.Err)
	}

	header = df.Names()
	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	n := df.Nrow()
	rows := make([]domain.Observation, n)

	text := func(name string, set func(*domain.Observation, string)) {
		col := df.Col(name)
		values, nan := col.Records(), col.IsNaN()
		for i := range rows {
			if nan[i] {
				continue
			}
			set(&rows[i], values[i])
		}
	}
	numeric := func(name string, set func(*domain.Observation, float64)) error {
		col := df.Col(name)
		values, nan := col.Records(), col.IsNaN()
		for i := range rows {
			v, err := parseNumber(values[i], nan[i])
			if err != nil {
				return fmt.Errorf("%w: line %d column %s: %w", domain.ErrParse, i+2, name, err)
			}
			set(&rows[i], v)
		}
		return nil
	}

	for i := range rows {
		rows[i].TemperatureFahrenheit = domain.Missing()
	}

	text(columns[domain.ColCity], func(o *domain.Observation, v string) { o.City = v })
	text(columns[domain.ColDate], func(o *domain.Observation, v string) { o.Date = v })
	text(columns[domain.ColWeatherCondition], func(o *domain.Observation, v string) { o.WeatherCondition = v })

	numericFields := []struct {
		canonical string
		set       func(*domain.Observation, float64)
	}{
		{domain.ColTemperatureCelsius, func(o *domain.Observation, v float64) { o.TemperatureCelsius = v }},
		{domain.ColHumidity, func(o *domain.Observation, v float64) { o.Humidity = v }},
		{domain.ColWindSpeed, func(o *domain.Observation, v float64) { o.WindSpeed = v }},
		{domain.ColTemperatureFahrenheit, func(o *domain.Observation, v float64) { o.TemperatureFahrenheit = v }},
	}
	for _, f := range numericFields {
		name, ok := columns[f.canonical]
		if !ok {
			continue
		}
		if err := numeric(name, f.set); err != nil {
			return nil, err
		}
	}

	for _, name := range extraColumns(header, columns) {
		col := df.Col(name)
		values, nan := col.Records(), col.IsNaN()
		for i := range rows {
			if rows[i].Extra == nil {
				rows[i].Extra = make(map[string]string)
			}
			if nan[i] {
				rows[i].Extra[name] = ""
				continue
			}
			rows[i].Extra[name] = values[i]
		}
	}

	return &domain.Table{Header: header, Rows: rows}, nil
}

// headerOnly reports whether data holds a header row and no records.
func headerOnly(data []byte) ([]string, bool, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, false, fmt.Errorf("%w: read header: %w", domain.ErrParse, err)
	}
	if _, err := cr.Read(); errors.Is(err, io.EOF) {
		return header, true, nil
	}
	return nil, false, nil
}

// resolveColumns maps each canonical column to the header name carrying it.
// When a column appears under several names the first one wins.
func resolveColumns(header []string) (map[string]string, error) {
	columns := make(map[string]string, len(header))
	for _, h := range header {
		c := domain.CanonicalColumn(h)
		if _, seen := columns[c]; !seen {
			columns[c] = h
		}
	}

	var missing []string
	for _, c := range domain.RequiredColumns {
		if _, ok := columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", domain.ErrSchema, strings.Join(missing, ", "))
	}
	return columns, nil
}

func extraColumns(header []string, columns map[string]string) []string {
	var extra []string
	for _, h := range header {
		if columns[domain.CanonicalColumn(h)] != h {
			extra = append(extra, h)
		}
	}
	return extra
}

func parseNumber(s string, nan bool) (float64, error) {
	s = strings.TrimSpace(s)
	if nan || isMissingLiteral(s) {
		return domain.Missing(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func isMissingLiteral(s string) bool {
	for _, m := range missingLiterals {
		if s == m {
			return true
		}
	}
	return false
}
