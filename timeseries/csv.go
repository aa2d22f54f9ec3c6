package timeseries

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrNoData is returned when a CSV source yields no usable rows.
var ErrNoData = errors.New("no valid data found in CSV")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn   string   // Column name for dates (default: "Date")
	ValueColumns []string // Columns to load (default: ["Close"])
	DateFormat   string   // Preferred date format (default: "2006-01-02")
	Delimiter    rune     // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for loading daily price files.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:   "Date",
		ValueColumns: []string{"Close"},
		DateFormat:   "2006-01-02",
		Delimiter:    ',',
	}
}

var fallbackDateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

func parseDate(s, preferred string) (time.Time, error) {
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, nil
		}
	}
	for _, layout := range fallbackDateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognised date %q", s)
}

// parseValue returns NaN for blank or NA-style cells.
func parseValue(s string) float64 {
	switch s {
	case "", "NA", "NaN", "nan", "null", "NULL":
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

// LoadFrame loads the configured value columns of a CSV file.
func LoadFrame(filename string, opts *CSVOptions) (*Frame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "LoadFrame open")
	}
	defer file.Close()

	return LoadFrameFromReader(bufio.NewReader(file), opts)
}

// LoadFrameFromReader loads the configured value columns from an io.Reader.
// Missing cells are kept as NaN; rows are ordered by date.
func LoadFrameFromReader(r io.Reader, opts *CSVOptions) (*Frame, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "LoadFrameFromReader header")
	}

	dateIdx := -1
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = clean(h)
		index[h] = i
		if h == opts.DateColumn {
			dateIdx = i
		}
	}
	if dateIdx == -1 {
		return nil, errors.Errorf("date column %q not found", opts.DateColumn)
	}

	columns := opts.ValueColumns
	if len(columns) == 0 {
		columns = DefaultCSVOptions().ValueColumns
	}
	valueIdx := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := index[name]
		if !ok {
			return nil, errors.Errorf("value column %q not found", name)
		}
		valueIdx[i] = idx
	}

	type row struct {
		ts     time.Time
		values []float64
	}
	var rows []row

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "LoadFrameFromReader line %d", line)
		}
		if dateIdx >= len(record) {
			continue
		}
		ts, err := parseDate(clean(record[dateIdx]), opts.DateFormat)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		values := make([]float64, len(valueIdx))
		for i, idx := range valueIdx {
			values[i] = math.NaN()
			if idx < len(record) {
				values[i] = parseValue(clean(record[idx]))
			}
		}
		rows = append(rows, row{ts: ts, values: values})
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ts.Before(rows[j].ts) })

	timestamps := make([]time.Time, len(rows))
	data := make([][]float64, len(columns))
	for c := range data {
		data[c] = make([]float64, len(rows))
	}
	for i, r := range rows {
		timestamps[i] = r.ts
		for c, v := range r.values {
			data[c][i] = v
		}
	}

	names := make([]string, len(columns))
	copy(names, columns)
	return NewFrame(timestamps, names, data)
}

// LoadCSV loads the first configured value column of a CSV file as a series.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	frame, err := LoadFrame(filename, opts)
	if err != nil {
		return nil, err
	}
	return frame.Column(0), nil
}

// LoadCSVColumn loads a specific column from a CSV file as a series.
func LoadCSVColumn(filename string, column string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.ValueColumns = []string{column}
	return LoadCSV(filename, opts)
}

// WriteCSV writes a series as "<dateColumn>,<name>" rows.
func WriteCSV(w io.Writer, series *Series, dateColumn string) error {
	if dateColumn == "" {
		dateColumn = "Date"
	}
	name := series.Name
	if name == "" {
		name = "value"
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{dateColumn, name}); err != nil {
		return errors.Wrap(err, "WriteCSV header")
	}
	for i, v := range series.Values {
		record := []string{
			formatTimestamp(series.Timestamps[i]),
			strconv.FormatFloat(v, 'g', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "WriteCSV row %d", i)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "WriteCSV flush")
}

// SaveCSV saves a time series to a CSV file.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "SaveCSV create")
	}
	if err := WriteCSV(file, series, ""); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "SaveCSV close")
}

// formatTimestamp keeps daily data in plain date form.
func formatTimestamp(ts time.Time) string {
	if ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 && ts.Nanosecond() == 0 {
		return ts.Format("2006-01-02")
	}
	return ts.Format(time.RFC3339)
}
