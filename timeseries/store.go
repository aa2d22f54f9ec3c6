package timeseries

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// CSVLoader resolves a ticker to <Dir>/<ticker>.csv and returns its log prices.
type CSVLoader struct {
	Dir     string
	Options *CSVOptions
	Logger  zerolog.Logger
}

// NewCSVLoader creates a loader over dir using the default price options.
func NewCSVLoader(dir string) *CSVLoader {
	return &CSVLoader{Dir: dir, Options: DefaultCSVOptions(), Logger: zerolog.Nop()}
}

// Path returns the file a ticker resolves to.
func (l *CSVLoader) Path(ticker string) string {
	return filepath.Join(l.Dir, ticker+".csv")
}

// Load reads the price column of the ticker's file, takes the natural log and
// drops non-finite observations. Only the first configured column is used.
func (l *CSVLoader) Load(ctx context.Context, ticker string) (*Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prices, err := LoadCSV(l.Path(ticker), l.Options)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", ticker)
	}

	logPrices := LogPrices(prices)
	logPrices.Name = ticker
	if logPrices.IsEmpty() {
		return logPrices, errors.Wrapf(ErrNoData, "load %s", ticker)
	}

	l.Logger.Info().
		Str("ticker", ticker).
		Int("observations", logPrices.Len()).
		Str("from", logPrices.Start().Format("2006-01-02")).
		Str("to", logPrices.End().Format("2006-01-02")).
		Msg("loaded log prices")

	return logPrices, nil
}

// LogPrices returns the natural log of a price series with every
// non-finite result removed.
func LogPrices(prices *Series) *Series {
	logged := prices.Log()
	values := make([]float64, 0, logged.Len())
	timestamps := make([]time.Time, 0, logged.Len())
	for i, v := range logged.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
		timestamps = append(timestamps, logged.Timestamps[i])
	}
	return &Series{Timestamps: timestamps, Values: values, Name: prices.Name}
}

// CSVWriter persists series as CSV files under Dir.
type CSVWriter struct {
	Dir    string
	Logger zerolog.Logger
}

// NewCSVWriter creates a writer rooted at dir.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{Dir: dir, Logger: zerolog.Nop()}
}

// Write saves series to <Dir>/<destination>, creating Dir when needed.
func (w *CSVWriter) Write(ctx context.Context, series *Series, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return errors.Wrap(err, "CSVWriter mkdir")
	}
	path := filepath.Join(w.Dir, destination)
	if err := SaveCSV(series, path); err != nil {
		return err
	}
	w.Logger.Info().Str("path", path).Int("observations", series.Len()).Msg("series saved")
	return nil
}
