package fracdiff

import (
	"context"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/fracdiff/timeseries"
)

// ErrDataUnavailable is returned by Generate when the source yields no data.
// Scan reports the same condition as an empty Table.
var ErrDataUnavailable = errors.New("data unavailable")

// Loader resolves a source identifier to a date-indexed log-price series.
type Loader interface {
	Load(ctx context.Context, source string) (*timeseries.Series, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, source string) (*timeseries.Series, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, source string) (*timeseries.Series, error) {
	return f(ctx, source)
}

// Writer persists a series.
type Writer interface {
	Write(ctx context.Context, series *timeseries.Series, destination string) error
}

// TestResult is the outcome of a stationarity test.
type TestResult struct {
	Statistic      float64
	PValue         float64
	CriticalValues map[string]float64 // keyed by level, e.g. "5%"
}

// StationarityTest runs a unit root test over an ordered sample. It must be
// safe for concurrent use when the scanner runs more than one worker.
type StationarityTest interface {
	Test(values []float64) (*TestResult, error)
}

// TestFunc adapts a function to StationarityTest.
type TestFunc func(values []float64) (*TestResult, error)

// Test calls f.
func (f TestFunc) Test(values []float64) (*TestResult, error) {
	return f(values)
}

// Scanner searches candidate orders for the smallest one that makes a
// series stationary.
type Scanner struct {
	loader Loader
	test   StationarityTest
	config *Config
	logger zerolog.Logger
}

// NewScanner creates a scanner. A nil test uses the ADF test and a nil
// config uses DefaultConfig.
func NewScanner(loader Loader, test StationarityTest, config *Config) *Scanner {
	if test == nil {
		test = NewADFTest()
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Scanner{
		loader: loader,
		test:   test,
		config: config,
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used for progress and test failures.
func (s *Scanner) WithLogger(logger zerolog.Logger) *Scanner {
	s.logger = logger
	return s
}

// Config returns the scanner configuration.
func (s *Scanner) Config() *Config {
	return s.config
}

// Scan loads source and evaluates every configured order. When the loader
// fails or returns no observations the result is an empty Table and no
// candidate is evaluated.
func (s *Scanner) Scan(ctx context.Context, source string) (Table, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	series, ok := s.load(ctx, source)
	if !ok {
		return Table{}, ctx.Err()
	}
	return s.ScanSeries(ctx, series, s.config.Orders)
}

// ScanSeries evaluates each order against series. Candidates run
// concurrently; rows keep the order of orders.
func (s *Scanner) ScanSeries(ctx context.Context, series *timeseries.Series, orders []float64) (Table, error) {
	for _, d := range orders {
		if err := checkOrder(d); err != nil {
			return nil, err
		}
	}
	if series.IsEmpty() {
		return Table{}, nil
	}

	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rows := make(Table, len(orders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range orders {
		i, d := i, d
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := s.Evaluate(series, d)
			if err != nil {
				return errors.Wrapf(err, "order %.4f", d)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Evaluate differences series at order d and scores the result.
// Metrics that cannot be computed are left as NaN.
func (s *Scanner) Evaluate(series *timeseries.Series, d float64) (Row, error) {
	row := Row{
		D:               d,
		ADFStat:         math.NaN(),
		PValue:          math.NaN(),
		Corr:            math.NaN(),
		CriticalValue95: math.NaN(),
	}

	diffed, err := FFD(series, d, s.config.Threshold)
	if err != nil {
		return row, err
	}

	if _, original, differenced := series.Intersect(diffed); len(original) > 1 {
		row.Corr = stat.Correlation(original, differenced, nil)
	}

	sample := diffed.DropNaN()
	if sample.Len() > 1 {
		res, err := s.test.Test(sample.Values)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Float64("d", d).Int("observations", sample.Len()).
				Msg("stationarity test failed")
		case res != nil:
			row.ADFStat = res.Statistic
			row.PValue = res.PValue
			if cv, ok := res.CriticalValues["5%"]; ok {
				row.CriticalValue95 = cv
			}
		}
	}

	s.logger.Debug().Float64("d", d).Int("observations", sample.Len()).
		Float64("adf_stat", row.ADFStat).Float64("p_value", row.PValue).Float64("corr", row.Corr).
		Msg("order evaluated")
	return row, nil
}

// Result is the outcome of a full minimum order search.
type Result struct {
	Source       string
	Significance float64
	Table        Table
	Order        float64
	Found        bool
}

// Search scans source and selects the minimum order at the configured
// significance. An empty table means the data was unavailable.
func (s *Scanner) Search(ctx context.Context, source string) (*Result, error) {
	table, err := s.Scan(ctx, source)
	if err != nil {
		return nil, err
	}
	res := &Result{Source: source, Significance: s.config.Significance, Table: table}
	if len(table) == 0 {
		return res, nil
	}

	res.Order, res.Found, err = SelectMinimumOrder(table, s.config.Significance)
	if err != nil {
		return nil, err
	}
	if res.Found {
		s.logger.Info().Str("source", source).Float64("d", res.Order).
			Float64("significance", s.config.Significance).Msg("minimum order found")
	} else {
		s.logger.Info().Str("source", source).Float64("significance", s.config.Significance).
			Msg("no order achieved stationarity")
	}
	return res, nil
}

// Generate reloads source, differences it at order d and hands the result
// to w under destination.
func (s *Scanner) Generate(ctx context.Context, source string, d float64, w Writer, destination string) (*timeseries.Series, error) {
	series, ok := s.load(ctx, source)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.Wrap(ErrDataUnavailable, source)
	}

	diffed, err := FFD(series, d, s.config.Threshold)
	if err != nil {
		return nil, err
	}
	if err := w.Write(ctx, diffed, destination); err != nil {
		return nil, errors.Wrapf(err, "write %s", destination)
	}
	return diffed, nil
}

func (s *Scanner) load(ctx context.Context, source string) (*timeseries.Series, bool) {
	series, err := s.loader.Load(ctx, source)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", source).Msg("data loading failed")
		return nil, false
	}
	if series.IsEmpty() {
		s.logger.Warn().Str("source", source).Msg("source returned no observations")
		return nil, false
	}
	return series, true
}
