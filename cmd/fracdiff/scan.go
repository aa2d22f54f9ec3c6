package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sartorproj/fracdiff/fracdiff"
	"github.com/sartorproj/fracdiff/timeseries"
)

var (
	scanConfigPath  string
	scanDataDir     string
	scanOutDir      string
	scanDateColumn  string
	scanPriceColumn string
	scanThreshold   float64
	scanAlpha       float64
	scanOrders      []float64
	scanWorkers     int
	scanFormat      string
	scanReportPath  string
	scanNoSave      bool
)

// newScanCmd implements 'fracdiff scan <ticker>'
func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <ticker>",
		Short: "Search for the minimum stationary differencing order",
		Long: `Load <data-dir>/<ticker>.csv, take log prices, difference them at every
candidate order and run an ADF test on each result. The smallest order whose
p-value is below --alpha is used to write <out-dir>/<ticker>_fracdiff.csv.

Example usage:
  fracdiff scan SPY                          # default grid 0, 0.1, ..., 1
  fracdiff scan SPY --orders 0.3,0.35,0.4    # custom grid
  fracdiff scan SPY --format json --no-save  # print the report only`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	f := cmd.Flags()
	f.StringVar(&scanConfigPath, "config", "", "YAML file with threshold, significance, orders and workers")
	f.StringVar(&scanDataDir, "data-dir", "data", "Directory holding <ticker>.csv price files")
	f.StringVar(&scanOutDir, "out-dir", "fractional_series", "Directory for the differenced series")
	f.StringVar(&scanDateColumn, "date-column", "Date", "Date column name")
	f.StringVar(&scanPriceColumn, "price-column", "Close", "Price column name")
	f.Float64Var(&scanThreshold, "threshold", fracdiff.DefaultThreshold, "FFD weight cutoff")
	f.Float64Var(&scanAlpha, "alpha", 0.05, "ADF p-value threshold for stationarity")
	f.Float64SliceVar(&scanOrders, "orders", nil, "Candidate orders (default 11 points in [0,1])")
	f.IntVar(&scanWorkers, "workers", 0, "Candidates evaluated concurrently (0 = one per CPU)")
	f.StringVar(&scanFormat, "format", "table", "Output format: table, json")
	f.StringVar(&scanReportPath, "report", "", "Also write the JSON report to this file")
	f.BoolVar(&scanNoSave, "no-save", false, "Do not write the differenced series")
	return cmd
}

// searchConfig layers the config file, FRACDIFF_* variables and explicitly
// set flags over the defaults.
func searchConfig(cmd *cobra.Command) (*fracdiff.Config, error) {
	cfg := fracdiff.DefaultConfig()
	if scanConfigPath != "" {
		loaded, err := fracdiff.LoadConfig(scanConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(fracdiff.EnvPrefix); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Threshold = scanThreshold
	}
	if flags.Changed("alpha") {
		cfg.Significance = scanAlpha
	}
	if flags.Changed("orders") {
		cfg.Orders = scanOrders
	}
	if flags.Changed("workers") {
		cfg.Workers = scanWorkers
	}
	return cfg, cfg.Validate()
}

func newLoader() *timeseries.CSVLoader {
	loader := timeseries.NewCSVLoader(scanDataDir)
	loader.Options.DateColumn = scanDateColumn
	loader.Options.ValueColumns = []string{scanPriceColumn}
	loader.Logger = logger
	return loader
}

func runScan(cmd *cobra.Command, args []string) error {
	ticker := args[0]
	cfg, err := searchConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	scanner := fracdiff.NewScanner(newLoader(), fracdiff.NewADFTest(), cfg).WithLogger(logger)

	logger.Info().Str("ticker", ticker).Int("orders", len(cfg.Orders)).
		Float64("threshold", cfg.Threshold).Msg("running fractional differencing analysis")

	res, err := scanner.Search(ctx, ticker)
	if err != nil {
		return err
	}
	if len(res.Table) == 0 {
		return errors.Errorf("data loading failed for %s, aborting analysis", ticker)
	}

	report := fracdiff.NewReport(res, cfg.Threshold)
	logger.Debug().Str("run_id", report.RunID).Msg("report built")
	if err := printReport(report); err != nil {
		return err
	}
	if scanReportPath != "" {
		if err := writeReport(report, scanReportPath); err != nil {
			return err
		}
	}

	if !res.Found {
		fmt.Printf("No differencing order achieved stationarity at the p < %.2f level.\n", res.Significance)
		return nil
	}
	fmt.Printf("Minimum d to achieve stationarity (p-value < %.2f): %.2f\n", res.Significance, res.Order)

	if scanNoSave {
		return nil
	}
	writer := timeseries.NewCSVWriter(scanOutDir)
	writer.Logger = logger
	_, err = scanner.Generate(ctx, ticker, res.Order, writer, ticker+"_fracdiff.csv")
	return err
}

func printReport(report *fracdiff.Report) error {
	switch scanFormat {
	case "json":
		return report.WriteJSON(os.Stdout)
	case "table":
		fmt.Printf("\n--- Fractional Differencing Analysis Results: %s ---\n", report.Source)
		return report.Results.WriteText(os.Stdout)
	}
	return errors.Errorf("unknown format %q", scanFormat)
}

func writeReport(report *fracdiff.Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create report")
	}
	if err := report.WriteJSON(file); err != nil {
		file.Close()
		return errors.Wrap(err, "write report")
	}
	logger.Info().Str("path", path).Msg("report saved")
	return errors.Wrap(file.Close(), "close report")
}
