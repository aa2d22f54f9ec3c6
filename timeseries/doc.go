// Package timeseries provides time series data structures and utilities.
//
// A Series pairs strictly increasing timestamps with float64 values; NaN
// marks a missing observation. A Frame holds several named columns over one
// index.
//
// # Loading prices
//
// Load the Close column of data/SPY.csv as log prices:
//
//	loader := timeseries.NewCSVLoader("data")
//	logPrices, err := loader.Load(ctx, "SPY")
//
// Or read arbitrary columns:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumns = []string{"Open", "Close"}
//	frame, err := timeseries.LoadFrame("data/SPY.csv", opts)
//
// # Cleaning and alignment
//
//	filled := series.FillForward() // carry the last observation over gaps
//	dense := filled.DropNaN()      // drop what is still missing (leading gaps)
//	ts, a, b := x.Intersect(y)     // values on common timestamps
//
// # Writing
//
//	err := timeseries.SaveCSV(series, "out/SPY_fracdiff.csv")
package timeseries
