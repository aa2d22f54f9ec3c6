// Package fracdiff is the root of a toolkit for fixed-width window fractional
// differencing (FFD) of financial time series.
//
// Integer differencing makes a price series stationary at the cost of
// erasing its memory. Fractional differencing with an order d in [0, 1]
// trades the two off: the smallest d whose differenced series passes an
// Augmented Dickey-Fuller test keeps as much memory as possible while still
// being stationary.
//
// # Quick Start
//
// Search a grid of orders for the minimum stationary one:
//
//	loader := timeseries.NewCSVLoader("data")
//	scanner := fracdiff.NewScanner(loader, nil, nil)
//	res, _ := scanner.Search(ctx, "SPY")
//	if res.Found {
//		fmt.Println("minimum d:", res.Order)
//	}
//
// Difference a series at a fixed order:
//
//	out, _ := fracdiff.FFD(series, 0.4, fracdiff.DefaultThreshold)
//
// # Packages
//
//   - fracdiff: FFD weights, windowed differencing, the order scan and selection
//   - stats: Augmented Dickey-Fuller test with MacKinnon p-values
//   - timeseries: Series and Frame types, CSV loading and writing
//   - cmd/fracdiff: command line interface
package fracdiff
