// Package fracdiff estimates the minimum fractional differencing order that
// makes a series stationary, using the fixed-width window (FFD) method of
// López de Prado (2018).
//
// # Kernel and differencing
//
//	w, _ := fracdiff.Weights(0.4, 1e-5)     // oldest lag first, last weight is 1
//	out, _ := fracdiff.FFD(logPrices, 0.4, fracdiff.DefaultThreshold)
//
// # Minimum order search
//
// A Scanner loads a series, differences it at every candidate order, and
// scores each result with a stationarity test (ADF by default) and the
// correlation with the original series:
//
//	loader := timeseries.NewCSVLoader("data")
//	scanner := fracdiff.NewScanner(loader, nil, fracdiff.DefaultConfig())
//	res, err := scanner.Search(ctx, "SPY")
//	if err == nil && res.Found {
//	    scanner.Generate(ctx, "SPY", res.Order, timeseries.NewCSVWriter("out"), "SPY_fracdiff.csv")
//	}
//
// The correlation compares the undifferenced series with the differenced one
// over their common timestamps, whose span shrinks as the kernel widens. Treat
// it as a memory indicator, not a validated statistic.
package fracdiff
