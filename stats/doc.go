// Package stats provides unit root testing for time series.
//
// # Augmented Dickey-Fuller
//
// The null hypothesis is that the series has a unit root (is non-stationary).
// A p-value below the chosen significance rejects it:
//
//	res, err := stats.ADFuller(values, stats.DefaultADFOptions())
//	if err != nil {
//	    // too few observations or a degenerate series
//	}
//	fmt.Printf("ADF: stat=%.4f p=%.4f lag=%d 5%%=%.4f\n",
//	    res.Statistic, res.PValue, res.UsedLag, res.CriticalValues["5%"])
//
// Lag order is chosen by AIC (default), BIC, or fixed via ADFOptions.
// P-values follow the MacKinnon (1994) response surface and critical values
// the MacKinnon (2010) finite-sample tables.
package stats
