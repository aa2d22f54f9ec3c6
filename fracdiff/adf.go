package fracdiff

import (
	"github.com/sartorproj/fracdiff/stats"
)

// ADFTest is the StationarityTest backed by stats.ADFuller.
type ADFTest struct {
	Options *stats.ADFOptions
}

// NewADFTest returns a constant-only ADF test with AIC lag selection.
func NewADFTest() *ADFTest {
	return &ADFTest{Options: stats.DefaultADFOptions()}
}

// Test runs the Augmented Dickey-Fuller test on values.
func (t *ADFTest) Test(values []float64) (*TestResult, error) {
	res, err := stats.ADFuller(values, t.Options)
	if err != nil {
		return nil, err
	}
	return &TestResult{
		Statistic:      res.Statistic,
		PValue:         res.PValue,
		CriticalValues: res.CriticalValues,
	}, nil
}
