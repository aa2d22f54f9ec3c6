package fracdiff

import (
	"math"
)

// Row scores one candidate order. Undefined metrics are NaN.
type Row struct {
	D               float64
	ADFStat         float64
	PValue          float64
	Corr            float64
	CriticalValue95 float64
}

// Tested reports whether the stationarity test produced a p-value.
func (r Row) Tested() bool {
	return !math.IsNaN(r.PValue)
}

// Table holds one row per candidate order, in candidate order.
type Table []Row

// Orders returns the candidate orders in table order.
func (t Table) Orders() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.D
	}
	return out
}

// MinimumOrder selects the smallest stationary order at alpha.
func (t Table) MinimumOrder(alpha float64) (float64, bool, error) {
	return SelectMinimumOrder(t, alpha)
}

// MeanCriticalValue averages the defined 5% critical values, or NaN when
// none is defined.
func (t Table) MeanCriticalValue() float64 {
	sum, n := 0.0, 0
	for _, r := range t {
		if math.IsNaN(r.CriticalValue95) {
			continue
		}
		sum += r.CriticalValue95
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// SelectMinimumOrder returns the smallest d among rows whose p-value is
// defined and below alpha. found is false when no row qualifies; that is a
// normal outcome, not an error.
func SelectMinimumOrder(table Table, alpha float64) (d float64, found bool, err error) {
	if err := checkSignificance(alpha); err != nil {
		return 0, false, err
	}
	for _, r := range table {
		if !r.Tested() || r.PValue >= alpha {
			continue
		}
		if !found || r.D < d {
			d, found = r.D, true
		}
	}
	return d, found, nil
}
