package stats

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrInsufficientObservations is returned when a series is too short for the
// requested regression.
var ErrInsufficientObservations = errors.New("insufficient observations")

// ErrDegenerate is returned when the test statistic is not finite, e.g. for a
// constant series.
var ErrDegenerate = errors.New("test statistic is not finite")

// Regression selects the deterministic terms of the test regression.
type Regression string

const (
	RegressionNone          Regression = "n"
	RegressionConstant      Regression = "c"
	RegressionConstantTrend Regression = "ct"
)

func (r Regression) trendTerms() (int, error) {
	switch r {
	case RegressionNone:
		return 0, nil
	case RegressionConstant, "":
		return 1, nil
	case RegressionConstantTrend:
		return 2, nil
	}
	return 0, errors.Errorf("unknown regression %q", string(r))
}

// LagSelection selects how the number of augmenting lags is chosen.
type LagSelection string

const (
	LagFixed LagSelection = "fixed" // use MaxLag as is
	LagAIC   LagSelection = "aic"
	LagBIC   LagSelection = "bic"
)

// ADFOptions configures ADFuller.
type ADFOptions struct {
	Regression Regression
	AutoLag    LagSelection
	// MaxLag is the largest lag considered. A negative value uses
	// ceil(12 * (n/100)^(1/4)) capped at n/2 - trend terms - 1.
	MaxLag int
}

// DefaultADFOptions returns a constant-only regression with AIC lag selection.
func DefaultADFOptions() *ADFOptions {
	return &ADFOptions{
		Regression: RegressionConstant,
		AutoLag:    LagAIC,
		MaxLag:     -1,
	}
}

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic      float64
	PValue         float64
	UsedLag        int
	NObs           int
	CriticalValues map[string]float64 // keyed "1%", "5%", "10%"
	IC             float64            // best information criterion when lags were selected
	Regression     Regression
}

// IsStationary reports whether the unit root null is rejected at alpha.
func (r *ADFResult) IsStationary(alpha float64) bool {
	return r.PValue < alpha
}

// ADFuller performs the Augmented Dickey-Fuller unit root test.
//
// The test regression is
//
//	Δy_t = ρ·y_{t-1} + Σ_{j=1..p} γ_j·Δy_{t-j} + deterministic terms + ε_t
//
// and the statistic is the t-ratio of ρ. With automatic lag selection every
// p in [0, MaxLag] is fitted on a common sample and the best information
// criterion wins; the chosen p is then refitted on the longest sample it allows.
func ADFuller(values []float64, opts *ADFOptions) (*ADFResult, error) {
	if opts == nil {
		opts = DefaultADFOptions()
	}
	reg := opts.Regression
	if reg == "" {
		reg = RegressionConstant
	}
	ntrend, err := reg.trendTerms()
	if err != nil {
		return nil, err
	}

	n := len(values)
	limit := n/2 - ntrend - 1
	maxLag := opts.MaxLag
	if maxLag < 0 {
		maxLag = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
		if maxLag > limit {
			maxLag = limit
		}
	}
	if maxLag < 0 || maxLag > limit {
		return nil, errors.Wrapf(ErrInsufficientObservations, "ADFuller: %d observations", n)
	}

	dx := make([]float64, n-1)
	for i := 1; i < n; i++ {
		dx[i-1] = values[i] - values[i-1]
	}

	usedLag := maxLag
	ic := math.NaN()
	switch opts.AutoLag {
	case LagAIC, LagBIC:
		best := math.Inf(1)
		found := false
		for lag := 0; lag <= maxLag; lag++ {
			x, y := adfDesign(values, dx, lag, maxLag, reg)
			fit, err := fitOLS(x, y)
			if err != nil {
				continue
			}
			crit := fit.AIC
			if opts.AutoLag == LagBIC {
				crit = fit.BIC
			}
			if crit < best {
				best, usedLag, found = crit, lag, true
			}
		}
		if !found {
			return nil, errors.Wrap(ErrSingularDesign, "ADFuller: no lag order could be fitted")
		}
		ic = best
	case LagFixed, "":
	default:
		return nil, errors.Errorf("unknown lag selection %q", string(opts.AutoLag))
	}

	x, y := adfDesign(values, dx, usedLag, usedLag, reg)
	fit, err := fitOLS(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "ADFuller")
	}

	stat := fit.TStats[0]
	if math.IsNaN(stat) || math.IsInf(stat, 0) {
		return nil, ErrDegenerate
	}

	return &ADFResult{
		Statistic:      stat,
		PValue:         MacKinnonP(stat, reg),
		UsedLag:        usedLag,
		NObs:           fit.NObs,
		CriticalValues: MacKinnonCrit(reg, fit.NObs),
		IC:             ic,
		Regression:     reg,
	}, nil
}

// adfDesign builds the regression on dx[start:]. Column 0 is the lagged
// level, followed by lags lagged differences and the deterministic terms.
func adfDesign(x, dx []float64, lags, start int, reg Regression) (*mat.Dense, []float64) {
	ntrend, _ := reg.trendTerms()
	nobs := len(dx) - start
	cols := 1 + lags + ntrend

	design := mat.NewDense(nobs, cols, nil)
	y := make([]float64, nobs)
	for r := 0; r < nobs; r++ {
		t := start + r
		y[r] = dx[t]
		design.Set(r, 0, x[t])
		for j := 1; j <= lags; j++ {
			design.Set(r, j, dx[t-j])
		}
		c := 1 + lags
		if ntrend > 0 {
			design.Set(r, c, 1)
			c++
		}
		if ntrend > 1 {
			design.Set(r, c, float64(r+1))
		}
	}
	return design, y
}
