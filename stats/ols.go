package stats

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrSingularDesign is returned when X'X cannot be inverted.
var ErrSingularDesign = errors.New("design matrix is singular")

// olsFit holds the parts of an OLS fit the unit root tests need.
type olsFit struct {
	Coeffs []float64
	SE     []float64
	TStats []float64
	SSR    float64
	NObs   int
	AIC    float64
	BIC    float64
}

// fitOLS regresses y on the columns of x.
func fitOLS(x *mat.Dense, y []float64) (*olsFit, error) {
	n, k := x.Dims()
	if n != len(y) {
		return nil, errors.Errorf("fitOLS: %d rows for %d observations", n, len(y))
	}
	if n <= k {
		return nil, errors.Wrapf(ErrInsufficientObservations, "fitOLS: %d observations for %d regressors", n, k)
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, errors.Wrap(ErrSingularDesign, err.Error())
	}

	yv := mat.NewVecDense(n, y)
	var xty mat.VecDense
	xty.MulVec(x.T(), yv)

	var beta mat.VecDense
	beta.MulVec(&inv, &xty)

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	var resid mat.VecDense
	resid.SubVec(yv, &fitted)
	ssr := mat.Dot(&resid, &resid)

	sigma2 := ssr / float64(n-k)
	coeffs := make([]float64, k)
	se := make([]float64, k)
	tstats := make([]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = beta.AtVec(i)
		se[i] = math.Sqrt(sigma2 * inv.At(i, i))
		tstats[i] = coeffs[i] / se[i]
	}

	// Gaussian log-likelihood with the variance concentrated out.
	nf := float64(n)
	llf := -nf / 2 * (math.Log(2*math.Pi) + math.Log(ssr/nf) + 1)
	return &olsFit{
		Coeffs: coeffs,
		SE:     se,
		TStats: tstats,
		SSR:    ssr,
		NObs:   n,
		AIC:    -2*llf + 2*float64(k),
		BIC:    -2*llf + math.Log(nf)*float64(k),
	}, nil
}
