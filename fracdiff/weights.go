package fracdiff

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidParameter is returned for a non-positive threshold, a negative
// order or any non-finite parameter. Parameters are never clamped.
var ErrInvalidParameter = errors.New("invalid parameter")

// DefaultThreshold is the weight magnitude below which the FFD kernel is cut.
const DefaultThreshold = 1e-5

// MaxWidth bounds the kernel length. Orders close to zero with a tiny
// threshold decay too slowly to reach the cutoff in memory.
const MaxWidth = 1 << 20

// Weights returns the fixed-width fractional differencing kernel for order d.
//
// Coefficients follow w[0] = 1, w[k] = -w[k-1] (d-k+1) / k and stop before the
// first term with |w[k]| < thres. The result is reversed so index 0 weights the
// oldest observation in a window and the last element (always 1) the newest.
func Weights(d, thres float64) ([]float64, error) {
	if err := checkOrder(d); err != nil {
		return nil, err
	}
	if math.IsNaN(thres) || math.IsInf(thres, 0) || thres <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "threshold %v must be positive", thres)
	}

	w := []float64{1}
	for k := 1; ; k++ {
		next := -w[k-1] / float64(k) * (d - float64(k) + 1)
		if math.IsInf(next, 0) || math.IsNaN(next) {
			return nil, errors.Wrapf(ErrInvalidParameter, "order %v overflows the weight recursion", d)
		}
		if math.Abs(next) < thres {
			break
		}
		if len(w) == MaxWidth {
			return nil, errors.Wrapf(ErrInvalidParameter, "order %v at threshold %v needs more than %d weights", d, thres, MaxWidth)
		}
		w = append(w, next)
	}

	for i, j := 0, len(w)-1; i < j; i, j = i+1, j-1 {
		w[i], w[j] = w[j], w[i]
	}
	return w, nil
}

func checkOrder(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return errors.Wrapf(ErrInvalidParameter, "order %v must be finite and non-negative", d)
	}
	return nil
}
