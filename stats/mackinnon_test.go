package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMacKinnonP(t *testing.T) {
	tests := []struct {
		name     string
		stat     float64
		reg      Regression
		expected float64
		tol      float64
	}{
		{"5% point, constant", -2.86, RegressionConstant, 0.05, 0.005},
		{"1% point, constant", -3.43, RegressionConstant, 0.01, 0.003},
		{"above max, constant", 3.0, RegressionConstant, 1, 0},
		{"below min, constant", -20, RegressionConstant, 0, 0},
		{"5% point, trend", -3.41, RegressionConstantTrend, 0.05, 0.005},
		{"5% point, none", -1.94, RegressionNone, 0.05, 0.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MacKinnonP(tt.stat, tt.reg)
			assert.InDelta(t, tt.expected, p, tt.tol+1e-12)
		})
	}
}

func TestMacKinnonPMonotonic(t *testing.T) {
	prev := -1.0
	for stat := -19.0; stat <= 3.0; stat += 0.05 {
		p := MacKinnonP(stat, RegressionConstant)
		assert.GreaterOrEqual(t, p, prev-1e-9, "stat=%.2f", stat)
		assert.False(t, math.IsNaN(p))
		prev = p
	}
}

func TestMacKinnonCrit(t *testing.T) {
	crit := MacKinnonCrit(RegressionConstant, 100)
	assert.InDelta(t, -2.86154-0.028903-0.0004234-0.00004004, crit["5%"], 1e-9)

	large := MacKinnonCrit(RegressionConstant, 1_000_000)
	assert.InDelta(t, -3.43035, large["1%"], 1e-4)
	assert.InDelta(t, -2.86154, large["5%"], 1e-4)
	assert.InDelta(t, -2.56677, large["10%"], 1e-4)
}

func TestPolyval(t *testing.T) {
	assert.Equal(t, 1.0+2*3+3*9, polyval([]float64{1, 2, 3}, 3))
	assert.Equal(t, 0.0, polyval(nil, 5))
}
