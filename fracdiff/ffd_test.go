package fracdiff

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/fracdiff/timeseries"
)

func logPriceWalk(n int, seed int64) *timeseries.Series {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	values[0] = math.Log(100)
	for i := 1; i < n; i++ {
		values[i] = values[i-1] + 0.0005 + 0.01*rng.NormFloat64()
	}
	s := timeseries.New(values)
	s.Name = "Close"
	return s
}

func TestFFDFirstOrderIsFirstDifference(t *testing.T) {
	series := logPriceWalk(300, 1)

	out, err := FFD(series, 1, DefaultThreshold)
	require.NoError(t, err)

	require.Equal(t, series.Len()-1, out.Len())
	for i := range out.Values {
		assert.True(t, out.Timestamps[i].Equal(series.Timestamps[i+1]))
		assert.InDelta(t, series.Values[i+1]-series.Values[i], out.Values[i], 1e-9)
	}
	assert.Equal(t, "Close", out.Name)
}

func TestFFDZeroOrderIsIdentity(t *testing.T) {
	series := logPriceWalk(50, 2)

	out, err := FFD(series, 0, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, series.Values, out.Values)
	assert.Equal(t, series.Timestamps, out.Timestamps)
}

func TestFFDLengthAndCoverage(t *testing.T) {
	series := logPriceWalk(400, 3)

	for _, d := range []float64{0, 0.2, 0.4, 0.6, 0.8, 1} {
		for _, thres := range []float64{1e-2, 1e-3} {
			w, err := Weights(d, thres)
			require.NoError(t, err)
			width := len(w)

			out, err := FFD(series, d, thres)
			require.NoError(t, err)

			expected := series.Len() - width + 1
			if expected < 0 {
				expected = 0
			}
			require.Equal(t, expected, out.Len(), "d=%g thres=%g width=%d", d, thres, width)
			// Output index is exactly the cleaned index minus the cold start.
			assert.Equal(t, series.Timestamps[width-1:], out.Timestamps)
		}
	}
}

func TestFFDWindowAlignment(t *testing.T) {
	series := timeseries.New([]float64{1, 2, 3, 4, 5})

	// Kernel [-0.125, -0.5, 1]; index 0 meets the oldest observation.
	out, err := FFD(series, 0.5, 0.1)
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	assert.InDelta(t, 3-0.5*2-0.125*1, out.Values[0], 1e-12)
	assert.InDelta(t, 4-0.5*3-0.125*2, out.Values[1], 1e-12)
	assert.InDelta(t, 5-0.5*4-0.125*3, out.Values[2], 1e-12)
	assert.True(t, out.Timestamps[0].Equal(series.Timestamps[2]))
}

func TestFFDForwardFill(t *testing.T) {
	nan := math.NaN()
	series := timeseries.New([]float64{nan, nan, 1, 2, nan, 4})

	out, err := FFD(series, 1, DefaultThreshold)
	require.NoError(t, err)

	// Cleaned: 1, 2, 2, 4 at indices 2..5.
	assert.Equal(t, []float64{1, 0, 2}, out.Values)
	assert.Equal(t, series.Timestamps[3:], out.Timestamps)
}

func TestFFDSkipsNonFiniteWindows(t *testing.T) {
	series := timeseries.New([]float64{1, 2, math.Inf(1), 4, 5, 6})

	out, err := FFD(series, 1, DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1, 1}, out.Values)
	assert.Equal(t, []time.Time{series.Timestamps[1], series.Timestamps[4], series.Timestamps[5]}, out.Timestamps)
}

func TestFFDShortSeries(t *testing.T) {
	series := timeseries.New([]float64{1, 2, 3})

	out, err := FFD(series, 0.4, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())

	out, err = FFD(timeseries.Empty("x"), 1, DefaultThreshold)
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
	assert.Equal(t, "x", out.Name)
}

func TestFFDInvalidParameters(t *testing.T) {
	series := logPriceWalk(20, 4)

	_, err := FFD(series, 0.5, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = FFD(series, -1, DefaultThreshold)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestFFDDoesNotMutateInput(t *testing.T) {
	nan := math.NaN()
	values := []float64{1, nan, 3, 4}
	series := timeseries.New(values)

	_, err := FFD(series, 1, DefaultThreshold)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(series.Values[1]))
}

func TestFFDFrame(t *testing.T) {
	nan := math.NaN()
	ts := timeseries.New(make([]float64, 6)).Timestamps
	frame, err := timeseries.NewFrame(ts, []string{"Open", "Close"}, [][]float64{
		{1, 2, 3, 4, 5, 6},
		{nan, nan, 10, 12, 15, 19},
	})
	require.NoError(t, err)

	out, err := FFDFrame(frame, 1, DefaultThreshold)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Open", out[0].Name)
	assert.Equal(t, []float64{1, 1, 1, 1, 1}, out[0].Values)
	assert.Equal(t, ts[1:], out[0].Timestamps)

	assert.Equal(t, "Close", out[1].Name)
	assert.Equal(t, []float64{2, 3, 4}, out[1].Values)
	assert.Equal(t, ts[3:], out[1].Timestamps)

	_, err = FFDFrame(frame, 0.5, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
