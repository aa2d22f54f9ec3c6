package fracdiff

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/fracdiff/timeseries"
)

// FFD applies fixed-width fractional differencing of order d to series.
//
// Missing values are forward filled and leading gaps dropped. Each output
// value is the dot product of the kernel with the width observations ending
// at that timestamp, so the first width-1 timestamps never appear. Windows
// holding a non-finite value are skipped. A series shorter than the kernel
// yields an empty result rather than an error.
func FFD(series *timeseries.Series, d, thres float64) (*timeseries.Series, error) {
	w, err := Weights(d, thres)
	if err != nil {
		return nil, err
	}
	return convolve(series, w), nil
}

// FFDFrame differences every column of frame with the same kernel. Columns
// are cleaned independently, so the returned series need not share an index.
func FFDFrame(frame *timeseries.Frame, d, thres float64) ([]*timeseries.Series, error) {
	w, err := Weights(d, thres)
	if err != nil {
		return nil, err
	}
	out := make([]*timeseries.Series, frame.Width())
	for i := range out {
		out[i] = convolve(frame.Column(i), w)
	}
	return out, nil
}

func convolve(series *timeseries.Series, w []float64) *timeseries.Series {
	cleaned := series.FillForward().DropNaN()
	width := len(w)
	n := cleaned.Len()
	if n < width {
		return timeseries.Empty(series.Name)
	}

	x := cleaned.Values
	values := make([]float64, 0, n-width+1)
	timestamps := make([]time.Time, 0, n-width+1)

	// bad counts non-finite observations inside the current window.
	bad := 0
	for _, v := range x[:width-1] {
		if !isFinite(v) {
			bad++
		}
	}
	for i := width - 1; i < n; i++ {
		if !isFinite(x[i]) {
			bad++
		}
		start := i - width + 1
		if bad == 0 {
			values = append(values, floats.Dot(w, x[start:i+1]))
			timestamps = append(timestamps, cleaned.Timestamps[i])
		}
		if !isFinite(x[start]) {
			bad--
		}
	}

	return &timeseries.Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       series.Name,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
