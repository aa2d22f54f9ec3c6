package timeseries

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// ErrUnordered is returned when timestamps are not strictly increasing.
var ErrUnordered = errors.New("timestamps must be strictly increasing")

// epoch anchors the synthetic daily index used by New.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Series represents a time series with timestamps and values.
// A NaN value marks a missing observation.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values on a daily index.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = epoch.AddDate(0, 0, i)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	for i := 1; i < len(timestamps); i++ {
		if !timestamps[i].After(timestamps[i-1]) {
			return nil, errors.Wrapf(ErrUnordered, "index %d (%s)", i, timestamps[i].Format(time.RFC3339))
		}
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Empty returns a named series with no observations.
func Empty(name string) *Series {
	return &Series{Timestamps: []time.Time{}, Values: []float64{}, Name: name}
}

// Len returns the length of the series.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Values)
}

// IsEmpty reports whether the series holds no observations.
func (s *Series) IsEmpty() bool {
	return s.Len() == 0
}

// Start returns the first timestamp, or the zero time for an empty series.
func (s *Series) Start() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.Timestamps[0]
}

// End returns the last timestamp, or the zero time for an empty series.
func (s *Series) End() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.Timestamps[len(s.Timestamps)-1]
}

// FillForward replaces missing values with the last observed value.
// Leading missing values stay missing.
func (s *Series) FillForward() *Series {
	out := s.Copy()
	last := math.NaN()
	for i, v := range out.Values {
		if math.IsNaN(v) {
			out.Values[i] = last
			continue
		}
		last = v
	}
	return out
}

// DropNaN returns the series without its missing observations.
func (s *Series) DropNaN() *Series {
	values := make([]float64, 0, len(s.Values))
	timestamps := make([]time.Time, 0, len(s.Values))
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
		timestamps = append(timestamps, s.Timestamps[i])
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Intersect aligns two series on their common timestamps. Both inputs must
// be sorted; the returned slices are in increasing timestamp order.
func (s *Series) Intersect(other *Series) (timestamps []time.Time, a, b []float64) {
	i, j := 0, 0
	for i < s.Len() && j < other.Len() {
		ti, tj := s.Timestamps[i], other.Timestamps[j]
		switch {
		case ti.Equal(tj):
			timestamps = append(timestamps, ti)
			a = append(a, s.Values[i])
			b = append(b, other.Values[j])
			i++
			j++
		case ti.Before(tj):
			i++
		default:
			j++
		}
	}
	return timestamps, a, b
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Log applies natural logarithm transformation. Non-positive values become NaN.
func (s *Series) Log() *Series {
	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if v > 0 {
			result[i] = math.Log(v)
		} else {
			result[i] = math.NaN()
		}
	}

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name,
	}
}
