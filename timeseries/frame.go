package timeseries

import (
	"time"

	"github.com/pkg/errors"
)

// Frame holds several named value columns over one shared time index.
type Frame struct {
	Timestamps []time.Time
	Names      []string
	Columns    [][]float64
}

// NewFrame creates a frame, checking that every column matches the index.
func NewFrame(timestamps []time.Time, names []string, columns [][]float64) (*Frame, error) {
	if len(names) != len(columns) {
		return nil, errors.New("names and columns must have the same length")
	}
	for i, col := range columns {
		if len(col) != len(timestamps) {
			return nil, errors.Errorf("column %q has %d values for %d timestamps", names[i], len(col), len(timestamps))
		}
	}
	for i := 1; i < len(timestamps); i++ {
		if !timestamps[i].After(timestamps[i-1]) {
			return nil, errors.Wrapf(ErrUnordered, "index %d", i)
		}
	}
	return &Frame{Timestamps: timestamps, Names: names, Columns: columns}, nil
}

// Width returns the number of value columns.
func (f *Frame) Width() int {
	return len(f.Columns)
}

// Column returns column i as a standalone series sharing no memory with the frame.
func (f *Frame) Column(i int) *Series {
	values := make([]float64, len(f.Columns[i]))
	copy(values, f.Columns[i])
	timestamps := make([]time.Time, len(f.Timestamps))
	copy(timestamps, f.Timestamps)
	return &Series{Timestamps: timestamps, Values: values, Name: f.Names[i]}
}
