package timeseries

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}

	for i := 1; i < s.Len(); i++ {
		if got := s.Timestamps[i].Sub(s.Timestamps[i-1]); got != 24*time.Hour {
			t.Errorf("Expected daily spacing at %d, got %v", i, got)
		}
	}
}

func TestNewWithTimestamps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	if _, err := NewWithTimestamps([]time.Time{day(1), day(2)}, []float64{1}); err == nil {
		t.Error("Expected error for mismatched lengths")
	}

	_, err := NewWithTimestamps([]time.Time{day(1), day(3), day(2)}, []float64{1, 2, 3})
	if !errors.Is(err, ErrUnordered) {
		t.Errorf("Expected ErrUnordered, got %v", err)
	}

	_, err = NewWithTimestamps([]time.Time{day(1), day(1)}, []float64{1, 2})
	if !errors.Is(err, ErrUnordered) {
		t.Errorf("Expected ErrUnordered for duplicate timestamps, got %v", err)
	}

	s, err := NewWithTimestamps([]time.Time{day(1), day(2)}, []float64{1, 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !s.Start().Equal(day(1)) || !s.End().Equal(day(2)) {
		t.Errorf("Unexpected range %v - %v", s.Start(), s.End())
	}
}

func TestFillForward(t *testing.T) {
	nan := math.NaN()
	s := New([]float64{nan, 1, nan, nan, 4, nan})

	filled := s.FillForward()
	expected := []float64{nan, 1, 1, 1, 4, 4}
	for i, v := range expected {
		got := filled.Values[i]
		if math.IsNaN(v) != math.IsNaN(got) || (!math.IsNaN(v) && v != got) {
			t.Errorf("Index %d: expected %v, got %v", i, v, got)
		}
	}

	if !math.IsNaN(s.Values[2]) {
		t.Error("FillForward must not modify the receiver")
	}
}

func TestDropNaN(t *testing.T) {
	nan := math.NaN()
	s := New([]float64{nan, 1, nan, 3})
	s.Name = "Close"

	dense := s.DropNaN()
	if dense.Len() != 2 {
		t.Fatalf("Expected 2 values, got %d", dense.Len())
	}
	if dense.Values[0] != 1 || dense.Values[1] != 3 {
		t.Errorf("Unexpected values %v", dense.Values)
	}
	if !dense.Timestamps[0].Equal(s.Timestamps[1]) || !dense.Timestamps[1].Equal(s.Timestamps[3]) {
		t.Error("Timestamps not carried with values")
	}
	if dense.Name != "Close" {
		t.Errorf("Expected name Close, got %q", dense.Name)
	}
}

func TestIntersect(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	other, err := NewWithTimestamps(s.Timestamps[2:5], []float64{30, 40, 50})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ts, a, b := s.Intersect(other)
	if len(ts) != 3 {
		t.Fatalf("Expected 3 common timestamps, got %d", len(ts))
	}
	for i := range ts {
		if a[i] != float64(i+3) || b[i] != float64((i+3)*10) {
			t.Errorf("Index %d: got %v / %v", i, a[i], b[i])
		}
	}

	ts, _, _ = s.Intersect(Empty(""))
	if len(ts) != 0 {
		t.Errorf("Expected no common timestamps, got %d", len(ts))
	}
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})

	c := s.Copy()
	c.Values[0] = 100
	if s.Values[0] == 100 {
		t.Error("Copy should not share memory")
	}
}

func TestLog(t *testing.T) {
	s := New([]float64{1, math.E, 0, -5})
	logged := s.Log()

	if logged.Values[0] != 0 || math.Abs(logged.Values[1]-1) > 1e-12 {
		t.Errorf("Unexpected log values %v", logged.Values[:2])
	}
	if !math.IsNaN(logged.Values[2]) || !math.IsNaN(logged.Values[3]) {
		t.Error("Non-positive values should become NaN")
	}
}

func TestLogPrices(t *testing.T) {
	s := New([]float64{100, 0, math.NaN(), 110, math.Inf(1)})
	s.Name = "Close"

	logged := LogPrices(s)
	if logged.Len() != 2 {
		t.Fatalf("Expected 2 finite log prices, got %d", logged.Len())
	}
	if math.Abs(logged.Values[1]-math.Log(110)) > 1e-12 {
		t.Errorf("Unexpected value %f", logged.Values[1])
	}
	if !logged.Timestamps[1].Equal(s.Timestamps[3]) {
		t.Error("Timestamps not carried with values")
	}
}

func TestFrame(t *testing.T) {
	ts := New(make([]float64, 3)).Timestamps

	if _, err := NewFrame(ts, []string{"a"}, [][]float64{{1, 2}}); err == nil {
		t.Error("Expected error for short column")
	}

	f, err := NewFrame(ts, []string{"Open", "Close"}, [][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if f.Width() != 2 {
		t.Errorf("Expected width 2, got %d", f.Width())
	}

	c := f.Column(1)
	if c.Name != "Close" || c.Values[2] != 6 {
		t.Errorf("Unexpected column %+v", c)
	}
	c.Values[0] = 99
	if f.Columns[1][0] != 4 {
		t.Error("Column should not share memory with the frame")
	}
}
