package timeseries

import (
	"math"
	"testing"
)

func TestNewLengthMismatch(t *testing.T) {
	_, err := New([]float64{0, 1}, []float64{1})
	if err == nil {
		t.Fatal("expected error for mismatched lengths")
	}

	_, err = NewWithErrors([]float64{0, 1}, []float64{1, 2}, []float64{0.1})
	if err == nil {
		t.Fatal("expected error for mismatched error length")
	}
}

func TestBasicStatistics(t *testing.T) {
	s, err := New([]float64{0, 1, 2, 3}, []float64{2, 4, 4, 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := s.Mean(); got != 3.0 {
		t.Errorf("Mean: expected 3.0, got %f", got)
	}
	if got := s.Min(); got != 2.0 {
		t.Errorf("Min: expected 2.0, got %f", got)
	}
	if got := s.Max(); got != 4.0 {
		t.Errorf("Max: expected 4.0, got %f", got)
	}

	// sample variance of {2,4,4,2} is 4/3
	if got := s.Variance(); math.Abs(got-4.0/3.0) > 1e-12 {
		t.Errorf("Variance: expected %f, got %f", 4.0/3.0, got)
	}
}

func TestTimeSpanUnsorted(t *testing.T) {
	s, _ := New([]float64{3, 0, 2, 1}, []float64{1, 1, 1, 1})

	min, max := s.TimeSpan()
	if min != 0 || max != 3 {
		t.Errorf("TimeSpan: expected [0,3], got [%f,%f]", min, max)
	}
	if got := s.Duration(); got != 3 {
		t.Errorf("Duration: expected 3, got %f", got)
	}
}

func TestMinPositiveGap(t *testing.T) {
	s, _ := New([]float64{0, 2, 2, 2.5}, []float64{1, 1, 1, 1})

	gap, ok := s.MinPositiveGap()
	if !ok {
		t.Fatal("expected a positive gap")
	}
	if math.Abs(gap-0.5) > 1e-12 {
		t.Errorf("expected gap 0.5, got %f", gap)
	}

	// all samples at the same time: no positive gap
	flat, _ := New([]float64{1, 1, 1}, []float64{1, 2, 3})
	if _, ok := flat.MinPositiveGap(); ok {
		t.Error("expected no positive gap for coincident times")
	}
}

func TestThin(t *testing.T) {
	s, _ := NewWithErrors(
		[]float64{0, 1, 2, 3, 4, 5},
		[]float64{10, 11, 12, 13, 14, 15},
		[]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
	)

	thinned := s.Thin(2)
	if thinned.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", thinned.Len())
	}
	for i, want := range []float64{10, 12, 14} {
		if thinned.Values[i] != want {
			t.Errorf("value %d: expected %f, got %f", i, want, thinned.Values[i])
		}
	}
	if thinned.Errors[2] != 0.5 {
		t.Errorf("errors not thinned alongside values: %v", thinned.Errors)
	}
}

func TestWindowHalfOpen(t *testing.T) {
	s, _ := New([]float64{0, 1, 2, 3, 4}, []float64{5, 6, 7, 8, 9})

	w := s.Window(1, 3)
	if w.Len() != 2 {
		t.Fatalf("expected 2 samples in [1,3), got %d", w.Len())
	}
	if w.Values[0] != 6 || w.Values[1] != 7 {
		t.Errorf("unexpected window values: %v", w.Values)
	}
}

func TestShiftAndScaleTime(t *testing.T) {
	s, _ := New([]float64{100, 101, 102}, []float64{1, 2, 3})

	zeroed := s.ZeroTime()
	if zeroed.Times[0] != 0 || zeroed.Times[2] != 2 {
		t.Errorf("ZeroTime: got %v", zeroed.Times)
	}
	// original untouched
	if s.Times[0] != 100 {
		t.Error("ZeroTime modified the receiver")
	}

	scaled := zeroed.ScaleTime(0.02942)
	if math.Abs(scaled.Times[2]-2*0.02942) > 1e-12 {
		t.Errorf("ScaleTime: got %v", scaled.Times)
	}
}

func TestWithConstantError(t *testing.T) {
	s, _ := New([]float64{0, 1, 2}, []float64{1, 2, 3})

	withErrs := s.WithConstantError(0.001)
	if len(withErrs.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(withErrs.Errors))
	}
	for _, e := range withErrs.Errors {
		if e != 0.001 {
			t.Errorf("expected constant error 0.001, got %f", e)
		}
	}
	if s.Errors != nil {
		t.Error("WithConstantError modified the receiver")
	}
}

func TestSliceAndCopyAreIndependent(t *testing.T) {
	s, _ := New([]float64{0, 1, 2, 3}, []float64{1, 2, 3, 4})

	sub := s.Slice(1, 3)
	if sub.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", sub.Len())
	}
	sub.Values[0] = -1
	if s.Values[1] == -1 {
		t.Error("Slice shares backing storage with the receiver")
	}

	cp := s.Copy()
	cp.Times[0] = 99
	if s.Times[0] == 99 {
		t.Error("Copy shares backing storage with the receiver")
	}
}
