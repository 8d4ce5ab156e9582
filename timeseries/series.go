// Package timeseries provides flux time series data structures and readers.
package timeseries

import (
	"errors"
	"math"
	"sort"
)

// Series represents a flux light curve: sample times (in hours by
// convention, though nothing below depends on the unit), measured fluxes,
// and optional per-sample measurement errors.
type Series struct {
	Times  []float64
	Values []float64
	Errors []float64 // nil when the data carry no error column
	Name   string
}

// New creates a series from times and values.
func New(times, values []float64) (*Series, error) {
	if len(times) != len(values) {
		return nil, errors.New("times and values must have the same length")
	}
	return &Series{
		Times:  times,
		Values: values,
	}, nil
}

// NewWithErrors creates a series with per-sample measurement errors.
func NewWithErrors(times, values, errs []float64) (*Series, error) {
	if len(times) != len(values) || len(times) != len(errs) {
		return nil, errors.New("times, values and errors must have the same length")
	}
	return &Series{
		Times:  times,
		Values: values,
		Errors: errs,
	}, nil
}

// Len returns the number of samples in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the flux values.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Variance calculates the sample variance of the flux values.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std calculates the sample standard deviation of the flux values.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum flux value.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum flux value.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// TimeSpan returns the earliest and latest sample times. The series does
// not need to be sorted in time.
func (s *Series) TimeSpan() (min, max float64) {
	if len(s.Times) == 0 {
		return math.NaN(), math.NaN()
	}
	min, max = s.Times[0], s.Times[0]
	for _, t := range s.Times[1:] {
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
	}
	return min, max
}

// Duration returns the total time span covered by the series.
func (s *Series) Duration() float64 {
	min, max := s.TimeSpan()
	return max - min
}

// MinPositiveGap returns the smallest positive spacing between two samples
// after sorting by time. The second return value is false when every sample
// shares the same time.
func (s *Series) MinPositiveGap() (float64, bool) {
	if len(s.Times) < 2 {
		return 0, false
	}
	sorted := make([]float64, len(s.Times))
	copy(sorted, s.Times)
	sort.Float64s(sorted)

	gap := math.Inf(1)
	for i := 1; i < len(sorted); i++ {
		d := sorted[i] - sorted[i-1]
		if d > 0 && d < gap {
			gap = d
		}
	}
	if math.IsInf(gap, 1) {
		return 0, false
	}
	return gap, true
}

// Thin keeps every step-th sample, starting from the first.
func (s *Series) Thin(step int) *Series {
	if step <= 1 {
		return s.Copy()
	}

	n := (len(s.Values) + step - 1) / step
	times := make([]float64, 0, n)
	values := make([]float64, 0, n)
	var errs []float64
	if s.Errors != nil {
		errs = make([]float64, 0, n)
	}

	for i := 0; i < len(s.Values); i += step {
		times = append(times, s.Times[i])
		values = append(values, s.Values[i])
		if errs != nil {
			errs = append(errs, s.Errors[i])
		}
	}

	return &Series{Times: times, Values: values, Errors: errs, Name: s.Name}
}

// Window returns the samples with start <= t < end.
func (s *Series) Window(start, end float64) *Series {
	times := []float64{}
	values := []float64{}
	var errs []float64
	if s.Errors != nil {
		errs = []float64{}
	}

	for i, t := range s.Times {
		if t >= start && t < end {
			times = append(times, t)
			values = append(values, s.Values[i])
			if errs != nil {
				errs = append(errs, s.Errors[i])
			}
		}
	}

	return &Series{Times: times, Values: values, Errors: errs, Name: s.Name}
}

// ShiftTime returns a copy with dt added to every sample time. Used to lay
// several observing days end to end on a common time axis.
func (s *Series) ShiftTime(dt float64) *Series {
	out := s.Copy()
	for i := range out.Times {
		out.Times[i] += dt
	}
	return out
}

// ZeroTime returns a copy with times counted from the first sample.
func (s *Series) ZeroTime() *Series {
	if len(s.Times) == 0 {
		return s.Copy()
	}
	return s.ShiftTime(-s.Times[0])
}

// ScaleTime returns a copy with every sample time multiplied by factor.
// Used to convert simulation code-unit times to hours.
func (s *Series) ScaleTime(factor float64) *Series {
	out := s.Copy()
	for i := range out.Times {
		out.Times[i] *= factor
	}
	return out
}

// Slice returns a copy of the samples from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name}
	}

	times := make([]float64, end-start)
	copy(times, s.Times[start:end])
	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var errs []float64
	if s.Errors != nil {
		errs = make([]float64, end-start)
		copy(errs, s.Errors[start:end])
	}

	return &Series{Times: times, Values: values, Errors: errs, Name: s.Name}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	times := make([]float64, len(s.Times))
	copy(times, s.Times)
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var errs []float64
	if s.Errors != nil {
		errs = make([]float64, len(s.Errors))
		copy(errs, s.Errors)
	}

	return &Series{Times: times, Values: values, Errors: errs, Name: s.Name}
}

// WithConstantError returns a copy carrying a constant per-sample error.
// Simulation light curves have no error column; the structure-function
// error propagation still needs one.
func (s *Series) WithConstantError(sigma float64) *Series {
	out := s.Copy()
	out.Errors = make([]float64, len(out.Values))
	for i := range out.Errors {
		out.Errors[i] = sigma
	}
	return out
}
