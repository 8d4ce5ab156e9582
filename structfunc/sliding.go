// Package structfunc estimates first-order structure functions of flux
// light curves, following Simonetti et al. (1985).
package structfunc

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ehtlab/fluxvar/timeseries"
)

// ErrInvalidInput reports a series that cannot be analyzed: fewer than two
// samples, mismatched column lengths, non-finite values, or a zero mean
// flux (which leaves nothing to normalize by).
var ErrInvalidInput = errors.New("structfunc: invalid input")

// SlidingOptions configures the sliding-window estimator. The zero value
// (or a nil pointer) selects the defaults described on each field.
type SlidingOptions struct {
	// Window is the lag bin width Δτ0; pairs within Δτ ± Δτ0/2 contribute
	// to the estimate at Δτ. When 0, the smallest positive spacing between
	// samples is used. Always set this explicitly for densely sampled
	// series: the lag grid has maxLag/window points, and an automatically
	// derived window can be arbitrarily small.
	Window float64

	// MaxLag is the largest lag to evaluate. When 0, the full time span of
	// the series is used.
	MaxLag float64
}

// Sliding computes the first-order structure function
//
//	D(Δτ) = < (x_j - x_i)^2 >  over pairs with |t_j - t_i| ∈ [Δτ-Δτ0/2, Δτ+Δτ0/2]
//
// on a regular lag grid Δτ_k = k·Δτ0, reporting √D(Δτ_k) per lag. Fluxes
// are first divided by their mean, so D is a fractional variance; the mean
// is taken over exactly the samples passed in, never a larger parent
// series. When the series carries errors, the statistical uncertainty of
// √D is propagated as σ_D = √(8·<σ>²·D/M) with M the number of
// contributing pairs, and σ_√D = σ_D/(2√D).
//
// The error column is scaled by the mean of the already-normalized fluxes
// (which is 1 up to rounding), so errors keep their absolute scale. This
// matches the convention of the published Sgr A* analysis; the binned
// estimator normalizes the other way around, and the two are deliberately
// not reconciled.
//
// Lags whose window contains no pairs report NaN and are kept in the
// output; filtering them is the caller's choice. A lag with D = 0 reports
// σ_√D = NaN, since the propagation formula divides by √D.
//
// Every pair of samples is examined for every lag, so the cost is
// O(N²·K) for N samples and K lag bins. Window long series into modest
// chunks before calling.
func Sliding(series *timeseries.Series, opts *SlidingOptions) (*Result, error) {
	if opts == nil {
		opts = &SlidingOptions{}
	}
	if err := validate(series); err != nil {
		return nil, err
	}

	n := series.Len()
	mean := stat.Mean(series.Values, nil)
	if mean == 0 {
		return nil, fmt.Errorf("%w: series mean is zero", ErrInvalidInput)
	}

	norm := make([]float64, n)
	for i, v := range series.Values {
		norm[i] = v / mean
	}

	withErrors := series.Errors != nil
	var aveError float64
	if withErrors {
		// scale errors by the mean of the normalized fluxes, not the raw
		// mean; see the function comment
		normMean := stat.Mean(norm, nil)
		sum := 0.0
		for _, e := range series.Errors {
			sum += e / normMean
		}
		aveError = sum / float64(n)
	}

	window := opts.Window
	if window == 0 {
		gap, ok := series.MinPositiveGap()
		if !ok {
			return nil, fmt.Errorf("%w: all sample times coincide, cannot derive a window", ErrInvalidInput)
		}
		window = gap
	}
	if window < 0 || math.IsNaN(window) {
		return nil, fmt.Errorf("%w: window must be positive", ErrInvalidInput)
	}

	maxLag := opts.MaxLag
	if maxLag == 0 {
		maxLag = series.Duration()
	}
	if maxLag < 0 || math.IsNaN(maxLag) {
		return nil, fmt.Errorf("%w: max lag must be positive", ErrInvalidInput)
	}

	taus, diffs2 := pairStatistics(series.Times, norm)

	// lag grid 0, w, 2w, ... inclusive of the point at or just past maxLag
	nLags := int(math.Floor(maxLag/window+1-1e-9)) + 1
	result := &Result{
		Lags:  make([]float64, nLags),
		SqrtD: make([]float64, nLags),
	}
	if withErrors {
		result.Sigma = make([]float64, nLags)
	}

	half := window / 2
	for k := 0; k < nLags; k++ {
		lag := float64(k) * window
		result.Lags[k] = lag

		sum := 0.0
		count := 0
		for p, tau := range taus {
			if tau >= lag-half && tau <= lag+half {
				sum += diffs2[p]
				count++
			}
		}

		if count == 0 {
			result.SqrtD[k] = math.NaN()
			if withErrors {
				result.Sigma[k] = math.NaN()
			}
			continue
		}

		d := sum / float64(count)
		result.SqrtD[k] = math.Sqrt(d)
		if withErrors {
			if d == 0 {
				// σ_√D divides by √D; report NaN rather than let the
				// division blow up
				result.Sigma[k] = math.NaN()
				continue
			}
			sigmaD := math.Sqrt(8 * aveError * aveError * d / float64(count))
			result.Sigma[k] = sigmaD / (2 * math.Sqrt(d))
		}
	}

	return result, nil
}

// pairStatistics evaluates every unordered sample pair once, returning the
// absolute time separations and squared flux differences.
func pairStatistics(times, values []float64) (taus, diffs2 []float64) {
	n := len(times)
	taus = make([]float64, 0, n*(n-1)/2)
	diffs2 = make([]float64, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			taus = append(taus, math.Abs(times[j]-times[i]))
			d := values[j] - values[i]
			diffs2 = append(diffs2, d*d)
		}
	}
	return taus, diffs2
}

func validate(series *timeseries.Series) error {
	if series == nil {
		return fmt.Errorf("%w: nil series", ErrInvalidInput)
	}
	n := series.Len()
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 samples, have %d", ErrInvalidInput, n)
	}
	if len(series.Times) != n {
		return fmt.Errorf("%w: %d times for %d values", ErrInvalidInput, len(series.Times), n)
	}
	if series.Errors != nil && len(series.Errors) != n {
		return fmt.Errorf("%w: %d errors for %d values", ErrInvalidInput, len(series.Errors), n)
	}
	for i := 0; i < n; i++ {
		if !finite(series.Times[i]) || !finite(series.Values[i]) {
			return fmt.Errorf("%w: non-finite sample at index %d", ErrInvalidInput, i)
		}
		if series.Errors != nil && !finite(series.Errors[i]) {
			return fmt.Errorf("%w: non-finite error at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
