package structfunc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ehtlab/fluxvar/timeseries"
)

// Binned computes the first-order structure function by bucketing every
// pairwise lag into nbins equal-width histogram bins spanning the observed
// lag range, with D per bin the mean squared flux difference of the pairs
// that landed there. Bin centers are returned in place of a regular grid,
// and bins that collected no pairs are dropped from the output.
//
// This variant requires an error column. It normalizes the errors by the
// raw flux mean before normalizing the fluxes themselves, and its
// uncertainty denominator is M+1 rather than M, so empty and
// single-pair bins never divide by zero. Both conventions differ from
// Sliding and are kept distinct on purpose; see the package documentation.
//
// Times are expected in increasing order; lags are taken as t_i - t_j for
// i > j without an absolute value.
func Binned(series *timeseries.Series, nbins int) (*Result, error) {
	if nbins < 1 {
		return nil, fmt.Errorf("%w: need at least 1 bin, have %d", ErrInvalidInput, nbins)
	}

	taus, diffs2, aveError, err := binnedPairs(series)
	if err != nil {
		return nil, err
	}

	lo, hi := taus[0], taus[0]
	for _, tau := range taus[1:] {
		if tau < lo {
			lo = tau
		}
		if tau > hi {
			hi = tau
		}
	}

	if lo == hi {
		// every pair shares one separation, e.g. a two-point series
		return accumulate(taus, diffs2, []float64{lo, hi}, aveError), nil
	}

	edges := make([]float64, nbins+1)
	width := (hi - lo) / float64(nbins)
	for k := range edges {
		edges[k] = lo + width*float64(k)
	}
	edges[nbins] = hi
	return accumulate(taus, diffs2, edges, aveError), nil
}

// BinnedEdges is Binned over an explicit, strictly increasing sequence of
// bin edges instead of an automatic equal-width partition. Pairs whose
// lag falls outside [edges[0], edges[len-1]] are ignored, which pins the
// lag grid regardless of each input's observed span: every sub-window of
// a long curve estimated against the same edges reports the same bin
// centers, so per-bin values can be pooled across windows.
//
// Interior bins are half-open [e_k, e_k+1); the last bin includes its
// right edge. Error conventions match Binned.
func BinnedEdges(series *timeseries.Series, edges []float64) (*Result, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bin edges, have %d", ErrInvalidInput, len(edges))
	}
	for k := 1; k < len(edges); k++ {
		if !(edges[k] > edges[k-1]) {
			return nil, fmt.Errorf("%w: bin edges must be strictly increasing", ErrInvalidInput)
		}
	}

	taus, diffs2, aveError, err := binnedPairs(series)
	if err != nil {
		return nil, err
	}
	return accumulate(taus, diffs2, edges, aveError), nil
}

// binnedPairs validates the series, applies the binned estimator's
// normalization conventions, and enumerates the pairwise lags and squared
// flux differences.
func binnedPairs(series *timeseries.Series) (taus, diffs2 []float64, aveError float64, err error) {
	if err := validate(series); err != nil {
		return nil, nil, 0, err
	}
	if series.Errors == nil {
		return nil, nil, 0, fmt.Errorf("%w: binned estimator requires an error column", ErrInvalidInput)
	}

	n := series.Len()
	mean := stat.Mean(series.Values, nil)
	if mean == 0 {
		return nil, nil, 0, fmt.Errorf("%w: series mean is zero", ErrInvalidInput)
	}

	// errors first, against the raw mean; then the fluxes
	normErr := make([]float64, n)
	for i, e := range series.Errors {
		normErr[i] = e / mean
	}
	aveError = stat.Mean(normErr, nil)

	norm := make([]float64, n)
	for i, v := range series.Values {
		norm[i] = v / mean
	}

	taus = make([]float64, 0, n*(n-1)/2)
	diffs2 = make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			taus = append(taus, series.Times[i]-series.Times[j])
			d := norm[i] - norm[j]
			diffs2 = append(diffs2, d*d)
		}
	}
	return taus, diffs2, aveError, nil
}

// accumulate buckets pairs into the bins described by edges, dropping
// empty bins and out-of-range pairs.
func accumulate(taus, diffs2, edges []float64, aveError float64) *Result {
	nbins := len(edges) - 1
	sums := make([]float64, nbins)
	counts := make([]int, nbins)

	lo, hi := edges[0], edges[nbins]
	for p, tau := range taus {
		if tau < lo || tau > hi {
			continue
		}
		idx := nbins - 1 // tau at or beyond the last interior edge
		for k := 0; k < nbins-1; k++ {
			if tau < edges[k+1] {
				idx = k
				break
			}
		}
		sums[idx] += diffs2[p]
		counts[idx]++
	}

	result := &Result{Sigma: []float64{}}
	for k := 0; k < nbins; k++ {
		if counts[k] == 0 {
			continue
		}

		d := sums[k] / float64(counts[k])
		center := (edges[k] + edges[k+1]) / 2

		result.Lags = append(result.Lags, center)
		result.SqrtD = append(result.SqrtD, math.Sqrt(d))

		if d == 0 {
			result.Sigma = append(result.Sigma, math.NaN())
			continue
		}
		sigmaD := math.Sqrt(8 * aveError * aveError * d / float64(counts[k]+1))
		result.Sigma = append(result.Sigma, sigmaD/(2*math.Sqrt(d)))
	}

	return result
}
