package variability

import (
	"fmt"
	"math"

	"github.com/ehtlab/fluxvar/structfunc"
	"github.com/ehtlab/fluxvar/timeseries"
)

// Windows splits a long light curve into sub-series of the given length,
// with consecutive windows advanced by stride. A window holds the samples
// with start <= t < start+length; window starts run from the first sample
// time while a full window still fits before the end of the series.
//
// Each window is an independent copy: a structure function computed on a
// window is normalized by that window's own mean flux.
func Windows(series *timeseries.Series, length, stride float64) ([]*timeseries.Series, error) {
	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("variability: empty series")
	}
	if length <= 0 || stride <= 0 {
		return nil, fmt.Errorf("variability: window length and stride must be positive")
	}

	tmin, tmax := series.TimeSpan()
	var out []*timeseries.Series
	for start := tmin; start < tmax-length; start += stride {
		out = append(out, series.Window(start, start+length))
	}
	return out, nil
}

// BandDistributionOptions configures SqrtDBandDistribution.
type BandDistributionOptions struct {
	WindowLength float64 // sub-window length in hours
	Stride       float64 // spacing between window starts
	Bins         int     // lag bins per window for the binned estimator
	GridMax      float64 // upper edge of the fixed lag grid; 0 means 8 h
	BandLow      float64 // lower edge of the lag band (exclusive)
	BandHigh     float64 // upper edge of the lag band (exclusive)
}

// SqrtDBandDistribution slides a window along the light curve, computes
// the binned structure function of every window, and collects the √D
// estimates whose lag falls inside the configured band. The result is the
// distribution of the structure function at a reference timescale (e.g.
// the 1-hour band 0.94-1.1 h), one entry per window bin in range.
//
// Every window is estimated against the same fixed lag grid, Bins
// equal-width bins spanning [0, GridMax]. Pinning the grid keeps bin
// centers identical across windows, so the band always selects the same
// bins and the per-window values form one comparable distribution.
//
// Windows too sparse to estimate (fewer than two samples) are skipped.
func SqrtDBandDistribution(series *timeseries.Series, opts BandDistributionOptions) ([]float64, error) {
	windows, err := Windows(series, opts.WindowLength, opts.Stride)
	if err != nil {
		return nil, err
	}

	gridMax := opts.GridMax
	if gridMax == 0 {
		gridMax = 8
	}
	edges := LagGrid(opts.Bins, gridMax)

	var dist []float64
	for _, w := range windows {
		if w.Len() < 2 {
			continue
		}
		res, err := structfunc.BinnedEdges(w, edges)
		if err != nil {
			return nil, fmt.Errorf("window at t=%f: %w", w.Times[0], err)
		}
		for _, v := range res.InBand(opts.BandLow, opts.BandHigh) {
			if !math.IsNaN(v) {
				dist = append(dist, v)
			}
		}
	}
	return dist, nil
}

// LagGrid returns nbins+1 evenly spaced bin edges from 0 to max, the
// fixed grid SqrtDBandDistribution estimates every window against.
func LagGrid(nbins int, max float64) []float64 {
	edges := make([]float64, nbins+1)
	step := max / float64(nbins)
	for k := range edges {
		edges[k] = step * float64(k)
	}
	edges[nbins] = max
	return edges
}

// FractionBelow returns the fraction of values strictly below the
// threshold. Used to report how often a simulation's 1-hour variability
// stays under the observed bound.
func FractionBelow(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	count := 0
	for _, v := range values {
		if v < threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
