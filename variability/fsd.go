// Package variability provides fractional standard deviation and
// sub-window variability analyses for flux light curves.
package variability

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ehtlab/fluxvar/timeseries"
)

// FSD returns the fractional standard deviation σ/μ of a set of flux
// values, using the population standard deviation. An empty set yields NaN.
func FSD(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	mean := stat.Mean(values, nil)
	return stat.PopStdDev(values, nil) / mean
}

// ChunkFSD splits a light curve into chunks of the given time interval and
// returns the FSD of each chunk.
//
// Chunk boundaries snap to the sample nearest each ideal cut time
// t_min + n·interval, so with irregular sampling the chunks hold whatever
// samples fall closest to an interval-sized span. The partial chunk after
// the last cut is discarded.
func ChunkFSD(series *timeseries.Series, interval float64) ([]float64, error) {
	if series == nil || series.Len() == 0 {
		return nil, errors.New("variability: empty series")
	}
	if interval <= 0 || math.IsNaN(interval) {
		return nil, fmt.Errorf("variability: interval must be positive, have %f", interval)
	}

	tmin, tmax := series.TimeSpan()
	numChunks := int((tmax - tmin) / interval)
	if numChunks < 1 {
		return nil, fmt.Errorf("variability: interval %f exceeds the series span %f", interval, tmax-tmin)
	}

	cuts := make([]int, 0, numChunks)
	for n := 0; n < numChunks; n++ {
		target := tmin + interval*float64(n+1)
		cuts = append(cuts, nearestIndex(series.Times, target)+1)
	}

	fsds := make([]float64, 0, numChunks)
	start := 0
	for _, cut := range cuts {
		if cut < start { // unsorted input can fold cuts backwards
			cut = start
		}
		fsds = append(fsds, FSD(series.Values[start:cut]))
		start = cut
	}

	return fsds, nil
}

// MeanFSD returns the mean fractional standard deviation over the chunks
// of the given time interval.
func MeanFSD(series *timeseries.Series, interval float64) (float64, error) {
	fsds, err := ChunkFSD(series, interval)
	if err != nil {
		return 0, err
	}
	return stat.Mean(fsds, nil), nil
}

// SweepFSD evaluates MeanFSD for a list of chunk intervals, returning one
// mean FSD per interval. This is the binned-variability curve plotted per
// observing day.
func SweepFSD(series *timeseries.Series, intervals []float64) ([]float64, error) {
	out := make([]float64, len(intervals))
	for i, interval := range intervals {
		fsd, err := MeanFSD(series, interval)
		if err != nil {
			return nil, err
		}
		out[i] = fsd
	}
	return out, nil
}

// nearestIndex returns the index of the sample time closest to target.
func nearestIndex(times []float64, target float64) int {
	best := 0
	bestDist := math.Abs(times[0] - target)
	for i := 1; i < len(times); i++ {
		if d := math.Abs(times[i] - target); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
