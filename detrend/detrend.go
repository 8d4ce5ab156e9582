package detrend

import (
	"fmt"
	"math"

	"github.com/ehtlab/fluxvar/timeseries"
)

// HighpassConfig configures the Butterworth detrending of a regularly
// sampled light curve.
type HighpassConfig struct {
	// Order of the Butterworth filter.
	Order int

	// CutoffHours is the trend timescale to suppress; variability slower
	// than this is removed. Expressed as a period, in hours.
	CutoffHours float64

	// SampleSpacing is the (uniform) spacing of the samples, in hours.
	SampleSpacing float64

	// DCLevel is added back to the filtered curve, restoring a mean flux
	// level for the fractional statistics downstream.
	DCLevel float64

	// StitchHours keeps the raw light curve for the first samples, where
	// the filter is still settling. The raw segment is rescaled to meet
	// the filtered curve without a jump at the boundary.
	StitchHours float64
}

// DefaultHighpassConfig mirrors the standard detrending of the Sgr A*
// simulation curves: 3rd-order filter, 4-hour trend cutoff, 0.02942 h
// cadence, mean flux level 2 Jy, first 2 hours stitched.
func DefaultHighpassConfig() HighpassConfig {
	return HighpassConfig{
		Order:         3,
		CutoffHours:   4,
		SampleSpacing: 0.02942,
		DCLevel:       2.0,
		StitchHours:   2.0,
	}
}

// Highpass removes slow trends from a light curve with a Butterworth
// high-pass filter and re-adds a constant flux level. Sample times are
// assumed uniform at cfg.SampleSpacing; irregular curves must be
// resampled first.
func Highpass(series *timeseries.Series, cfg HighpassConfig) (*timeseries.Series, error) {
	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("detrend: empty series")
	}
	if cfg.SampleSpacing <= 0 {
		return nil, fmt.Errorf("detrend: sample spacing must be positive")
	}

	fs := 1 / cfg.SampleSpacing
	sections, err := HighpassSOS(cfg.Order, 1/cfg.CutoffHours, fs)
	if err != nil {
		return nil, err
	}

	filtered := Filter(sections, series.Values)
	for i := range filtered {
		filtered[i] += cfg.DCLevel
	}

	out := series.Copy()
	if cfg.StitchHours <= 0 {
		out.Values = filtered
		return out, nil
	}

	// replace the settling region with the raw curve, rescaled so the two
	// segments meet without a jump
	boundary := -1
	for i, t := range series.Times {
		if t > cfg.StitchHours {
			boundary = i
			break
		}
	}
	if boundary < 0 {
		return nil, fmt.Errorf("detrend: no samples beyond the %f h stitch region", cfg.StitchHours)
	}
	if filtered[boundary] == 0 {
		return nil, fmt.Errorf("detrend: filtered curve is zero at the stitch boundary")
	}

	renorm := series.Values[boundary] / filtered[boundary]
	for i := 0; i < boundary; i++ {
		out.Values[i] = series.Values[i] / renorm
	}
	copy(out.Values[boundary:], filtered[boundary:])

	return out, nil
}

// MovingAverageTrend estimates the slow trend of a series with a centered
// moving average over window samples. Samples closer than half a window to
// either edge have no centered estimate and are NaN. An even window uses
// the half-weighted endpoints of a 2×window average, so the estimate stays
// centered.
func MovingAverageTrend(series *timeseries.Series, window int) (*timeseries.Series, error) {
	n := series.Len()
	if window < 2 || window > n {
		return nil, fmt.Errorf("detrend: window %d outside [2, %d]", window, n)
	}

	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	half := window / 2
	if window%2 == 0 {
		for i := half; i < n-half; i++ {
			sum := series.Values[i-half]*0.5 + series.Values[i+half]*0.5
			for j := i - half + 1; j < i+half; j++ {
				sum += series.Values[j]
			}
			trend[i] = sum / float64(window)
		}
	} else {
		for i := half; i < n-half; i++ {
			sum := 0.0
			for j := i - half; j <= i+half; j++ {
				sum += series.Values[j]
			}
			trend[i] = sum / float64(window)
		}
	}

	out := series.Copy()
	out.Values = trend
	out.Name = series.Name + "_trend"
	return out, nil
}

// RemoveTrend subtracts a moving-average trend and re-adds the series
// mean, keeping the flux level for fractional statistics. Edge samples
// with no trend estimate keep their original values.
func RemoveTrend(series *timeseries.Series, window int) (*timeseries.Series, error) {
	trend, err := MovingAverageTrend(series, window)
	if err != nil {
		return nil, err
	}

	mean := series.Mean()
	out := series.Copy()
	for i := range out.Values {
		if !math.IsNaN(trend.Values[i]) {
			out.Values[i] = series.Values[i] - trend.Values[i] + mean
		}
	}
	return out, nil
}
