// Package detrend removes slow trends from flux light curves.
//
// GRMHD simulation light curves drift on many-hour timescales that are not
// part of the turbulent variability under study. Before computing
// structure functions or fractional standard deviations, the slow drift is
// removed with a Butterworth high-pass filter:
//
//	cfg := detrend.DefaultHighpassConfig()
//	flat, err := detrend.Highpass(series, cfg)
//
// The filter needs time to settle, so the first cfg.StitchHours of the
// output come from the raw curve, rescaled to meet the filtered curve
// without a jump at the boundary.
//
// The filter design itself is exposed for other uses:
//
//	sos, err := detrend.HighpassSOS(3, 0.25, 1/0.02942)
//	y := detrend.Filter(sos, x)
//
// A simpler centered moving-average trend removal is also available for
// quick looks:
//
//	flat, err := detrend.RemoveTrend(series, 128)
package detrend
