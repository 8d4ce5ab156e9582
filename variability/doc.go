// Package variability provides simple variability metrics for flux light
// curves, complementing the structure-function estimators in structfunc.
//
// # Fractional Standard Deviation
//
// The FSD of a data chunk is its population standard deviation divided by
// its mean. Binned over increasing time intervals, it traces how much a
// source varies on each timescale:
//
//	intervals := []float64{0.5, 1, 1.5, 2, 2.5, 3}
//	curve, err := variability.SweepFSD(series, intervals)
//
// # Sub-Window Structure Functions
//
// Long simulation light curves are analyzed in overlapping windows, each
// window renormalized by its own mean flux. All windows share one fixed
// lag grid (Bins equal-width bins over [0, GridMax] hours) so the band
// picks the same bin in every window:
//
//	dist, err := variability.SqrtDBandDistribution(series, variability.BandDistributionOptions{
//	    WindowLength: 10,   // hours
//	    Stride:       0.25,
//	    Bins:         64,
//	    BandLow:      0.94, // the "1 hour" lag band
//	    BandHigh:     1.1,
//	})
//	frac := variability.FractionBelow(dist, 0.10)
//
// The distribution of √D at a fixed lag band across windows, and the
// fraction below an observed bound, are the headline numbers of the
// simulation-versus-EHT comparison.
package variability
