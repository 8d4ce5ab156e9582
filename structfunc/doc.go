// Package structfunc estimates first-order structure functions of flux
// light curves.
//
// The structure function
//
//	D(Δτ) = < (x_j - x_i)^2 >
//
// over sample pairs separated by a time lag near Δτ measures the variance
// of a signal on timescale Δτ (Simonetti et al. 1985). It is the standard
// variability statistic for the Sgr A* light curves analyzed here, since it
// tolerates irregular sampling where a periodogram would not.
//
// # Two Estimators
//
// Sliding evaluates D on a regular lag grid, aggregating pairs inside a
// window Δτ ± Δτ0/2 around each grid point:
//
//	result, err := structfunc.Sliding(series, &structfunc.SlidingOptions{
//	    Window: 0.1, // hours
//	    MaxLag: 8.0,
//	})
//
// Binned buckets all pairwise lags into a fixed equal-width partition
// instead, returning bin centers:
//
//	result, err := structfunc.Binned(series, 64)
//
// BinnedEdges takes explicit bin edges in place of the automatic
// equal-width partition, pinning the lag grid independently of each
// input's observed span; pairs outside the edges are ignored. The
// sub-window analyses in package variability rely on this to pool bins
// across windows.
//
// The two estimators intentionally differ in more than binning discipline:
// Sliding scales the error column by the mean of the already-normalized
// fluxes and leaves empty bins as NaN, while Binned scales errors by the
// raw flux mean, pads its uncertainty denominator to M+1, and drops empty
// bins. These conventions reproduce the two analysis chains in use for the
// published results and must not be unified without revisiting both.
//
// # Working with Results
//
//	finite := result.Finite()          // drop NaN bins before plotting
//	_, d1 := result.Nearest(0.5)       // √D at the 0.5 h reference lag
//	band := result.InBand(0.94, 1.1)   // √D samples near the 1 h lag
//
// Both estimators are pure functions of their inputs: no state is kept
// between calls, and identical inputs yield identical outputs.
//
// Normalization is always local to the exact sample set passed in. A
// caller that splits a long curve into sub-windows and estimates each one
// separately gets each window renormalized by its own local mean; that is
// the intended contract for the sub-window analyses in package
// variability, not an accident of implementation.
package structfunc
