// Package fluxvar provides variability analysis for astrophysical flux time series.
//
// FluxVar is a Go toolkit for characterizing the variability of flux light
// curves from GRMHD (General-Relativistic Magnetohydrodynamic) simulations
// and from Event Horizon Telescope (EHT) observations of Sgr A*. Its core is
// the first-order structure function of Simonetti et al. (1985), estimated
// either with a sliding window over time lags or with fixed histogram bins.
//
// # Features
//
//   - Sliding-window structure function for irregularly sampled series
//   - Binned (fixed-partition) structure function with error propagation
//   - Fractional standard deviation (FSD) analysis over time bins
//   - Butterworth high-pass detrending of simulation light curves
//   - SMA/ALMA light-curve readers and simulation table readers
//   - Structure-function and light-curve plots via gonum/plot
//   - Image-frame reading (FITS) and movie assembly for simulation output
//
// # Quick Start
//
// Compute the structure function of a light curve:
//
//	series, _ := timeseries.LoadSMA("SM_STAND_HI_Apr06.dat")
//	result, err := structfunc.Sliding(series, nil)
//	for i, lag := range result.Lags {
//	    fmt.Println(lag, result.SqrtD[i])
//	}
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: flux time series data structures and file readers
//   - structfunc: sliding and binned structure-function estimators
//   - variability: fractional standard deviation and sub-window analyses
//   - detrend: Butterworth high-pass and moving-average detrending
//   - catalog: the GRMHD simulation parameter grid and file naming
//   - render: plot rendering with explicit style configuration
//   - frames: image-frame sources for rendered simulation snapshots
//   - movie: frame assembly and video encoding
//
// # References
//
//   - Simonetti, J. H., Cordes, J. M., & Heeschen, D. S. (1985), ApJ 296, 46
//   - Event Horizon Telescope Collaboration (2022), ApJL 930, L12
package fluxvar
