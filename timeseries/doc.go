// Package timeseries provides flux time series data structures and utilities.
//
// This package includes the Series type for representing flux light curves,
// along with readers for the ASCII formats produced by the SMA/ALMA export
// pipeline and by the GRMHD simulation post-processing.
//
// # Creating a Series
//
// Create a light curve from slices:
//
//	times := []float64{0, 0.5, 1.0, 1.5}
//	flux := []float64{2.3, 2.4, 2.2, 2.5}
//	series, err := timeseries.New(times, flux)
//
// With measurement errors:
//
//	series, err := timeseries.NewWithErrors(times, flux, errs)
//
// # Loading from Files
//
// Load observed light curves (time, flux, flux error columns):
//
//	sma, err := timeseries.LoadSMA("SM_STAND_HI_Apr06.dat")
//	alma, err := timeseries.LoadALMA("AA_STAND_HI_Apr06.dat")
//
// Load a simulation variability table (whitespace-delimited, code units):
//
//	sim, err := timeseries.LoadVarTable("SANE/Sa-0.5.i10.0.R10_var.out")
//	sim = sim.ZeroTime().ScaleTime(catalog.HoursPerStep)
//
// # Basic Statistics
//
//	mean := series.Mean()
//	std := series.Std()
//	span := series.Duration()
//
// # Manipulation
//
// Work with subsets and transformed copies:
//
//	thinned := series.Thin(5)          // keep every 5th sample
//	chunk := series.Window(2.0, 12.0)  // samples with 2h <= t < 12h
//	shifted := series.ShiftTime(24)    // lay a second day after the first
//
// All manipulation methods return copies; a Series is never modified in
// place once constructed.
package timeseries
