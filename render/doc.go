// Package render draws publication-style figures for flux variability
// analysis using gonum/plot.
//
// All figures share a single Style value describing fonts, line widths,
// figure size and the color cycle. The default style follows the common
// EHT theory-paper conventions (serif-free labels, thick axes, tab10
// colors):
//
//	style := render.DefaultStyle()
//	p, err := render.StructureFunction(curves, style)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	render.SavePNG(p, style, "sf.png")
//
// Available figures:
//
//   - StructureFunction: √D(Δτ) versus lag, log-log, one line per model
//   - FSD: fractional standard deviation versus chunk interval
//   - LightCurves: flux versus time
//   - Histogram: distribution of √D samples across sub-windows
//   - ParameterScatter: √D at a reference lag versus one model parameter
//
// Plot construction and file output are separate so callers can adjust
// a plot (titles, extra legends) before saving.
package render
