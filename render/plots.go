package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ehtlab/fluxvar/structfunc"
	"github.com/ehtlab/fluxvar/timeseries"
)

// Curve pairs a structure-function result with its legend label.
type Curve struct {
	Label  string
	Result *structfunc.Result
}

// StructureFunction plots √D(Δτ) against lag on log-log axes, one line
// per curve. NaN bins are dropped here; the estimators keep them so the
// choice to filter stays with the renderer.
func StructureFunction(curves []Curve, style Style) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, errors.New("render: no curves to plot")
	}

	p := plot.New()
	style.apply(p)
	p.Title.Text = "Structure Function"
	p.X.Label.Text = "Δτ (hours)"
	p.Y.Label.Text = "[D¹(τ)]^1/2"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{}
	p.Y.Tick.Marker = plot.LogTicks{}
	if style.GridEnabled {
		p.Add(plotter.NewGrid())
	}

	for i, c := range curves {
		finite := c.Result.Finite()
		pts := make(plotter.XYs, 0, finite.Len())
		for k := range finite.Lags {
			// log axes cannot place zero-lag or zero-power bins
			if finite.Lags[k] <= 0 || finite.SqrtD[k] <= 0 {
				continue
			}
			pts = append(pts, plotter.XY{X: finite.Lags[k], Y: finite.SqrtD[k]})
		}
		if len(pts) == 0 {
			return nil, fmt.Errorf("render: curve %q has no plottable bins", c.Label)
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("render: curve %q: %w", c.Label, err)
		}
		line.LineStyle.Width = style.LineWidth
		line.LineStyle.Color = style.Color(i)
		p.Add(line)
		if c.Label != "" {
			p.Legend.Add(c.Label, line)
		}
	}

	return p, nil
}

// FSDCurve is a binned-variability curve: mean FSD per chunk interval.
type FSDCurve struct {
	Label     string
	Intervals []float64
	FSDs      []float64
}

// FSD plots fractional standard deviation against chunk interval, one
// line per observing day.
func FSD(curves []FSDCurve, style Style) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, errors.New("render: no curves to plot")
	}

	p := plot.New()
	style.apply(p)
	p.Title.Text = "Binned Variability"
	p.X.Label.Text = "Time Interval (h)"
	p.Y.Label.Text = "Fractional Standard Deviation (σ/μ)"
	if style.GridEnabled {
		p.Add(plotter.NewGrid())
	}

	for i, c := range curves {
		if len(c.Intervals) != len(c.FSDs) {
			return nil, fmt.Errorf("render: curve %q: %d intervals for %d FSDs", c.Label, len(c.Intervals), len(c.FSDs))
		}
		pts := make(plotter.XYs, 0, len(c.Intervals))
		for k := range c.Intervals {
			if math.IsNaN(c.FSDs[k]) {
				continue
			}
			pts = append(pts, plotter.XY{X: c.Intervals[k], Y: c.FSDs[k]})
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("render: curve %q: %w", c.Label, err)
		}
		line.LineStyle.Width = style.LineWidth
		line.LineStyle.Color = style.Color(i)
		p.Add(line)
		if c.Label != "" {
			p.Legend.Add(c.Label, line)
		}
	}

	return p, nil
}

// LightCurves plots flux against time for a set of series.
func LightCurves(series []*timeseries.Series, style Style) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, errors.New("render: no series to plot")
	}

	p := plot.New()
	style.apply(p)
	p.Title.Text = "Light Curves"
	p.X.Label.Text = "Time (hr)"
	p.Y.Label.Text = "Flux (Jy)"
	if style.GridEnabled {
		p.Add(plotter.NewGrid())
	}

	for i, s := range series {
		pts := make(plotter.XYs, s.Len())
		for k := range s.Values {
			pts[k] = plotter.XY{X: s.Times[k], Y: s.Values[k]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("render: series %q: %w", s.Name, err)
		}
		line.LineStyle.Width = style.LineWidth / 2
		line.LineStyle.Color = style.Color(i)
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}

	return p, nil
}

// Histogram plots the distribution of a set of values (e.g. the √D
// samples at the 1-hour lag band across sub-windows) as a step histogram.
func Histogram(values []float64, bins int, label string, style Style) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, errors.New("render: no values to bin")
	}
	if bins < 1 {
		return nil, fmt.Errorf("render: need at least 1 bin, have %d", bins)
	}

	p := plot.New()
	style.apply(p)
	p.X.Label.Text = "Structure Function [D¹(τ)]^1/2"
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, fmt.Errorf("render: histogram: %w", err)
	}
	h.Normalize(1)
	h.LineStyle.Width = style.LineWidth
	h.LineStyle.Color = style.Color(0)
	h.FillColor = nil
	p.Add(h)
	if label != "" {
		p.Legend.Add(label, h)
	}

	return p, nil
}

// ScatterPoint is one simulation run in a parameter study panel.
type ScatterPoint struct {
	X     float64 // the swept parameter value
	Y     float64 // √D at the reference lag
	Group int     // runs sharing all other parameters; groups are joined by lines
}

// Band is a horizontal reference band, e.g. the spread of √D across the
// EHT observing days at the reference lag.
type Band struct {
	Low, High float64
}

// ParameterScatter plots √D at a reference lag against one simulation
// parameter, joining runs that differ only in that parameter. A non-nil
// band is drawn as a translucent horizontal stripe behind the points.
func ParameterScatter(points []ScatterPoint, band *Band, title, xlabel string, style Style) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, errors.New("render: no points to plot")
	}

	p := plot.New()
	style.apply(p)
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "[D¹(τ)]^1/2 at reference lag"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{}

	groups := map[int]plotter.XYs{}
	all := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if math.IsNaN(pt.Y) || pt.Y <= 0 {
			continue
		}
		groups[pt.Group] = append(groups[pt.Group], plotter.XY{X: pt.X, Y: pt.Y})
		all = append(all, plotter.XY{X: pt.X, Y: pt.Y})
	}
	if len(all) == 0 {
		return nil, errors.New("render: no plottable points")
	}

	if band != nil {
		if band.Low <= 0 || band.High < band.Low {
			return nil, fmt.Errorf("render: bad reference band [%f, %f]", band.Low, band.High)
		}
		xmin, xmax := all[0].X, all[0].X
		for _, pt := range all[1:] {
			xmin = math.Min(xmin, pt.X)
			xmax = math.Max(xmax, pt.X)
		}
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: xmin, Y: band.Low},
			{X: xmax, Y: band.Low},
			{X: xmax, Y: band.High},
			{X: xmin, Y: band.High},
		})
		if err != nil {
			return nil, fmt.Errorf("render: band: %w", err)
		}
		poly.Color = color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0x50}
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	for _, xys := range groups {
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("render: group line: %w", err)
		}
		line.LineStyle.Width = style.LineWidth / 2
		line.LineStyle.Color = style.Color(1)
		p.Add(line)
	}

	sc, err := plotter.NewScatter(all)
	if err != nil {
		return nil, fmt.Errorf("render: scatter: %w", err)
	}
	sc.GlyphStyle.Radius = style.MarkerSize
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Color = style.Color(0)
	p.Add(sc)

	return p, nil
}

// SavePNG writes a plot to a PNG file at the style's figure size.
func SavePNG(p *plot.Plot, style Style, path string) error {
	return p.Save(style.Width, style.Height, path)
}
