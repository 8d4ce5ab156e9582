// Package render draws the analysis plots with gonum/plot.
package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Style collects every styling decision the plots make. It is passed
// explicitly to each rendering call; nothing in this package mutates
// shared styling state.
type Style struct {
	Width  vg.Length
	Height vg.Length

	TitleSize     vg.Length
	AxisLabelSize vg.Length
	TickLabelSize vg.Length

	LineWidth   vg.Length
	AxisWidth   vg.Length
	MarkerSize  vg.Length
	GridEnabled bool

	Palette []color.Color
}

// DefaultStyle mirrors the EHT scatter+line figure style: 15 pt axis
// labels, thin inward ticks, 2 pt lines.
func DefaultStyle() Style {
	return Style{
		Width:         6 * vg.Inch,
		Height:        5 * vg.Inch,
		TitleSize:     15,
		AxisLabelSize: 15,
		TickLabelSize: 8,
		LineWidth:     2,
		AxisWidth:     1.5,
		MarkerSize:    3,
		GridEnabled:   true,
		Palette: []color.Color{
			color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
			color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
			color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
			color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
			color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
			color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
		},
	}
}

// Color returns the i-th palette color, cycling past the end.
func (s Style) Color(i int) color.Color {
	if len(s.Palette) == 0 {
		return color.Black
	}
	return s.Palette[i%len(s.Palette)]
}

// apply sets the per-plot styling the Style controls.
func (s Style) apply(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = s.TitleSize
	p.X.Label.TextStyle.Font.Size = s.AxisLabelSize
	p.Y.Label.TextStyle.Font.Size = s.AxisLabelSize
	p.X.Tick.Label.Font.Size = s.TickLabelSize
	p.Y.Tick.Label.Font.Size = s.TickLabelSize
	p.X.LineStyle.Width = s.AxisWidth
	p.Y.LineStyle.Width = s.AxisWidth
	p.Legend.TextStyle.Font.Size = s.TickLabelSize
	p.Legend.Top = true
}
