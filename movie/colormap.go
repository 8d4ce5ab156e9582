package movie

import (
	"image/color"
	"math"
)

// heatColor maps a normalized intensity in [0, 1] through a
// black-red-yellow-white ramp, the usual stretch for synchrotron
// emission maps. NaN pixels render black.
func heatColor(v float64) color.RGBA {
	if math.IsNaN(v) || v <= 0 {
		return color.RGBA{A: 0xff}
	}
	if v > 1 {
		v = 1
	}

	var r, g, b float64
	switch {
	case v < 1.0/3:
		r = 3 * v
	case v < 2.0/3:
		r = 1
		g = 3*v - 1
	default:
		r = 1
		g = 1
		b = 3*v - 2
	}

	return color.RGBA{
		R: uint8(math.Round(255 * r)),
		G: uint8(math.Round(255 * g)),
		B: uint8(math.Round(255 * b)),
		A: 0xff,
	}
}
