package frames

import (
	"errors"
	"math"
)

// ErrNoFrames is returned when a source directory holds no usable frames.
var ErrNoFrames = errors.New("frames: no frames found")

// Frame is a single snapshot image: row-major intensities with the
// spatial extent of the field of view. Extent is [xmin, xmax, ymin, ymax]
// in the frame's native units; PhysicalUnits reports whether those units
// came from the file's coordinate headers or are bare pixel indices.
type Frame struct {
	Width, Height int
	Intensity     []float64
	Extent        [4]float64
	PhysicalUnits bool
}

// At returns the intensity at pixel (x, y).
func (f *Frame) At(x, y int) float64 {
	return f.Intensity[y*f.Width+x]
}

// Peak returns the largest finite intensity, or NaN when none exists.
func (f *Frame) Peak() float64 {
	peak := math.NaN()
	for _, v := range f.Intensity {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(peak) || v > peak {
			peak = v
		}
	}
	return peak
}

// Normalize scales intensities so the peak finite value is 1. Frames
// with no finite positive peak are left untouched.
func (f *Frame) Normalize() {
	peak := f.Peak()
	if math.IsNaN(peak) || peak <= 0 {
		return
	}
	for i, v := range f.Intensity {
		f.Intensity[i] = v / peak
	}
}

// Source yields the frames of a movie in order. Implementations load
// lazily; Frame may touch the filesystem on every call.
type Source interface {
	Len() int
	Frame(i int) (*Frame, error)
}
