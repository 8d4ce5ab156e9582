package frames

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/astrogo/fitsio"
)

// FITSSource reads frames from a directory of single-image FITS files,
// one frame per file, ordered by file name.
type FITSSource struct {
	paths []string
}

// OpenFITSDir scans dir for .fits files and returns a source over them
// in lexical order. Snapshot dumps are numbered with fixed-width indices
// so lexical order is frame order.
func OpenFITSDir(dir string) (*FITSSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("frames: reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".fits") || strings.HasSuffix(name, ".fit") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, ErrNoFrames
	}
	return &FITSSource{paths: paths}, nil
}

func (s *FITSSource) Len() int { return len(s.paths) }

// Path returns the file backing frame i.
func (s *FITSSource) Path(i int) string { return s.paths[i] }

// Frame loads frame i from disk. The field-of-view extent is derived
// from the CDELT1/CDELT2 coordinate headers when present; without them
// the extent falls back to pixel indices.
func (s *FITSSource) Frame(i int) (*Frame, error) {
	if i < 0 || i >= len(s.paths) {
		return nil, fmt.Errorf("frames: index %d out of range [0, %d)", i, len(s.paths))
	}

	r, err := os.Open(s.paths[i])
	if err != nil {
		return nil, fmt.Errorf("frames: %w", err)
	}
	defer r.Close()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("frames: opening %s: %w", s.paths[i], err)
	}
	defer f.Close()

	img, ok := f.HDU(0).(fitsio.Image)
	if !ok {
		return nil, fmt.Errorf("frames: %s: primary HDU is not an image", s.paths[i])
	}
	return readImage(img, s.paths[i])
}

func readImage(img fitsio.Image, path string) (*Frame, error) {
	hdr := img.Header()
	axes := hdr.Axes()
	if len(axes) < 2 {
		return nil, fmt.Errorf("frames: %s: need a 2D image, have %d axes", path, len(axes))
	}
	width, height := axes[0], axes[1]
	npix := width * height

	intensity, err := readPixels(img, hdr.Bitpix(), npix)
	if err != nil {
		return nil, fmt.Errorf("frames: %s: %w", path, err)
	}

	fr := &Frame{
		Width:     width,
		Height:    height,
		Intensity: intensity,
	}
	fr.Extent, fr.PhysicalUnits = extentFromHeader(hdr, width, height)
	return fr, nil
}

// readPixels converts the image data to float64 regardless of the
// on-disk BITPIX encoding.
func readPixels(img fitsio.Image, bitpix, npix int) ([]float64, error) {
	out := make([]float64, npix)
	switch bitpix {
	case 8:
		data := make([]int8, npix)
		if err := img.Read(&data); err != nil {
			return nil, err
		}
		for i, v := range data {
			out[i] = float64(v)
		}
	case 16:
		data := make([]int16, npix)
		if err := img.Read(&data); err != nil {
			return nil, err
		}
		for i, v := range data {
			out[i] = float64(v)
		}
	case 32:
		data := make([]int32, npix)
		if err := img.Read(&data); err != nil {
			return nil, err
		}
		for i, v := range data {
			out[i] = float64(v)
		}
	case 64:
		data := make([]int64, npix)
		if err := img.Read(&data); err != nil {
			return nil, err
		}
		for i, v := range data {
			out[i] = float64(v)
		}
	case -32:
		data := make([]float32, npix)
		if err := img.Read(&data); err != nil {
			return nil, err
		}
		for i, v := range data {
			out[i] = float64(v)
		}
	case -64:
		if err := img.Read(&out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d", bitpix)
	}
	return out, nil
}

// extentFromHeader builds the field-of-view extent centred on the image
// midpoint. CDELT values are per-pixel increments; a missing or zero
// increment drops the frame back to pixel coordinates.
func extentFromHeader(hdr *fitsio.Header, width, height int) ([4]float64, bool) {
	dx := headerFloat(hdr, "CDELT1")
	dy := headerFloat(hdr, "CDELT2")
	if dx == 0 || dy == 0 {
		return [4]float64{0, float64(width), 0, float64(height)}, false
	}

	// CDELT1 is negative for RA-like axes; the extent is symmetric
	// about the centre either way.
	halfX := math.Abs(dx) * float64(width) / 2
	halfY := math.Abs(dy) * float64(height) / 2
	return [4]float64{-halfX, halfX, -halfY, halfY}, true
}

func headerFloat(hdr *fitsio.Header, key string) float64 {
	card := hdr.Get(key)
	if card == nil {
		return 0
	}
	switch v := card.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
