package movie

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ehtlab/fluxvar/frames"
)

// FrameResult records the outcome for one frame of an assembly run.
// Failed frames carry their error; the run continues past them.
type FrameResult struct {
	Index int
	Path  string
	Err   error
}

// AssembleOptions controls frame rendering.
type AssembleOptions struct {
	// Gamma applies a power-law stretch to normalized intensities
	// before the color ramp. 1 is linear; values below 1 lift the
	// faint emission. Zero means 1.
	Gamma float64
	// Pattern names the output files, fed one integer frame index.
	// Empty means "frame_%05d.png".
	Pattern string
}

// Assembler renders frames from a Source into numbered PNG files ready
// for encoding.
type Assembler struct {
	src frames.Source
	log *zap.Logger
}

// NewAssembler builds an assembler over src. A nil logger disables
// logging.
func NewAssembler(src frames.Source, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{src: src, log: log}
}

// Assemble renders every frame into dir. A frame that fails to load or
// encode is reported in its FrameResult and skipped; one bad snapshot
// dump must not sink a multi-hour render. The returned error covers
// only whole-run failures such as an unwritable directory.
func (a *Assembler) Assemble(dir string, opts AssembleOptions) ([]FrameResult, error) {
	if a.src.Len() == 0 {
		return nil, errors.New("movie: source has no frames")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("movie: %w", err)
	}

	gamma := opts.Gamma
	if gamma == 0 {
		gamma = 1
	}
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "frame_%05d.png"
	}

	results := make([]FrameResult, 0, a.src.Len())
	failed := 0
	for i := 0; i < a.src.Len(); i++ {
		path := filepath.Join(dir, fmt.Sprintf(pattern, i))
		res := FrameResult{Index: i, Path: path}

		if err := a.renderFrame(i, path, gamma); err != nil {
			res.Err = err
			failed++
			a.log.Warn("skipping frame",
				zap.Int("frame", i),
				zap.Error(err))
		}
		results = append(results, res)
	}

	a.log.Info("assembly finished",
		zap.Int("frames", a.src.Len()),
		zap.Int("failed", failed),
		zap.String("dir", dir))

	if failed == a.src.Len() {
		return results, errors.New("movie: every frame failed")
	}
	return results, nil
}

func (a *Assembler) renderFrame(i int, path string, gamma float64) error {
	fr, err := a.src.Frame(i)
	if err != nil {
		return err
	}
	fr.Normalize()

	img := Render(fr, gamma)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render paints a frame through the heat color ramp. Rows are flipped
// so the image y axis points up, matching the simulation grid.
func Render(fr *frames.Frame, gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fr.Width, fr.Height))
	for y := 0; y < fr.Height; y++ {
		for x := 0; x < fr.Width; x++ {
			v := fr.At(x, y)
			if gamma != 1 && v > 0 {
				v = math.Pow(v, gamma)
			}
			img.SetRGBA(x, fr.Height-1-y, heatColor(v))
		}
	}
	return img
}
