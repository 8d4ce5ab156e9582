package movie

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehtlab/fluxvar/frames"
)

// fakeSource serves in-memory frames and can fail selected indices.
type fakeSource struct {
	frames []*frames.Frame
	broken map[int]bool
}

func (s *fakeSource) Len() int { return len(s.frames) }

func (s *fakeSource) Frame(i int) (*frames.Frame, error) {
	if s.broken[i] {
		return nil, errors.New("corrupt dump")
	}
	return s.frames[i], nil
}

func testFrame(peak float64) *frames.Frame {
	return &frames.Frame{
		Width:  2,
		Height: 2,
		Intensity: []float64{
			0, peak / 2,
			peak, math.NaN(),
		},
	}
}

func TestHeatColorRamp(t *testing.T) {
	assert.Equal(t, color.RGBA{A: 0xff}, heatColor(0), "zero maps to black")
	assert.Equal(t, color.RGBA{A: 0xff}, heatColor(math.NaN()), "NaN maps to black")
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, heatColor(1), "peak maps to white")
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, heatColor(2), "overflow clamps to white")

	mid := heatColor(1.0 / 3)
	assert.Equal(t, uint8(0xff), mid.R, "red saturates first")
	assert.Equal(t, uint8(0), mid.B, "blue enters last")
}

func TestRenderFlipsRows(t *testing.T) {
	fr := &frames.Frame{
		Width:  1,
		Height: 2,
		Intensity: []float64{
			0, // row 0, bottom of the grid
			1, // row 1, top of the grid
		},
	}
	img := Render(fr, 1)

	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.RGBAAt(0, 0), "top image row is grid row 1")
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(0, 1), "bottom image row is grid row 0")
}

func TestAssembleWritesFrames(t *testing.T) {
	src := &fakeSource{frames: []*frames.Frame{testFrame(3), testFrame(5), testFrame(1)}}
	dir := t.TempDir()

	asm := NewAssembler(src, nil)
	results, err := asm.Assemble(dir, AssembleOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, i, res.Index)
		info, err := os.Stat(res.Path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Equal(t, filepath.Join(dir, "frame_00000.png"), results[0].Path)
}

func TestAssembleSkipsBrokenFrames(t *testing.T) {
	src := &fakeSource{
		frames: []*frames.Frame{testFrame(1), testFrame(1), testFrame(1)},
		broken: map[int]bool{1: true},
	}

	asm := NewAssembler(src, nil)
	results, err := asm.Assemble(t.TempDir(), AssembleOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	_, err = os.Stat(results[1].Path)
	assert.True(t, os.IsNotExist(err), "failed frame leaves no file")
}

func TestAssembleAllBroken(t *testing.T) {
	src := &fakeSource{
		frames: []*frames.Frame{testFrame(1), testFrame(1)},
		broken: map[int]bool{0: true, 1: true},
	}

	asm := NewAssembler(src, nil)
	results, err := asm.Assemble(t.TempDir(), AssembleOptions{})
	assert.Error(t, err)
	assert.Len(t, results, 2)
}

func TestAssembleEmptySource(t *testing.T) {
	asm := NewAssembler(&fakeSource{}, nil)
	_, err := asm.Assemble(t.TempDir(), AssembleOptions{})
	assert.Error(t, err)
}
