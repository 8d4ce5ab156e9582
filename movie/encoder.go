package movie

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// EncodeOptions configures the external ffmpeg run.
type EncodeOptions struct {
	FFmpegPath string // empty means "ffmpeg" from PATH
	FPS        int    // zero means 20
	Pattern    string // frame file pattern, empty means "frame_%05d.png"
}

// Encode shells out to ffmpeg to stitch the PNG frames in frameDir into
// an H.264 movie at outPath. ffmpeg's stderr is surfaced in the error
// on failure.
func Encode(ctx context.Context, frameDir, outPath string, opts EncodeOptions, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	ffmpeg := opts.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	fps := opts.FPS
	if fps == 0 {
		fps = 20
	}
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "frame_%05d.png"
	}

	args := []string{
		"-y",
		"-framerate", fmt.Sprint(fps),
		"-i", filepath.Join(frameDir, pattern),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		outPath,
	}

	log.Info("encoding movie",
		zap.String("ffmpeg", ffmpeg),
		zap.Int("fps", fps),
		zap.String("out", outPath))

	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("movie: ffmpeg: %w: %s", err, out)
	}
	return nil
}
