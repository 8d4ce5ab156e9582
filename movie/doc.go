// Package movie turns simulation snapshot frames into a video.
//
// Assembly is two stages. An Assembler renders each frame from a
// frames.Source into a numbered PNG through a black-red-yellow-white
// heat ramp, skipping frames that fail to load and reporting them in
// the returned FrameResult slice. Encode then shells out to ffmpeg to
// stitch the PNGs into an H.264 movie.
//
//	asm := movie.NewAssembler(src, logger)
//	results, err := asm.Assemble(frameDir, movie.AssembleOptions{Gamma: 0.5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = movie.Encode(ctx, frameDir, "run42.mp4", movie.EncodeOptions{FPS: 20}, logger)
//
// Intensities are peak-normalized per frame before the color stretch so
// a flaring run does not wash out its quiescent frames.
package movie
