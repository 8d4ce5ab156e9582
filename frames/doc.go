// Package frames loads simulation snapshot images for movie assembly.
//
// A Source yields frames in time order; FITSSource is the concrete
// implementation over a directory of single-image FITS files. Frames
// carry their field-of-view extent: files with CDELT coordinate headers
// report physical units, anything else falls back to pixel indices so a
// movie can still be assembled from unannotated dumps.
//
//	src, err := frames.OpenFITSDir("run42/images")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fr, err := src.Frame(0)
//
// Intensities are converted to float64 regardless of the on-disk BITPIX
// encoding. Normalize rescales a frame so its peak finite value is 1,
// which keeps the color stretch consistent across a run.
package frames
