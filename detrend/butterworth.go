// Package detrend removes slow trends from flux light curves before
// variability analysis.
package detrend

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Section is a single biquad of a cascaded second-order-sections filter,
// with the denominator normalized so A0 = 1.
type Section struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// HighpassSOS designs a digital Butterworth high-pass filter of the given
// order as cascaded second-order sections, for a cutoff frequency and
// sample rate in the same (arbitrary) unit. The design places the analog
// Butterworth poles, transforms low-pass to high-pass, and maps to the z
// domain with the bilinear transform.
func HighpassSOS(order int, cutoff, sampleRate float64) ([]Section, error) {
	if order < 1 {
		return nil, fmt.Errorf("detrend: filter order must be >= 1, have %d", order)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("detrend: sample rate must be positive, have %f", sampleRate)
	}
	if cutoff <= 0 || cutoff >= sampleRate/2 {
		return nil, fmt.Errorf("detrend: cutoff %f outside (0, %f)", cutoff, sampleRate/2)
	}

	// analog Butterworth low-pass prototype poles on the unit circle
	lowpass := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		lowpass[k] = cmplx.Exp(complex(0, theta))
	}

	// prewarp the cutoff so the bilinear transform lands it exactly
	fs2 := complex(2*sampleRate, 0)
	warped := complex(2*sampleRate*math.Tan(math.Pi*cutoff/sampleRate), 0)

	// low-pass to high-pass: poles invert through the cutoff, the n zeros
	// move from infinity to s = 0; for Butterworth the gain stays 1
	poles := make([]complex128, order)
	for k, p := range lowpass {
		poles[k] = warped / p
	}

	// bilinear transform; the s = 0 zeros land on z = 1
	gain := complex(1, 0)
	digital := make([]complex128, order)
	for k, p := range poles {
		digital[k] = (fs2 + p) / (fs2 - p)
		gain *= fs2 / (fs2 - p) // numerator factor (fs2 - 0) per zero
	}

	return toSections(digital, real(gain)), nil
}

// toSections pairs the digital poles into biquads. The pole formula emits
// conjugates as k and order-1-k, with a single real pole in the middle for
// odd orders. All zeros sit at z = 1; the overall gain is folded into the
// first section.
func toSections(poles []complex128, gain float64) []Section {
	n := len(poles)
	sections := make([]Section, 0, (n+1)/2)

	if n%2 == 1 {
		mid := poles[n/2]
		sections = append(sections, Section{
			B0: 1, B1: -1, B2: 0,
			A1: -real(mid), A2: 0,
		})
	}

	for k := 0; k < n/2; k++ {
		p := poles[k]
		sections = append(sections, Section{
			B0: 1, B1: -2, B2: 1,
			A1: -2 * real(p), A2: real(p)*real(p) + imag(p)*imag(p),
		})
	}

	sections[0].B0 *= gain
	sections[0].B1 *= gain
	sections[0].B2 *= gain
	return sections
}

// Filter runs the cascade over the input using the direct form II
// transposed structure, one pass per section. The input is not modified.
func Filter(sections []Section, x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)

	for _, s := range sections {
		var w1, w2 float64
		for i, v := range y {
			out := s.B0*v + w1
			w1 = s.B1*v - s.A1*out + w2
			w2 = s.B2*v - s.A2*out
			y[i] = out
		}
	}
	return y
}

// Response evaluates the magnitude of the cascade's transfer function at a
// normalized frequency in cycles per sample (0 is DC, 0.5 is Nyquist).
func Response(sections []Section, freq float64) float64 {
	z := cmplx.Exp(complex(0, 2*math.Pi*freq))
	zi := 1 / z

	h := complex(1, 0)
	for _, s := range sections {
		num := complex(s.B0, 0) + complex(s.B1, 0)*zi + complex(s.B2, 0)*zi*zi
		den := complex(1, 0) + complex(s.A1, 0)*zi + complex(s.A2, 0)*zi*zi
		h *= num / den
	}
	return cmplx.Abs(h)
}
