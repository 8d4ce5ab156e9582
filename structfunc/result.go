package structfunc

import "math"

// Result holds a structure-function estimate: the lag grid (or bin
// centers), √D per lag, and the propagated uncertainty of √D. The three
// slices are index-aligned and sorted by increasing lag. Sigma is nil when
// the input carried no error column.
type Result struct {
	Lags  []float64
	SqrtD []float64
	Sigma []float64
}

// Len returns the number of lag bins.
func (r *Result) Len() int {
	return len(r.Lags)
}

// Nearest returns the grid lag closest to the requested lag and the √D
// estimate there. The value may be NaN when the nearest bin is empty;
// callers decide whether to filter. Used by the parameter studies, which
// sample every structure function at a common reference lag.
func (r *Result) Nearest(lag float64) (gridLag, sqrtD float64) {
	if len(r.Lags) == 0 {
		return math.NaN(), math.NaN()
	}
	best := 0
	bestDist := math.Abs(r.Lags[0] - lag)
	for i := 1; i < len(r.Lags); i++ {
		if d := math.Abs(r.Lags[i] - lag); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return r.Lags[best], r.SqrtD[best]
}

// Finite returns a copy with every NaN bin removed. The estimators keep
// empty bins as NaN; plotting and distribution analyses drop them here.
func (r *Result) Finite() *Result {
	out := &Result{}
	for i := range r.Lags {
		if math.IsNaN(r.SqrtD[i]) {
			continue
		}
		out.Lags = append(out.Lags, r.Lags[i])
		out.SqrtD = append(out.SqrtD, r.SqrtD[i])
		if r.Sigma != nil {
			out.Sigma = append(out.Sigma, r.Sigma[i])
		}
	}
	return out
}

// InBand returns the √D values whose lag falls strictly inside (lo, hi).
func (r *Result) InBand(lo, hi float64) []float64 {
	var out []float64
	for i, lag := range r.Lags {
		if lag > lo && lag < hi {
			out = append(out, r.SqrtD[i])
		}
	}
	return out
}
