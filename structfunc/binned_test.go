package structfunc

import (
	"errors"
	"math"
	"testing"

	"github.com/ehtlab/fluxvar/timeseries"
)

func TestBinnedKnownScenario(t *testing.T) {
	s, _ := timeseries.NewWithErrors(
		[]float64{0, 1, 2, 3},
		[]float64{1, 2, 1, 2},
		[]float64{0.1, 0.1, 0.1, 0.1},
	)

	// pairwise lags {1,1,1,2,2,3} span [1,3]; three bins of width 2/3
	res, err := Binned(s, 3)
	if err != nil {
		t.Fatalf("Binned: %v", err)
	}

	if res.Len() != 3 {
		t.Fatalf("expected 3 occupied bins, got %d (%v)", res.Len(), res.Lags)
	}

	wantCenters := []float64{1 + 1.0/3.0, 2, 3 - 1.0/3.0}
	for i, want := range wantCenters {
		if !almostEqual(res.Lags[i], want, 1e-12) {
			t.Errorf("center %d: expected %f, got %f", i, want, res.Lags[i])
		}
	}

	// lag-1 bin: three pairs each with squared normalized difference (2/3)^2
	if !almostEqual(res.SqrtD[0], 2.0/3.0, 1e-12) {
		t.Errorf("sqrtD bin 0: expected %f, got %f", 2.0/3.0, res.SqrtD[0])
	}

	// lag-2 bin: equal fluxes, D = 0, uncertainty NaN by policy
	if res.SqrtD[1] != 0 {
		t.Errorf("sqrtD bin 1: expected 0, got %f", res.SqrtD[1])
	}
	if !math.IsNaN(res.Sigma[1]) {
		t.Errorf("sigma bin 1: expected NaN for D=0, got %f", res.Sigma[1])
	}

	// uncertainty uses the padded denominator M+1: errors are first scaled
	// by the raw mean 1.5, so the average error is 1/15
	aveErr := 0.1 / 1.5
	sigmaD := math.Sqrt(8 * aveErr * aveErr * (4.0 / 9.0) / 4) // M=3 pairs
	want := sigmaD / (2 * math.Sqrt(4.0/9.0))
	if !almostEqual(res.Sigma[0], want, 1e-9) {
		t.Errorf("sigma bin 0: expected %f, got %f", want, res.Sigma[0])
	}
}

func TestBinnedDropsEmptyBins(t *testing.T) {
	// lags {0.1, 9.9, 10}: with 8 bins the middle ones collect nothing
	s, _ := timeseries.NewWithErrors(
		[]float64{0, 0.1, 10},
		[]float64{1.0, 1.2, 0.9},
		[]float64{0.05, 0.05, 0.05},
	)

	res, err := Binned(s, 8)
	if err != nil {
		t.Fatalf("Binned: %v", err)
	}

	if res.Len() != 2 {
		t.Fatalf("expected 2 occupied bins, got %d (%v)", res.Len(), res.Lags)
	}
	for _, v := range res.SqrtD {
		if math.IsNaN(v) {
			t.Error("empty bins must be dropped, not reported as NaN")
		}
	}
	for i := 1; i < res.Len(); i++ {
		if res.Lags[i] <= res.Lags[i-1] {
			t.Errorf("bin centers not increasing: %v", res.Lags)
		}
	}
}

func TestBinnedTwoPointDegenerate(t *testing.T) {
	// a single pair: one separation, zero bin width
	s, _ := timeseries.NewWithErrors(
		[]float64{0, 1},
		[]float64{1, 3},
		[]float64{0.1, 0.1},
	)

	res, err := Binned(s, 4)
	if err != nil {
		t.Fatalf("Binned: %v", err)
	}

	if res.Len() != 1 {
		t.Fatalf("expected 1 bin, got %d", res.Len())
	}
	if res.Lags[0] != 1 {
		t.Errorf("expected center at the single separation 1, got %f", res.Lags[0])
	}
	// mean 2, normalized fluxes 0.5 and 1.5: D = 1
	if !almostEqual(res.SqrtD[0], 1, 1e-12) {
		t.Errorf("sqrtD: expected 1, got %f", res.SqrtD[0])
	}
	if math.IsNaN(res.Sigma[0]) {
		t.Error("single-pair bin must not divide by zero with the padded denominator")
	}
}

func TestBinnedRequiresErrors(t *testing.T) {
	s, _ := timeseries.New([]float64{0, 1, 2}, []float64{1, 2, 1})
	if _, err := Binned(s, 4); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput without an error column, got %v", err)
	}
}

func TestBinnedInvalidBinCount(t *testing.T) {
	s, _ := timeseries.NewWithErrors(
		[]float64{0, 1, 2},
		[]float64{1, 2, 1},
		[]float64{0.1, 0.1, 0.1},
	)
	if _, err := Binned(s, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for 0 bins, got %v", err)
	}
}

func TestBinnedAgreesWithSlidingOnDenseGrid(t *testing.T) {
	// regularly sampled curve: the two estimators measure the same signal,
	// so the lag-1 estimates should land close together
	times := make([]float64, 40)
	values := make([]float64, 40)
	errs := make([]float64, 40)
	for i := range times {
		times[i] = float64(i) * 0.25
		values[i] = 2 + math.Sin(2*math.Pi*times[i]/3)
		errs[i] = 0.01
	}
	s, _ := timeseries.NewWithErrors(times, values, errs)

	sliding, err := Sliding(s, &SlidingOptions{Window: 0.25, MaxLag: 4})
	if err != nil {
		t.Fatalf("Sliding: %v", err)
	}
	binned, err := Binned(s, 16)
	if err != nil {
		t.Fatalf("Binned: %v", err)
	}

	_, ds := sliding.Nearest(1)
	_, db := binned.Nearest(1)
	if math.IsNaN(ds) || math.IsNaN(db) {
		t.Fatal("expected finite estimates at lag 1 from both estimators")
	}
	if math.Abs(ds-db) > 0.2*math.Max(ds, db) {
		t.Errorf("estimators disagree at lag 1: sliding=%f binned=%f", ds, db)
	}
}

func TestBinnedEdgesPinsCenters(t *testing.T) {
	// two windows of different spans estimated against the same edges
	// must report centers from the same fixed grid
	a, _ := timeseries.NewWithErrors(
		[]float64{0, 0.5, 1, 1.5, 2, 2.5, 3},
		[]float64{1, 2, 1, 2, 1, 2, 1},
		[]float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
	)
	b, _ := timeseries.NewWithErrors(
		[]float64{0.2, 0.9, 1.4, 2.1},
		[]float64{2, 1, 2, 1},
		[]float64{0.1, 0.1, 0.1, 0.1},
	)

	edges := []float64{0, 1, 2, 3, 4}
	centers := []float64{0.5, 1.5, 2.5, 3.5}

	for name, s := range map[string]*timeseries.Series{"a": a, "b": b} {
		res, err := BinnedEdges(s, edges)
		if err != nil {
			t.Fatalf("BinnedEdges(%s): %v", name, err)
		}
		for _, lag := range res.Lags {
			found := false
			for _, c := range centers {
				if almostEqual(lag, c, 1e-12) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("series %s: center %f not on the fixed grid %v", name, lag, centers)
			}
		}
	}
}

func TestBinnedEdgesIgnoresOutOfRangePairs(t *testing.T) {
	// the last sample sits 28+ hours away; pairs involving it fall
	// beyond the grid and carry enormous squared differences
	s, _ := timeseries.NewWithErrors(
		[]float64{0, 1, 2, 30},
		[]float64{1, 1, 1, 100},
		[]float64{0.1, 0.1, 0.1, 0.1},
	)

	res, err := BinnedEdges(s, []float64{0, 1.5, 3})
	if err != nil {
		t.Fatalf("BinnedEdges: %v", err)
	}

	if res.Len() != 2 {
		t.Fatalf("expected 2 occupied bins, got %d (%v)", res.Len(), res.Lags)
	}
	for i, v := range res.SqrtD {
		if v != 0 {
			t.Errorf("bin %d: out-of-range pair leaked in, sqrtD=%f", i, v)
		}
	}
}

func TestBinnedEdgesBinBoundaries(t *testing.T) {
	// pairwise lags {1,1,2}: lag 1 sits on the interior edge and
	// belongs to the right bin, lag 2 on the last edge is included
	s, _ := timeseries.NewWithErrors(
		[]float64{0, 1, 2},
		[]float64{1, 2, 1},
		[]float64{0.1, 0.1, 0.1},
	)

	res, err := BinnedEdges(s, []float64{0, 1, 2})
	if err != nil {
		t.Fatalf("BinnedEdges: %v", err)
	}

	if res.Len() != 1 {
		t.Fatalf("expected the first bin empty and the second occupied, got %v", res.Lags)
	}
	if !almostEqual(res.Lags[0], 1.5, 1e-12) {
		t.Errorf("expected center 1.5, got %f", res.Lags[0])
	}
}

func TestBinnedEdgesInvalid(t *testing.T) {
	s, _ := timeseries.NewWithErrors(
		[]float64{0, 1, 2},
		[]float64{1, 2, 1},
		[]float64{0.1, 0.1, 0.1},
	)

	if _, err := BinnedEdges(s, []float64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a single edge, got %v", err)
	}
	if _, err := BinnedEdges(s, []float64{0, 2, 1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unsorted edges, got %v", err)
	}
	noErr, _ := timeseries.New([]float64{0, 1, 2}, []float64{1, 2, 1})
	if _, err := BinnedEdges(noErr, []float64{0, 1, 2}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput without an error column, got %v", err)
	}
}

func TestBinnedEdgesMatchesBinnedOnObservedRange(t *testing.T) {
	s, _ := timeseries.NewWithErrors(
		[]float64{0, 1, 2, 3},
		[]float64{1, 2, 1, 2},
		[]float64{0.1, 0.1, 0.1, 0.1},
	)

	auto, err := Binned(s, 3)
	if err != nil {
		t.Fatalf("Binned: %v", err)
	}
	explicit, err := BinnedEdges(s, []float64{1, 1 + 2.0/3.0, 1 + 4.0/3.0, 3})
	if err != nil {
		t.Fatalf("BinnedEdges: %v", err)
	}

	if auto.Len() != explicit.Len() {
		t.Fatalf("bin counts differ: %d vs %d", auto.Len(), explicit.Len())
	}
	for i := range auto.Lags {
		if !almostEqual(auto.Lags[i], explicit.Lags[i], 1e-12) {
			t.Errorf("bin %d: centers differ, %f vs %f", i, auto.Lags[i], explicit.Lags[i])
		}
		if !almostEqual(auto.SqrtD[i], explicit.SqrtD[i], 1e-12) {
			t.Errorf("bin %d: sqrtD differs, %f vs %f", i, auto.SqrtD[i], explicit.SqrtD[i])
		}
	}
}
