package detrend

import (
	"math"
	"testing"

	"github.com/ehtlab/fluxvar/timeseries"
)

func simCurve(hours float64) *timeseries.Series {
	dt := 0.02942
	n := int(hours/dt) + 1
	times := make([]float64, n)
	values := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * dt
		// slow 20-hour drift plus fast 0.5-hour variability around 2 Jy
		values[i] = 2 + 0.8*math.Sin(2*math.Pi*times[i]/20) + 0.2*math.Sin(2*math.Pi*times[i]/0.5)
	}
	s, _ := timeseries.New(times, values)
	return s
}

func TestHighpassRemovesDrift(t *testing.T) {
	s := simCurve(40)

	flat, err := Highpass(s, DefaultHighpassConfig())
	if err != nil {
		t.Fatalf("Highpass: %v", err)
	}
	if flat.Len() != s.Len() {
		t.Fatalf("length changed: %d -> %d", s.Len(), flat.Len())
	}

	// past the stitch region and filter settling, the detrended curve
	// oscillates around the DC level with the fast amplitude only
	late := flat.Window(20, 40)
	min, max := late.Min(), late.Max()
	if min < 2-0.35 || max > 2+0.35 {
		t.Errorf("slow drift survived detrending: late range [%f, %f]", min, max)
	}

	// the raw curve swings far wider
	rawLate := s.Window(20, 40)
	if rawLate.Max()-rawLate.Min() < 1.0 {
		t.Fatal("test curve lost its drift")
	}

	// input untouched
	if s.Values[0] != 2.0+0.8*math.Sin(0)+0.2*math.Sin(0) {
		t.Error("Highpass modified its input")
	}
}

func TestHighpassStitchContinuity(t *testing.T) {
	s := simCurve(40)
	cfg := DefaultHighpassConfig()

	flat, err := Highpass(s, cfg)
	if err != nil {
		t.Fatalf("Highpass: %v", err)
	}

	// find the first sample past the stitch region
	boundary := -1
	for i, tm := range flat.Times {
		if tm > cfg.StitchHours {
			boundary = i
			break
		}
	}
	if boundary < 1 {
		t.Fatal("no stitch boundary found")
	}

	// the rescaled raw segment meets the filtered segment without a jump
	// larger than the fast variability between adjacent samples
	jump := math.Abs(flat.Values[boundary] - flat.Values[boundary-1])
	if jump > 0.25 {
		t.Errorf("discontinuity %f at the stitch boundary", jump)
	}
}

func TestHighpassTooShort(t *testing.T) {
	times := []float64{0, 0.5, 1.0}
	values := []float64{2, 2.1, 1.9}
	s, _ := timeseries.New(times, values)

	cfg := DefaultHighpassConfig()
	cfg.SampleSpacing = 0.5
	// the whole curve is inside the stitch region
	if _, err := Highpass(s, cfg); err == nil {
		t.Fatal("expected error when no samples lie beyond the stitch region")
	}
}

func TestMovingAverageTrend(t *testing.T) {
	times := make([]float64, 11)
	values := make([]float64, 11)
	for i := range times {
		times[i] = float64(i)
		values[i] = float64(i) // pure linear trend
	}
	s, _ := timeseries.New(times, values)

	trend, err := MovingAverageTrend(s, 5)
	if err != nil {
		t.Fatalf("MovingAverageTrend: %v", err)
	}

	// centered average of a line reproduces the line away from the edges
	for i := 2; i <= 8; i++ {
		if math.Abs(trend.Values[i]-float64(i)) > 1e-12 {
			t.Errorf("trend[%d]: expected %f, got %f", i, float64(i), trend.Values[i])
		}
	}
	// edges have no centered estimate
	if !math.IsNaN(trend.Values[0]) || !math.IsNaN(trend.Values[10]) {
		t.Error("expected NaN trend at the edges")
	}
}

func TestRemoveTrendFlattensLine(t *testing.T) {
	n := 101
	times := make([]float64, n)
	values := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * 0.1
		values[i] = 1 + 0.5*times[i]
	}
	s, _ := timeseries.New(times, values)

	flat, err := RemoveTrend(s, 11)
	if err != nil {
		t.Fatalf("RemoveTrend: %v", err)
	}

	mean := s.Mean()
	for i := 5; i < n-5; i++ {
		if math.Abs(flat.Values[i]-mean) > 1e-9 {
			t.Errorf("sample %d: expected %f, got %f", i, mean, flat.Values[i])
			break
		}
	}
}

func TestMovingAverageTrendInvalidWindow(t *testing.T) {
	s, _ := timeseries.New([]float64{0, 1, 2}, []float64{1, 2, 3})
	if _, err := MovingAverageTrend(s, 1); err == nil {
		t.Error("expected error for window 1")
	}
	if _, err := MovingAverageTrend(s, 10); err == nil {
		t.Error("expected error for window larger than the series")
	}
}
