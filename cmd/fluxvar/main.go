// Command fluxvar analyzes horizon-scale flux light curves: structure
// functions, binned variability, light-curve plots, and snapshot
// movies.
//
// Usage:
//
//	fluxvar sf     -in curve.csv [-format sma|alma|var] [-window 0.5] [-maxlag 12] [-bins 0] [-catalog]
//	fluxvar fsd    -in curve.csv [-format sma|alma|var] [-intervals 0.5,1,2,4]
//	fluxvar flux   -in a.csv[,b.csv...] [-format sma|alma|var]
//	fluxvar params [-lag 0.5] [-eht sma_apr06_sf.json,...]
//	fluxvar movie  [-frames dir] [-out movie.mp4]
//
// params reads the *_sf.json results a catalog sweep wrote under the
// output directory and draws one scatter panel per simulation parameter,
// with an optional reference band spanning the EHT days' values.
//
// Directories, ffmpeg location, and the log level come from the
// environment (FLUXVAR_*), with flags taking precedence.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ehtlab/fluxvar/catalog"
	"github.com/ehtlab/fluxvar/frames"
	"github.com/ehtlab/fluxvar/internal/config"
	"github.com/ehtlab/fluxvar/internal/logger"
	"github.com/ehtlab/fluxvar/movie"
	"github.com/ehtlab/fluxvar/render"
	"github.com/ehtlab/fluxvar/structfunc"
	"github.com/ehtlab/fluxvar/timeseries"
	"github.com/ehtlab/fluxvar/variability"
)

// SFExport is the persisted form of a structure-function result.
type SFExport struct {
	Name   string    `json:"name"`
	Window float64   `json:"window,omitempty"`
	MaxLag float64   `json:"max_lag,omitempty"`
	Bins   int       `json:"bins,omitempty"`
	Lags   []float64 `json:"lags"`
	SqrtD  []float64 `json:"sqrt_d"`
	Sigma  []float64 `json:"sigma"`
}

// FSDExport is the persisted form of an FSD interval sweep.
type FSDExport struct {
	Name      string    `json:"name"`
	Intervals []float64 `json:"intervals"`
	MeanFSD   []float64 `json:"mean_fsd"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	mode, args := os.Args[1], os.Args[2:]

	cfg := config.LoadConfig()
	zl, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zl.Sync()

	switch mode {
	case "sf":
		err = runSF(cfg, zl, args)
	case "fsd":
		err = runFSD(cfg, zl, args)
	case "flux":
		err = runFlux(cfg, zl, args)
	case "params":
		err = runParams(cfg, zl, args)
	case "movie":
		err = runMovie(cfg, zl, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		zl.Fatal("run failed", zap.String("mode", mode), zap.Error(err))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fluxvar <sf|fsd|flux|params|movie> [flags]")
}

func runSF(cfg *config.Config, zl *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("sf", flag.ExitOnError)
	in := fs.String("in", "", "light curve file")
	format := fs.String("format", "sma", "input format: sma, alma, var")
	window := fs.Float64("window", 0, "lag window in hours (0 = native sampling gap)")
	maxLag := fs.Float64("maxlag", 0, "maximum lag in hours (0 = full span)")
	bins := fs.Int("bins", 0, "use the binned estimator with this many bins (0 = sliding)")
	sweep := fs.Bool("catalog", false, "sweep the simulation grid under the data directory")
	fs.Parse(args)

	if *sweep {
		return runCatalogSweep(cfg, zl, *window, *maxLag)
	}
	if *in == "" {
		return fmt.Errorf("sf: -in is required")
	}

	series, err := loadCurve(*in, *format)
	if err != nil {
		return err
	}

	var result *structfunc.Result
	if *bins > 0 {
		result, err = structfunc.Binned(series, *bins)
	} else {
		result, err = structfunc.Sliding(series, &structfunc.SlidingOptions{
			Window: *window,
			MaxLag: *maxLag,
		})
	}
	if err != nil {
		return err
	}

	export := SFExport{
		Name:   series.Name,
		Window: *window,
		MaxLag: *maxLag,
		Bins:   *bins,
		Lags:   result.Lags,
		SqrtD:  result.SqrtD,
		Sigma:  result.Sigma,
	}
	base := strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in))
	if err := writeJSON(cfg.OutputDir, base+"_sf.json", export); err != nil {
		return err
	}

	style := render.DefaultStyle()
	p, err := render.StructureFunction([]render.Curve{{Label: series.Name, Result: result}}, style)
	if err != nil {
		return err
	}
	out := filepath.Join(cfg.OutputDir, base+"_sf.png")
	if err := render.SavePNG(p, style, out); err != nil {
		return err
	}

	zl.Info("structure function written",
		zap.String("input", *in),
		zap.Int("lags", result.Len()),
		zap.String("plot", out))
	return nil
}

// runCatalogSweep computes a sliding SF for every grid run whose light
// curve exists under the data directory. Missing runs are logged and
// skipped; incomplete simulation suites are the norm.
func runCatalogSweep(cfg *config.Config, zl *zap.Logger, window, maxLag float64) error {
	done := 0
	for _, params := range catalog.Grid() {
		path := filepath.Join(cfg.DataDir, params.LightCurveFile())
		series, err := timeseries.LoadVarTable(path)
		if err != nil {
			if os.IsNotExist(err) {
				zl.Debug("no light curve", zap.String("run", params.String()))
				continue
			}
			zl.Warn("skipping run", zap.String("run", params.String()), zap.Error(err))
			continue
		}

		// simulation output counts time in 5 GM/c^3 steps
		series = series.ScaleTime(catalog.HoursPerStep)
		series.Name = params.String()

		result, err := structfunc.Sliding(series, &structfunc.SlidingOptions{
			Window: window,
			MaxLag: maxLag,
		})
		if err != nil {
			zl.Warn("skipping run", zap.String("run", params.String()), zap.Error(err))
			continue
		}

		export := SFExport{
			Name:   params.String(),
			Window: window,
			MaxLag: maxLag,
			Lags:   result.Lags,
			SqrtD:  result.SqrtD,
			Sigma:  result.Sigma,
		}
		if err := writeJSON(cfg.OutputDir, params.ResultFile(), export); err != nil {
			return err
		}
		done++
	}

	if done == 0 {
		return fmt.Errorf("sweep: no light curves under %s", cfg.DataDir)
	}
	zl.Info("catalog sweep finished", zap.Int("runs", done))
	return nil
}

// runSample is one grid run's √D sampled at the reference lag.
type runSample struct {
	params catalog.Params
	sqrtD  float64
}

// panelSpec describes one parameter-study panel: which parameter runs
// along x and which parameters define a connected group.
type panelSpec struct {
	name   string
	title  string
	xlabel string
	x      func(catalog.Params) float64
	group  func(catalog.Params) string
}

// fieldPosition places the two field types on a numeric axis.
func fieldPosition(field string) float64 {
	if field == catalog.MAD {
		return 1
	}
	return 0
}

func paramPanels() []panelSpec {
	return []panelSpec{
		{
			name:   "field",
			title:  "Structure Function vs Magnetic Field Type",
			xlabel: "Magnetic Field Type (0=SANE, 1=MAD)",
			x:      func(p catalog.Params) float64 { return fieldPosition(p.Field) },
			group: func(p catalog.Params) string {
				return fmt.Sprintf("i%v.a%v.R%d", p.Inclination, p.Spin, p.Rhigh)
			},
		},
		{
			name:   "incl",
			title:  "Structure Function vs Inclination",
			xlabel: "Inclination (degrees)",
			x:      func(p catalog.Params) float64 { return p.Inclination },
			group: func(p catalog.Params) string {
				return fmt.Sprintf("%s.a%v.R%d", p.Field, p.Spin, p.Rhigh)
			},
		},
		{
			name:   "spin",
			title:  "Structure Function vs Black Hole Spin",
			xlabel: "Black Hole Spin",
			x:      func(p catalog.Params) float64 { return p.Spin },
			group: func(p catalog.Params) string {
				return fmt.Sprintf("%s.i%v.R%d", p.Field, p.Inclination, p.Rhigh)
			},
		},
		{
			name:   "rhigh",
			title:  "Structure Function vs Rhigh",
			xlabel: "Rhigh",
			x:      func(p catalog.Params) float64 { return float64(p.Rhigh) },
			group: func(p catalog.Params) string {
				return fmt.Sprintf("%s.i%v.a%v", p.Field, p.Inclination, p.Spin)
			},
		},
	}
}

// panelPoints turns the run samples into scatter points for one panel,
// numbering groups so runs differing only in the panel's parameter are
// joined by a line.
func panelPoints(samples []runSample, spec panelSpec) []render.ScatterPoint {
	groupIDs := map[string]int{}
	pts := make([]render.ScatterPoint, 0, len(samples))
	for _, s := range samples {
		key := spec.group(s.params)
		id, ok := groupIDs[key]
		if !ok {
			id = len(groupIDs)
			groupIDs[key] = id
		}
		pts = append(pts, render.ScatterPoint{X: spec.x(s.params), Y: s.sqrtD, Group: id})
	}
	return pts
}

// loadSFExport reads a persisted structure-function result back.
func loadSFExport(path string) (*structfunc.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var exp SFExport
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(exp.Lags) == 0 || len(exp.Lags) != len(exp.SqrtD) {
		return nil, fmt.Errorf("%s: malformed structure-function export", path)
	}
	return &structfunc.Result{Lags: exp.Lags, SqrtD: exp.SqrtD, Sigma: exp.Sigma}, nil
}

// referenceBand spans the min and max √D at the reference lag across the
// given persisted results, the EHT-day spread the simulations are held
// against.
func referenceBand(paths []string, lag float64) (*render.Band, error) {
	band := render.Band{Low: math.Inf(1), High: math.Inf(-1)}
	for _, path := range paths {
		res, err := loadSFExport(path)
		if err != nil {
			return nil, err
		}
		_, d := res.Nearest(lag)
		if math.IsNaN(d) {
			return nil, fmt.Errorf("%s: no estimate near lag %f", path, lag)
		}
		band.Low = math.Min(band.Low, d)
		band.High = math.Max(band.High, d)
	}
	if math.IsInf(band.Low, 1) {
		return nil, fmt.Errorf("no reference results given")
	}
	return &band, nil
}

// runParams draws the parameter-study panels from a catalog sweep's
// persisted results: every run's √D sampled at the reference lag,
// plotted against each simulation parameter in turn.
func runParams(cfg *config.Config, zl *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("params", flag.ExitOnError)
	lag := fs.Float64("lag", 0.5, "reference lag in hours")
	eht := fs.String("eht", "", "comma-separated SF JSON files spanning the reference band")
	fs.Parse(args)

	var samples []runSample
	for _, params := range catalog.Grid() {
		res, err := loadSFExport(filepath.Join(cfg.OutputDir, params.ResultFile()))
		if err != nil {
			if os.IsNotExist(err) {
				zl.Debug("no sweep result", zap.String("run", params.String()))
				continue
			}
			return err
		}
		_, d := res.Nearest(*lag)
		if math.IsNaN(d) {
			zl.Warn("no estimate at reference lag", zap.String("run", params.String()))
			continue
		}
		samples = append(samples, runSample{params: params, sqrtD: d})
	}
	if len(samples) == 0 {
		return fmt.Errorf("params: no sweep results under %s; run fluxvar sf -catalog first", cfg.OutputDir)
	}

	var band *render.Band
	if *eht != "" {
		var err error
		band, err = referenceBand(strings.Split(*eht, ","), *lag)
		if err != nil {
			return err
		}
	}

	style := render.DefaultStyle()
	for _, spec := range paramPanels() {
		p, err := render.ParameterScatter(panelPoints(samples, spec), band, spec.title, spec.xlabel, style)
		if err != nil {
			return fmt.Errorf("panel %s: %w", spec.name, err)
		}
		out := filepath.Join(cfg.OutputDir, "params_"+spec.name+".png")
		if err := render.SavePNG(p, style, out); err != nil {
			return err
		}
		zl.Info("panel written", zap.String("panel", spec.name), zap.String("plot", out))
	}

	zl.Info("parameter study finished",
		zap.Int("runs", len(samples)),
		zap.Float64("lag", *lag))
	return nil
}

func runFSD(cfg *config.Config, zl *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("fsd", flag.ExitOnError)
	in := fs.String("in", "", "light curve file")
	format := fs.String("format", "sma", "input format: sma, alma, var")
	intervalsArg := fs.String("intervals", "0.5,1,2,4", "chunk intervals in hours")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("fsd: -in is required")
	}
	intervals, err := parseFloats(*intervalsArg)
	if err != nil {
		return fmt.Errorf("fsd: %w", err)
	}

	series, err := loadCurve(*in, *format)
	if err != nil {
		return err
	}

	means, err := variability.SweepFSD(series, intervals)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in))
	export := FSDExport{Name: series.Name, Intervals: intervals, MeanFSD: means}
	if err := writeJSON(cfg.OutputDir, base+"_fsd.json", export); err != nil {
		return err
	}

	style := render.DefaultStyle()
	p, err := render.FSD([]render.FSDCurve{{Label: series.Name, Intervals: intervals, FSDs: means}}, style)
	if err != nil {
		return err
	}
	out := filepath.Join(cfg.OutputDir, base+"_fsd.png")
	if err := render.SavePNG(p, style, out); err != nil {
		return err
	}

	zl.Info("FSD sweep written", zap.String("input", *in), zap.String("plot", out))
	return nil
}

func runFlux(cfg *config.Config, zl *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("flux", flag.ExitOnError)
	in := fs.String("in", "", "comma-separated light curve files")
	format := fs.String("format", "sma", "input format: sma, alma, var")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("flux: -in is required")
	}

	var all []*timeseries.Series
	for _, path := range strings.Split(*in, ",") {
		series, err := loadCurve(strings.TrimSpace(path), *format)
		if err != nil {
			return err
		}
		all = append(all, series)
	}

	style := render.DefaultStyle()
	p, err := render.LightCurves(all, style)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	out := filepath.Join(cfg.OutputDir, "flux.png")
	if err := render.SavePNG(p, style, out); err != nil {
		return err
	}

	zl.Info("light curves plotted", zap.Int("curves", len(all)), zap.String("plot", out))
	return nil
}

func runMovie(cfg *config.Config, zl *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("movie", flag.ExitOnError)
	frameDir := fs.String("frames", cfg.FrameDir, "directory of FITS snapshot images")
	out := fs.String("out", "movie.mp4", "output movie file")
	fs.Parse(args)

	src, err := frames.OpenFITSDir(*frameDir)
	if err != nil {
		return err
	}
	if meta := catalog.ParseFrameMetadata(filepath.Base(src.Path(0))); !meta.Empty() {
		zl.Info("simulation metadata", zap.String("run", meta.Describe()))
	}

	renderDir := filepath.Join(cfg.OutputDir, "frames")
	asm := movie.NewAssembler(src, zl)
	results, err := asm.Assemble(renderDir, movie.AssembleOptions{Gamma: cfg.Gamma})
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			zl.Warn("frame skipped", zap.Int("frame", res.Index), zap.Error(res.Err))
		}
	}

	return movie.Encode(context.Background(), renderDir, *out, movie.EncodeOptions{
		FFmpegPath: cfg.FFmpegPath,
		FPS:        cfg.FPS,
	}, zl)
}

func loadCurve(path, format string) (*timeseries.Series, error) {
	switch format {
	case "sma":
		return timeseries.LoadSMA(path)
	case "alma":
		return timeseries.LoadALMA(path)
	case "var":
		s, err := timeseries.LoadVarTable(path)
		if err != nil {
			return nil, err
		}
		return s.ScaleTime(catalog.HoursPerStep), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func parseFloats(csv string) ([]float64, error) {
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func writeJSON(dir, name string, v interface{}) error {
	// name may carry a subdirectory, e.g. SANE/Sa0.0.i10.0.R10_sf.json
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
