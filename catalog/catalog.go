// Package catalog describes the GRMHD simulation library analyzed by this
// module: the parameter grid, the light-curve file naming scheme, and the
// conversion from simulation code time to hours.
package catalog

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
)

// HoursPerStep converts the simulation output cadence (5 GM/c³ per row)
// to hours for Sgr A* at 4.3e6 solar masses.
const HoursPerStep = 0.02942

// Field configurations of the simulation library.
const (
	SANE = "S" // standard and normal evolution
	MAD  = "M" // magnetically arrested disk
)

// Params identifies one simulation run in the library.
type Params struct {
	Field       string  // SANE or MAD
	Spin        float64 // dimensionless black-hole spin a*
	Inclination float64 // viewing inclination in degrees
	Rhigh       int     // electron temperature ratio parameter
}

// Grid axes of the full simulation library.
var (
	Fields       = []string{SANE, MAD}
	Spins        = []float64{-0.94, -0.5, 0.0, 0.5, 0.94}
	Inclinations = []float64{10.0, 30.0, 50.0, 70.0}
	Rhighs       = []int{10, 40, 160}
)

// Grid returns every parameter combination of the library, iterated
// field-major in the order the analysis scripts sweep them.
func Grid() []Params {
	var grid []Params
	for _, field := range Fields {
		for _, incl := range Inclinations {
			for _, spin := range Spins {
				for _, rhigh := range Rhighs {
					grid = append(grid, Params{
						Field:       field,
						Spin:        spin,
						Inclination: incl,
						Rhigh:       rhigh,
					})
				}
			}
		}
	}
	return grid
}

// String identifies the run, e.g. "Sa-0.5.i10.0.R40".
func (p Params) String() string {
	return fmt.Sprintf("%sa%s.i%s.R%d", p.Field, formatSpin(p.Spin), formatIncl(p.Inclination), p.Rhigh)
}

// LightCurveFile returns the variability table path for this run relative
// to the simulation data root, e.g. "SANE/Sa-0.5.i10.0.R40_var.out".
func (p Params) LightCurveFile() string {
	return filepath.Join(p.dir(), p.String()+"_var.out")
}

// ResultFile returns the path for this run's persisted structure-function
// result relative to the output root.
func (p Params) ResultFile() string {
	return filepath.Join(p.dir(), p.String()+"_sf.json")
}

func (p Params) dir() string {
	if p.Field == MAD {
		return "MAD"
	}
	return "SANE"
}

// formatSpin renders spins the way the file names spell them: integral
// values keep one decimal ("0.0"), others print exactly ("-0.94").
func formatSpin(spin float64) string {
	if spin == math.Trunc(spin) {
		return strconv.FormatFloat(spin, 'f', 1, 64)
	}
	return strconv.FormatFloat(spin, 'f', -1, 64)
}

func formatIncl(incl float64) string {
	return strconv.FormatFloat(incl, 'f', 1, 64)
}
