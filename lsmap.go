/*
Copyright © 2026 the LSMap authors.
This file is part of LSMap.

LSMap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

LSMap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with LSMap.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package lsmap implements a gridded landslide hazard model. A hazard
// map is computed per susceptibility tile by normalizing a 24-hour
// rainfall accumulation against historical mean and standard-deviation
// rasters, classifying the normalized rainfall into discrete classes,
// and combining rainfall and susceptibility classes through a fixed
// lookup matrix.
package lsmap

import (
	"fmt"
	"math"
	"sort"
)

// Version gives the version number of this version of LSMap.
const Version = "0.1.0"

// Rainfall input modes.
const (
	// ModeConstant broadcasts a user-specified 24-hour accumulation
	// to every cell of the susceptibility grid.
	ModeConstant = "constant"

	// ModeMap reads the 24-hour accumulation from a user-supplied
	// raster, regridded onto the susceptibility grid.
	ModeMap = "map"
)

// Config holds the immutable configuration for a model run. It is
// built once at startup; no work happens as a side effect of building
// it.
type Config struct {
	// Mode is the rainfall input mode, ModeConstant or ModeMap.
	Mode string

	// ConstantRain is the 24-hour rainfall accumulation [mm] used in
	// ModeConstant.
	ConstantRain float64

	// RainMapFile is the rainfall accumulation raster used in
	// ModeMap, relative to DataDir.
	RainMapFile string

	// DataDir holds the susceptibility tiles and the normalization
	// statistics rasters.
	DataDir string

	// ResultsDir is the root of the output tree. Outputs go to
	// <ResultsDir>/<Mode>/RainHazard and <ResultsDir>/<Mode>/Hazard.
	ResultsDir string

	// SusceptibilityPattern is the glob pattern, relative to DataDir,
	// that susceptibility tiles match.
	SusceptibilityPattern string

	// MeanRainFile and StdRainFile are the historical mean and
	// standard deviation rasters of maximum daily rainfall, relative
	// to DataDir.
	MeanRainFile string
	StdRainFile  string

	// Thresholds are the four ascending class limits for normalized
	// rainfall.
	Thresholds []float64

	// SusceptibilityClasses lists the valid susceptibility classes.
	SusceptibilityClasses []int

	// ByThresholdValue selects classification against the configured
	// threshold magnitudes instead of the historical index-boundary
	// behavior. See Classifier.
	ByThresholdValue bool

	// Parallel selects bounded-concurrency processing of tiles.
	Parallel bool

	// MaxProcesses is the maximum number of tiles processed at once
	// when Parallel is set.
	MaxProcesses int
}

// Valid checks c for configuration errors that make a run impossible.
// These are fatal before any tile is processed.
func (c *Config) Valid() error {
	switch c.Mode {
	case ModeConstant:
		if math.IsNaN(c.ConstantRain) {
			return fmt.Errorf("lsmap: mode %q requires a rainfall accumulation value", ModeConstant)
		}
	case ModeMap:
		if c.RainMapFile == "" {
			return fmt.Errorf("lsmap: mode %q requires a rainfall map name", ModeMap)
		}
	default:
		return fmt.Errorf("lsmap: invalid mode %q; must be %q or %q", c.Mode, ModeConstant, ModeMap)
	}
	if len(c.Thresholds) != 4 {
		return fmt.Errorf("lsmap: have %d rainfall class thresholds, want 4", len(c.Thresholds))
	}
	if !sort.Float64sAreSorted(c.Thresholds) {
		return fmt.Errorf("lsmap: rainfall class thresholds %v are not ascending", c.Thresholds)
	}
	for _, s := range c.SusceptibilityClasses {
		if s < 1 || s > 5 {
			return fmt.Errorf("lsmap: invalid susceptibility class %d", s)
		}
	}
	if c.Parallel && c.MaxProcesses < 1 {
		return fmt.Errorf("lsmap: MaxProcesses must be positive, have %d", c.MaxProcesses)
	}
	return nil
}
