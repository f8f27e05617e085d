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

package lsmap

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/spatialhazard/lsmap/raster"
)

// A TileHazardComputer computes and persists the hazard rasters for
// one susceptibility tile.
type TileHazardComputer interface {
	// ComputeTile processes the susceptibility raster at file,
	// naming the outputs after prefix. A failure affects only this
	// tile.
	ComputeTile(file, prefix string) error
}

// HazardModel computes landslide hazard maps per the GIRI model. It
// implements TileHazardComputer. All per-tile state is local to each
// ComputeTile call, so one model may process tiles concurrently.
type HazardModel struct {
	c   Config
	cls Classifier
	log logrus.FieldLogger
}

// NewHazardModel creates a hazard model from a validated
// configuration. It performs no I/O.
func NewHazardModel(c Config, log logrus.FieldLogger) (*HazardModel, error) {
	if err := c.Valid(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HazardModel{
		c:   c,
		cls: Classifier{Thresholds: c.Thresholds, ByThresholdValue: c.ByThresholdValue},
		log: log,
	}, nil
}

// ComputeTile runs the hazard calculation for one susceptibility
// tile: obtain the rainfall accumulation for the configured mode,
// normalize it against the historical statistics, classify it, and
// combine it with the susceptibility classes. The rain-hazard raster
// is persisted before the hazard calculation begins, and both outputs
// carry the susceptibility raster's profile unchanged.
func (m *HazardModel) ComputeTile(file, prefix string) error {
	log := m.log.WithFields(logrus.Fields{"tile": prefix, "mode": m.c.Mode})
	log.WithField("file", file).Info("reading susceptibility")

	susc, err := raster.Read(file)
	if err != nil {
		return fmt.Errorf("lsmap: tile %s: reading susceptibility: %v", prefix, err)
	}

	acc, err := m.rainInput(susc)
	if err != nil {
		return fmt.Errorf("lsmap: tile %s: %v", prefix, err)
	}

	mean, err := m.alignedGrid(m.c.MeanRainFile, susc.Profile)
	if err != nil {
		return fmt.Errorf("lsmap: tile %s: %v", prefix, err)
	}
	std, err := m.alignedGrid(m.c.StdRainFile, susc.Profile)
	if err != nil {
		return fmt.Errorf("lsmap: tile %s: %v", prefix, err)
	}

	norm, err := Normalize(acc, mean, std)
	if err != nil {
		return fmt.Errorf("tile %s: %v", prefix, err)
	}

	log.Info("computing rainfall hazard")
	rainClass, err := m.cls.Classify(norm)
	if err != nil {
		return fmt.Errorf("tile %s: %v", prefix, err)
	}
	ext := filepath.Ext(file)
	rainOut := filepath.Join(m.c.ResultsDir, m.c.Mode, "RainHazard", prefix+"_RainHazard"+ext)
	if err := raster.Write(rainOut, &raster.Raster{Data: rainClass, Profile: susc.Profile}); err != nil {
		return fmt.Errorf("lsmap: tile %s: writing rain hazard: %v", prefix, err)
	}

	log.Info("computing hazard")
	hazard, err := Combine(susc.Data, rainClass)
	if err != nil {
		return fmt.Errorf("tile %s: %v", prefix, err)
	}
	hazardOut := filepath.Join(m.c.ResultsDir, m.c.Mode, "Hazard", prefix+"_Hazard"+ext)
	if err := raster.Write(hazardOut, &raster.Raster{Data: hazard, Profile: susc.Profile}); err != nil {
		return fmt.Errorf("lsmap: tile %s: writing hazard: %v", prefix, err)
	}
	log.Info("tile complete")
	return nil
}

// rainInput returns the 24-hour rainfall accumulation grid for the
// configured mode, co-registered with the susceptibility raster.
func (m *HazardModel) rainInput(susc *raster.Raster) (*sparse.DenseArray, error) {
	switch m.c.Mode {
	case ModeConstant:
		acc := sparse.ZerosDense(susc.Data.Shape...)
		for i := range acc.Elements {
			acc.Elements[i] = m.c.ConstantRain
		}
		return acc, nil
	case ModeMap:
		return m.alignedGrid(m.c.RainMapFile, susc.Profile)
	}
	return nil, fmt.Errorf("invalid mode %q", m.c.Mode)
}

// alignedGrid reads the raster named name from the data directory and
// regrids it onto target.
func (m *HazardModel) alignedGrid(name string, target raster.Profile) (*sparse.DenseArray, error) {
	r, err := raster.Read(filepath.Join(m.c.DataDir, name))
	if err != nil {
		return nil, err
	}
	grid, err := raster.Regrid(r, target)
	if err != nil {
		return nil, fmt.Errorf("aligning %s: %v", name, err)
	}
	return grid, nil
}

// TilePrefix derives the tile identity from a susceptibility file
// name: the part of the base name before the first underscore.
func TilePrefix(file string) string {
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return base
}
