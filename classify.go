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
	"math"
	"sort"

	"github.com/ctessum/sparse"
)

// A Classifier maps normalized rainfall to discrete rain-hazard
// classes 1 through 5 using four ascending class boundaries.
//
// The GIRI reference implementation compares normalized rainfall
// against the ordinal indices of its threshold list (0, 1, 2, 3)
// rather than the configured threshold magnitudes. By default the
// Classifier reproduces that behavior for compatibility with
// previously published maps. Setting ByThresholdValue classifies
// against the configured Thresholds instead.
type Classifier struct {
	// Thresholds are the four ascending class limits for normalized
	// rainfall. They are only compared against when ByThresholdValue
	// is set, but are validated in either case because they are part
	// of the run parameters.
	Thresholds []float64

	// ByThresholdValue selects classification against Thresholds
	// instead of the index boundaries 0, 1, 2, 3.
	ByThresholdValue bool
}

// boundaries returns the upper class limits for classes 1 through 4.
func (c Classifier) boundaries() ([4]float64, error) {
	if len(c.Thresholds) != 4 {
		return [4]float64{}, fmt.Errorf("have %d thresholds, want 4", len(c.Thresholds))
	}
	if !sort.Float64sAreSorted(c.Thresholds) {
		return [4]float64{}, fmt.Errorf("thresholds %v are not ascending", c.Thresholds)
	}
	if c.ByThresholdValue {
		return [4]float64{c.Thresholds[0], c.Thresholds[1], c.Thresholds[2], c.Thresholds[3]}, nil
	}
	return [4]float64{0, 1, 2, 3}, nil
}

// Classify maps each cell of normalized rainfall to a class in
// {1..5}: class k for values in (b[k-2], b[k-1]], class 1 at or below
// the first boundary, and class 5 above the last one. NaN cells stay
// NaN; every finite cell receives exactly one class.
func (c Classifier) Classify(norm *sparse.DenseArray) (*sparse.DenseArray, error) {
	if err := sameShape(norm); err != nil {
		return nil, fmt.Errorf("lsmap: classifying rainfall: %v", err)
	}
	b, err := c.boundaries()
	if err != nil {
		return nil, fmt.Errorf("lsmap: classifying rainfall: %v", err)
	}
	out := sparse.ZerosDense(norm.Shape...)
	for i, v := range norm.Elements {
		if math.IsNaN(v) {
			out.Elements[i] = math.NaN()
			continue
		}
		var class float64
		switch {
		case v <= b[0]:
			class = 1
		case v <= b[1]:
			class = 2
		case v <= b[2]:
			class = 3
		case v <= b[3]:
			class = 4
		default:
			class = 5
		}
		out.Elements[i] = class
	}
	return out, nil
}
