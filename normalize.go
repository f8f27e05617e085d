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

	"github.com/ctessum/sparse"
)

// Normalize computes the standardized rainfall anomaly
// (acc - mean) / std, cell-wise. The three grids must be
// co-registered. A zero or missing standard deviation makes the cell
// NaN rather than an error; NaN inputs propagate.
func Normalize(acc, mean, std *sparse.DenseArray) (*sparse.DenseArray, error) {
	if err := sameShape(acc, mean, std); err != nil {
		return nil, fmt.Errorf("lsmap: normalizing rainfall: %v", err)
	}
	out := sparse.ZerosDense(acc.Shape...)
	for i, a := range acc.Elements {
		s := std.Elements[i]
		if s == 0 || math.IsNaN(s) {
			out.Elements[i] = math.NaN()
			continue
		}
		out.Elements[i] = (a - mean.Elements[i]) / s
	}
	return out, nil
}

// sameShape checks that all grids share the shape of the first one.
func sameShape(grids ...*sparse.DenseArray) error {
	for _, g := range grids {
		if g == nil || len(g.Shape) != 2 {
			return fmt.Errorf("grid must be a 2-dimensional array")
		}
		if g.Shape[0] != grids[0].Shape[0] || g.Shape[1] != grids[0].Shape[1] {
			return fmt.Errorf("grid shapes %v and %v don't match", grids[0].Shape, g.Shape)
		}
	}
	return nil
}
