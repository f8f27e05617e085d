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

// hazardScores is the landslide hazard matrix, indexed by
// [susceptibility class - 2][rain-hazard class - 2]. Class 1 on
// either axis has no rule and scores zero.
var hazardScores = [4][4]float64{
	{1, 2, 3, 5},
	{2, 3, 5, 10},
	{3, 5, 10, 15},
	{5, 10, 15, 20},
}

// Combine computes the landslide hazard score for each cell from the
// susceptibility class and the rain-hazard class. Pairs without a
// matrix rule score zero. Cells with missing susceptibility are NaN
// in the output regardless of the rain-hazard class.
func Combine(susc, rainClass *sparse.DenseArray) (*sparse.DenseArray, error) {
	if err := sameShape(susc, rainClass); err != nil {
		return nil, fmt.Errorf("lsmap: combining hazard: %v", err)
	}
	out := sparse.ZerosDense(susc.Shape...)
	for i, s := range susc.Elements {
		if math.IsNaN(s) {
			out.Elements[i] = math.NaN()
			continue
		}
		si, sok := matrixIndex(s)
		ri, rok := matrixIndex(rainClass.Elements[i])
		if sok && rok {
			out.Elements[i] = hazardScores[si][ri]
		}
	}
	return out, nil
}

// matrixIndex converts a class value to a hazard matrix index,
// reporting whether the value has a row or column in the matrix.
func matrixIndex(v float64) (int, bool) {
	if v != math.Trunc(v) || v < 2 || v > 5 {
		return 0, false
	}
	return int(v) - 2, true
}
