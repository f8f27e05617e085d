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

package raster

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Regrid resamples src onto the grid geometry described by target
// using bilinear interpolation of the four source cells surrounding
// each target cell center. Target cells centered outside the source
// extent, and cells with a missing source neighbor, are NaN. Both
// grids must use the same spatial projection; Regrid does not
// reproject.
func Regrid(src *Raster, target Profile) (*sparse.DenseArray, error) {
	if err := src.check(); err != nil {
		return nil, err
	}
	if src.Profile.Proj != target.Proj {
		return nil, fmt.Errorf("raster: regridding between projections is not supported: %q != %q",
			src.Profile.Proj, target.Proj)
	}
	sp := src.Profile
	out := sparse.ZerosDense(target.Ny, target.Nx)
	for j := 0; j < target.Ny; j++ {
		y := target.Y(j)
		for i := 0; i < target.Nx; i++ {
			x := target.X(i)
			out.Set(bilinear(src.Data, sp, x, y), j, i)
		}
	}
	return out, nil
}

// bilinear interpolates the value at (x, y) from the four surrounding
// cell centers of data, clamping at the grid edges.
func bilinear(data *sparse.DenseArray, p Profile, x, y float64) float64 {
	if x < p.Bounds.Min.X || x > p.Bounds.Max.X || y < p.Bounds.Min.Y || y > p.Bounds.Max.Y {
		return math.NaN()
	}
	// Fractional position in cell-center coordinates.
	fi := (x-p.Bounds.Min.X)/p.Dx - 0.5
	fj := (p.Bounds.Max.Y-y)/p.Dy - 0.5

	i0 := clamp(int(math.Floor(fi)), 0, p.Nx-1)
	j0 := clamp(int(math.Floor(fj)), 0, p.Ny-1)
	i1 := clamp(i0+1, 0, p.Nx-1)
	j1 := clamp(j0+1, 0, p.Ny-1)

	ti := clampF(fi-float64(i0), 0, 1)
	tj := clampF(fj-float64(j0), 0, 1)

	v00 := data.Get(j0, i0)
	v01 := data.Get(j0, i1)
	v10 := data.Get(j1, i0)
	v11 := data.Get(j1, i1)
	return (1-tj)*((1-ti)*v00+ti*v01) + tj*((1-ti)*v10+ti*v11)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
