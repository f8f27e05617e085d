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
	"math"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// testProfile returns an ny×nx grid of unit cells anchored at (x0, y0).
func testProfile(nx, ny int, x0, y0 float64) Profile {
	return Profile{
		Nx: nx, Ny: ny, Dx: 1, Dy: 1,
		Bounds: &geom.Bounds{
			Min: geom.Point{X: x0, Y: y0},
			Max: geom.Point{X: x0 + float64(nx), Y: y0 + float64(ny)},
		},
	}
}

// planeRaster fills a grid with the plane f(x, y) = x + 2y evaluated
// at the cell centers. Bilinear interpolation reproduces a plane
// exactly, so regridded values can be checked against f directly.
func planeRaster(p Profile) *Raster {
	data := sparse.ZerosDense(p.Ny, p.Nx)
	for j := 0; j < p.Ny; j++ {
		for i := 0; i < p.Nx; i++ {
			data.Set(p.X(i)+2*p.Y(j), j, i)
		}
	}
	return &Raster{Data: data, Profile: p}
}

func TestRegrid_identity(t *testing.T) {
	p := testProfile(3, 3, 0, 0)
	src := planeRaster(p)
	out, err := Regrid(src, p)
	if err != nil {
		t.Fatal(err)
	}
	for i, w := range src.Data.Elements {
		if have := out.Elements[i]; math.Abs(have-w) > 1e-12 {
			t.Errorf("cell %d: have %g, want %g", i, have, w)
		}
	}
}

func TestRegrid_bilinear(t *testing.T) {
	src := planeRaster(testProfile(4, 4, 0, 0))
	// Half-cell offset target interior to the source: every center
	// interpolates between four source cells.
	target := Profile{
		Nx: 2, Ny: 2, Dx: 1, Dy: 1,
		Bounds: &geom.Bounds{
			Min: geom.Point{X: 1.5, Y: 1.5},
			Max: geom.Point{X: 3.5, Y: 3.5},
		},
	}
	out, err := Regrid(src, target)
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < target.Ny; j++ {
		for i := 0; i < target.Nx; i++ {
			want := target.X(i) + 2*target.Y(j)
			if have := out.Get(j, i); math.Abs(have-want) > 1e-12 {
				t.Errorf("cell (%d,%d): have %g, want %g", j, i, have, want)
			}
		}
	}
}

func TestRegrid_outsideExtent(t *testing.T) {
	src := planeRaster(testProfile(2, 2, 0, 0))
	out, err := Regrid(src, testProfile(4, 4, -1, -1))
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			inside := i >= 1 && i <= 2 && j >= 1 && j <= 2
			if have := out.Get(j, i); inside == math.IsNaN(have) {
				t.Errorf("cell (%d,%d): have %g, inside=%v", j, i, have, inside)
			}
		}
	}
}

func TestRegrid_missingNeighbor(t *testing.T) {
	p := testProfile(2, 2, 0, 0)
	data := sparse.ZerosDense(2, 2)
	copy(data.Elements, []float64{math.NaN(), 2, 3, 4})
	src := &Raster{Data: data, Profile: p}

	// A target centered between all four source cells.
	target := testProfile(1, 1, 0.5, 0.5)
	out, err := Regrid(src, target)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(out.Get(0, 0)) {
		t.Errorf("have %g, want NaN when a source neighbor is missing", out.Get(0, 0))
	}
}

func TestRegrid_projMismatch(t *testing.T) {
	p := testProfile(2, 2, 0, 0)
	src := planeRaster(p)
	src.Profile.Proj = "+proj=longlat"
	target := p
	target.Proj = "+proj=merc"
	if _, err := Regrid(src, target); err == nil {
		t.Error("have nil error for mismatched projections")
	}
}
