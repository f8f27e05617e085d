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
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

func TestNetCDF_roundtrip(t *testing.T) {
	data := sparse.ZerosDense(2, 3)
	copy(data.Elements, []float64{1, 2, math.NaN(), 4, 5, 6})
	in := &Raster{
		Data: data,
		Profile: Profile{
			Nx: 3, Ny: 2, Dx: 0.5, Dy: 0.25,
			Bounds: &geom.Bounds{
				Min: geom.Point{X: 12, Y: 37},
				Max: geom.Point{X: 13.5, Y: 37.5},
			},
			Proj:   "+proj=longlat +datum=WGS84",
			Nodata: -9999,
		},
	}

	path := filepath.Join(t.TempDir(), "grid.nc")
	if err := Write(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}

	p := out.Profile
	if p.Nx != in.Profile.Nx || p.Ny != in.Profile.Ny ||
		p.Dx != in.Profile.Dx || p.Dy != in.Profile.Dy {
		t.Errorf("have profile %+v, want %+v", p, in.Profile)
	}
	if *p.Bounds != *in.Profile.Bounds {
		t.Errorf("have bounds %+v, want %+v", p.Bounds, in.Profile.Bounds)
	}
	if p.Proj != in.Profile.Proj {
		t.Errorf("have proj %q, want %q", p.Proj, in.Profile.Proj)
	}
	if p.Nodata != in.Profile.Nodata {
		t.Errorf("have nodata %g, want %g", p.Nodata, in.Profile.Nodata)
	}
	for i, w := range in.Data.Elements {
		have := out.Data.Elements[i]
		if math.IsNaN(w) != math.IsNaN(have) || (!math.IsNaN(w) && have != w) {
			t.Errorf("cell %d: have %g, want %g", i, have, w)
		}
	}
}

func TestReadWrite_unsupportedFormat(t *testing.T) {
	if _, err := Read("grid.tif"); err == nil {
		t.Error("have nil error for unsupported read format")
	}
	r := &Raster{
		Data: sparse.ZerosDense(1, 1),
		Profile: Profile{
			Nx: 1, Ny: 1, Dx: 1, Dy: 1,
			Bounds: &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 1, Y: 1}},
		},
	}
	if err := Write(filepath.Join(t.TempDir(), "grid.tif"), r); err == nil {
		t.Error("have nil error for unsupported write format")
	}
}
