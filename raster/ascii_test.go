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
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

const testGrid = `ncols 3
nrows 2
xllcorner 12.0
yllcorner 37.0
cellsize 0.5
NODATA_value -9999
1 2 3
4 -9999 6
`

func TestReadASCII(t *testing.T) {
	r, err := readASCII(strings.NewReader(testGrid))
	if err != nil {
		t.Fatal(err)
	}
	p := r.Profile
	if p.Nx != 3 || p.Ny != 2 {
		t.Errorf("have %d×%d, want 2×3", p.Ny, p.Nx)
	}
	if p.Dx != 0.5 || p.Dy != 0.5 {
		t.Errorf("have cell size %g×%g, want 0.5×0.5", p.Dx, p.Dy)
	}
	wantBounds := &geom.Bounds{
		Min: geom.Point{X: 12, Y: 37},
		Max: geom.Point{X: 13.5, Y: 38},
	}
	if *p.Bounds != *wantBounds {
		t.Errorf("have bounds %+v, want %+v", p.Bounds, wantBounds)
	}
	if p.Nodata != -9999 {
		t.Errorf("have nodata %g, want -9999", p.Nodata)
	}
	want := []float64{1, 2, 3, 4, math.NaN(), 6}
	for i, w := range want {
		have := r.Data.Elements[i]
		if math.IsNaN(w) {
			if !math.IsNaN(have) {
				t.Errorf("cell %d: have %g, want NaN", i, have)
			}
		} else if have != w {
			t.Errorf("cell %d: have %g, want %g", i, have, w)
		}
	}
	// Row 0 is the northern row.
	if y0, y1 := p.Y(0), p.Y(1); y0 != 37.75 || y1 != 37.25 {
		t.Errorf("have row centers %g, %g, want 37.75, 37.25", y0, y1)
	}
}

// Grids with values spread over irregular lines, as some writers emit
// them, must parse the same as one-row-per-line grids.
func TestReadASCII_wrappedRows(t *testing.T) {
	wrapped := `ncols 3
nrows 2
xllcorner 12.0
yllcorner 37.0
cellsize 0.5
1 2 3 4
5 6
`
	r, err := readASCII(strings.NewReader(wrapped))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3, 4, 5, 6}
	for i, w := range want {
		if have := r.Data.Elements[i]; have != w {
			t.Errorf("cell %d: have %g, want %g", i, have, w)
		}
	}
	if r.Profile.Nodata != DefaultNodata {
		t.Errorf("have nodata %g, want default %g", r.Profile.Nodata, DefaultNodata)
	}
}

func TestReadASCII_errors(t *testing.T) {
	cases := []struct {
		name, grid string
	}{
		{"missing header", "ncols 2\nnrows 2\ncellsize 1\n1 2 3 4\n"},
		{"wrong value count", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2 3\n"},
		{"non-numeric value", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nx y z\n"},
		{"not a grid", "not a raster\n"},
	}
	for _, c := range cases {
		if _, err := readASCII(strings.NewReader(c.grid)); err == nil {
			t.Errorf("%s: have nil error", c.name)
		}
	}
}

func TestASCII_roundtrip(t *testing.T) {
	data := sparse.ZerosDense(2, 2)
	copy(data.Elements, []float64{1.5, math.NaN(), -3, 0})
	in := &Raster{
		Data: data,
		Profile: Profile{
			Nx: 2, Ny: 2, Dx: 0.25, Dy: 0.25,
			Bounds: &geom.Bounds{Min: geom.Point{X: -1, Y: 40}, Max: geom.Point{X: -0.5, Y: 40.5}},
			Nodata: -9999,
		},
	}
	var buf bytes.Buffer
	if err := writeASCII(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := readASCII(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.Profile.Nx != in.Profile.Nx || out.Profile.Ny != in.Profile.Ny ||
		out.Profile.Dx != in.Profile.Dx || *out.Profile.Bounds != *in.Profile.Bounds {
		t.Errorf("have profile %+v, want %+v", out.Profile, in.Profile)
	}
	for i, w := range in.Data.Elements {
		have := out.Data.Elements[i]
		if math.IsNaN(w) != math.IsNaN(have) || (!math.IsNaN(w) && have != w) {
			t.Errorf("cell %d: have %g, want %g", i, have, w)
		}
	}
}

func TestWriteASCII_rectangularCells(t *testing.T) {
	r := &Raster{
		Data: sparse.ZerosDense(1, 1),
		Profile: Profile{
			Nx: 1, Ny: 1, Dx: 1, Dy: 2,
			Bounds: &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 1, Y: 2}},
		},
	}
	if err := writeASCII(&bytes.Buffer{}, r); err == nil {
		t.Error("have nil error for rectangular cells")
	}
}
