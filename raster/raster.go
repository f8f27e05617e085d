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

// Package raster reads, writes, and regrids single-band georeferenced
// rasters. Grids are held as sparse.DenseArray values with shape
// [ny, nx] and row 0 at the northern edge; missing data is NaN in
// memory regardless of the nodata marker used on disk.
package raster

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// DefaultNodata is the nodata marker used when writing rasters whose
// profile doesn't specify one.
const DefaultNodata = -9999.

// A Profile describes the geometry and georeferencing of a raster grid.
type Profile struct {
	// Nx and Ny are the numbers of columns and rows.
	Nx, Ny int

	// Dx and Dy are the cell edge lengths in the units of the
	// spatial projection.
	Dx, Dy float64

	// Bounds is the spatial extent of the grid.
	Bounds *geom.Bounds

	// Proj describes the spatial projection, typically in Proj4 format.
	// Two rasters can only be combined when their Proj strings match.
	Proj string

	// Nodata is the missing-data marker used on disk.
	Nodata float64
}

// A Raster pairs grid data with the profile describing its geometry.
type Raster struct {
	Data    *sparse.DenseArray
	Profile Profile
}

// X returns the x coordinate of the center of column i.
func (p Profile) X(i int) float64 { return p.Bounds.Min.X + (float64(i)+0.5)*p.Dx }

// Y returns the y coordinate of the center of row j, where row 0 is
// the northernmost row.
func (p Profile) Y(j int) float64 { return p.Bounds.Max.Y - (float64(j)+0.5)*p.Dy }

// Aligned reports whether p and o are co-registered: same shape, same
// projection, and extents matching within half a cell.
func (p Profile) Aligned(o Profile) bool {
	if p.Nx != o.Nx || p.Ny != o.Ny || p.Proj != o.Proj {
		return false
	}
	tol := 0.5 * math.Min(math.Min(p.Dx, p.Dy), math.Min(o.Dx, o.Dy))
	return math.Abs(p.Bounds.Min.X-o.Bounds.Min.X) <= tol &&
		math.Abs(p.Bounds.Min.Y-o.Bounds.Min.Y) <= tol &&
		math.Abs(p.Bounds.Max.X-o.Bounds.Max.X) <= tol &&
		math.Abs(p.Bounds.Max.Y-o.Bounds.Max.Y) <= tol
}

// check verifies that the data shape matches the profile.
func (r *Raster) check() error {
	if r.Data == nil || len(r.Data.Shape) != 2 {
		return fmt.Errorf("raster: data must be a 2-dimensional array")
	}
	if r.Data.Shape[0] != r.Profile.Ny || r.Data.Shape[1] != r.Profile.Nx {
		return fmt.Errorf("raster: data shape [%d %d] doesn't match profile %d×%d",
			r.Data.Shape[0], r.Data.Shape[1], r.Profile.Ny, r.Profile.Nx)
	}
	return nil
}
