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
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// ncVar is the variable name used for grid data in NetCDF rasters.
const ncVar = "data"

// readNetCDF reads a single-band raster from a NetCDF file. The grid
// is the 2-dimensional variable "data" (or the first 2-dimensional
// variable if "data" is absent), georeferenced by the attributes
// xllcorner, yllcorner, dx, dy, proj, and nodata_value.
func readNetCDF(f *os.File) (*Raster, error) {
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("raster: opening netcdf file: %v", err)
	}

	v := ncVar
	if len(ff.Header.Lengths(v)) != 2 {
		v = ""
		for _, name := range ff.Header.Variables() {
			if len(ff.Header.Lengths(name)) == 2 {
				v = name
				break
			}
		}
		if v == "" {
			return nil, fmt.Errorf("raster: netcdf file has no 2-dimensional variable")
		}
	}
	dims := ff.Header.Lengths(v)
	ny, nx := dims[0], dims[1]

	r := ff.Reader(v, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("raster: reading netcdf variable %s: %v", v, err)
	}
	data := sparse.ZerosDense(ny, nx)
	switch vals := buf.(type) {
	case []float64:
		copy(data.Elements, vals)
	case []float32:
		for i, val := range vals {
			data.Elements[i] = float64(val)
		}
	default:
		return nil, fmt.Errorf("raster: netcdf variable %s has unsupported type %T", v, buf)
	}

	attr := func(name string) (float64, error) {
		a := ff.Header.GetAttribute(v, name)
		if a == nil {
			return 0, fmt.Errorf("raster: netcdf variable %s is missing attribute %s", v, name)
		}
		vals, ok := a.([]float64)
		if !ok || len(vals) == 0 {
			return 0, fmt.Errorf("raster: netcdf attribute %s has unexpected type %T", name, a)
		}
		return vals[0], nil
	}
	xll, err := attr("xllcorner")
	if err != nil {
		return nil, err
	}
	yll, err := attr("yllcorner")
	if err != nil {
		return nil, err
	}
	dx, err := attr("dx")
	if err != nil {
		return nil, err
	}
	dy, err := attr("dy")
	if err != nil {
		return nil, err
	}
	nodata, err := attr("nodata_value")
	if err != nil {
		nodata = DefaultNodata
	}
	proj, _ := ff.Header.GetAttribute(v, "proj").(string)

	for i, val := range data.Elements {
		if val == nodata {
			data.Elements[i] = math.NaN()
		}
	}

	return &Raster{
		Data: data,
		Profile: Profile{
			Nx: nx, Ny: ny,
			Dx: dx, Dy: dy,
			Bounds: &geom.Bounds{
				Min: geom.Point{X: xll, Y: yll},
				Max: geom.Point{X: xll + float64(nx)*dx, Y: yll + float64(ny)*dy},
			},
			Proj:   proj,
			Nodata: nodata,
		},
	}, nil
}

// writeNetCDF writes r to a NetCDF file, preserving the profile in
// variable attributes so that a read round-trips it unchanged.
func writeNetCDF(f *os.File, r *Raster) error {
	if err := r.check(); err != nil {
		return err
	}
	p := r.Profile
	nodata := p.Nodata
	if nodata == 0 || math.IsNaN(nodata) {
		nodata = DefaultNodata
	}

	h := cdf.NewHeader([]string{"y", "x"}, []int{p.Ny, p.Nx})
	h.AddVariable(ncVar, []string{"y", "x"}, []float64{0})
	h.AddAttribute(ncVar, "xllcorner", []float64{p.Bounds.Min.X})
	h.AddAttribute(ncVar, "yllcorner", []float64{p.Bounds.Min.Y})
	h.AddAttribute(ncVar, "dx", []float64{p.Dx})
	h.AddAttribute(ncVar, "dy", []float64{p.Dy})
	h.AddAttribute(ncVar, "nodata_value", []float64{nodata})
	if p.Proj != "" {
		h.AddAttribute(ncVar, "proj", p.Proj)
	}
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("raster: creating netcdf header: %v", err)
	}

	ff, err := cdf.Create(f, h)
	if err != nil {
		return fmt.Errorf("raster: creating netcdf file: %v", err)
	}
	vals := make([]float64, len(r.Data.Elements))
	for i, val := range r.Data.Elements {
		if math.IsNaN(val) {
			val = nodata
		}
		vals[i] = val
	}
	w := ff.Writer(ncVar, []int{0, 0}, []int{p.Ny, p.Nx})
	if _, err := w.Write(vals); err != nil {
		return fmt.Errorf("raster: writing netcdf variable %s: %v", ncVar, err)
	}
	return nil
}
