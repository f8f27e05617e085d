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
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// readASCII reads an ESRI ASCII grid. The header keys ncols, nrows,
// xllcorner, yllcorner, and cellsize are required; nodata_value is
// optional and defaults to DefaultNodata. Values equal to the nodata
// marker are returned as NaN.
func readASCII(r io.Reader) (*Raster, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	hdr := make(map[string]float64)
	var words []string
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 2 {
			if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
				if _, isNum := parseFloatStrict(fields[0]); !isNum {
					hdr[strings.ToLower(fields[0])] = v
					continue
				}
			}
		}
		words = append(words, fields...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("raster: reading ascii grid: %v", err)
	}

	for _, k := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if _, ok := hdr[k]; !ok {
			return nil, fmt.Errorf("raster: ascii grid header is missing %s", k)
		}
	}
	nodata, ok := hdr["nodata_value"]
	if !ok {
		nodata = DefaultNodata
	}

	nx, ny := int(hdr["ncols"]), int(hdr["nrows"])
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("raster: invalid ascii grid dimensions %d×%d", ny, nx)
	}
	if len(words) != nx*ny {
		return nil, fmt.Errorf("raster: ascii grid has %d values, want %d", len(words), nx*ny)
	}

	data := sparse.ZerosDense(ny, nx)
	for i, w := range words {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, fmt.Errorf("raster: parsing ascii grid value %q: %v", w, err)
		}
		if v == nodata {
			v = math.NaN()
		}
		data.Elements[i] = v
	}

	dx := hdr["cellsize"]
	xll, yll := hdr["xllcorner"], hdr["yllcorner"]
	return &Raster{
		Data: data,
		Profile: Profile{
			Nx: nx, Ny: ny,
			Dx: dx, Dy: dx,
			Bounds: &geom.Bounds{
				Min: geom.Point{X: xll, Y: yll},
				Max: geom.Point{X: xll + float64(nx)*dx, Y: yll + float64(ny)*dx},
			},
			Nodata: nodata,
		},
	}, nil
}

// writeASCII writes an ESRI ASCII grid. The format only supports
// square cells, so Dx and Dy must match. NaN cells are written as the
// profile's nodata marker.
func writeASCII(w io.Writer, r *Raster) error {
	if err := r.check(); err != nil {
		return err
	}
	p := r.Profile
	if math.Abs(p.Dx-p.Dy) > 1e-9*math.Max(p.Dx, p.Dy) {
		return fmt.Errorf("raster: ascii grids require square cells; have dx=%g dy=%g", p.Dx, p.Dy)
	}
	nodata := p.Nodata
	if nodata == 0 || math.IsNaN(nodata) {
		nodata = DefaultNodata
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", p.Nx)
	fmt.Fprintf(bw, "nrows %d\n", p.Ny)
	fmt.Fprintf(bw, "xllcorner %g\n", p.Bounds.Min.X)
	fmt.Fprintf(bw, "yllcorner %g\n", p.Bounds.Min.Y)
	fmt.Fprintf(bw, "cellsize %g\n", p.Dx)
	fmt.Fprintf(bw, "NODATA_value %g\n", nodata)
	for j := 0; j < p.Ny; j++ {
		for i := 0; i < p.Nx; i++ {
			if i > 0 {
				bw.WriteByte(' ')
			}
			v := r.Data.Get(j, i)
			if math.IsNaN(v) {
				v = nodata
			}
			bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// parseFloatStrict reports whether s parses as a number, so header
// lines can be told apart from short data rows.
func parseFloatStrict(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
