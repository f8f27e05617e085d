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
	"os"
	"path/filepath"
	"strings"
)

// Read reads the raster at path. The format is chosen by extension:
// .asc and .txt are ESRI ASCII grids, .nc is NetCDF.
func Read(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: %v", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".asc", ".txt":
		r, err := readASCII(f)
		if err != nil {
			return nil, fmt.Errorf("%v: %s", err, path)
		}
		return r, nil
	case ".nc":
		r, err := readNetCDF(f)
		if err != nil {
			return nil, fmt.Errorf("%v: %s", err, path)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("raster: unsupported raster format %q: %s", ext, path)
	}
}

// Write writes r to path, choosing the format by extension as in Read.
// Parent directories are created as needed.
func Write(path string, r *Raster) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("raster: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: %v", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".asc", ".txt":
		err = writeASCII(f, r)
	case ".nc":
		err = writeNetCDF(f, r)
	default:
		err = fmt.Errorf("raster: unsupported raster format %q", ext)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("%v: %s", err, path)
	}
	return f.Close()
}
