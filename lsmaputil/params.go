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

package lsmaputil

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/tealeg/xlsx"

	"github.com/spatialhazard/lsmap"
)

// Params holds the user-defined parameters from the input-variables
// spreadsheet.
type Params struct {
	// Mode is the rainfall input mode, lsmap.ModeConstant or
	// lsmap.ModeMap.
	Mode string

	// ConstantRain is the 24h rainfall accumulation [mm]. It is only
	// meaningful when Mode is lsmap.ModeConstant.
	ConstantRain float64

	// RainMapName is the rainfall raster file name. It is only
	// meaningful when Mode is lsmap.ModeMap.
	RainMapName string
}

// Spreadsheet keys, matching the original GIRI parameter file.
const (
	keyMode    = "mode"
	keyRain    = "input rain"
	keyRainMap = "input rain map name"
)

// ReadParams reads the user-parameter spreadsheet at path. The file
// holds key/value pairs in its first two columns; .xlsx and .csv
// formats are accepted.
func ReadParams(path string) (Params, error) {
	var kv map[string]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		kv, err = readKeyValueXLSX(path)
	case ".csv":
		kv, err = readKeyValueCSV(path)
	default:
		return Params{}, fmt.Errorf("lsmap: unsupported parameter file format %q: %s", ext, path)
	}
	if err != nil {
		return Params{}, err
	}
	return paramsFromKeyValues(kv, path)
}

func paramsFromKeyValues(kv map[string]string, path string) (Params, error) {
	p := Params{ConstantRain: math.NaN()}
	mode, ok := kv[keyMode]
	if !ok {
		return Params{}, fmt.Errorf("lsmap: parameter file %s is missing %q", path, keyMode)
	}
	p.Mode = strings.TrimSpace(mode)

	switch p.Mode {
	case lsmap.ModeConstant:
		v, ok := kv[keyRain]
		if !ok {
			return Params{}, fmt.Errorf("lsmap: parameter file %s: mode %q requires %q",
				path, p.Mode, keyRain)
		}
		rain, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return Params{}, fmt.Errorf("lsmap: parameter file %s: parsing %q: %v", path, keyRain, err)
		}
		p.ConstantRain = rain
	case lsmap.ModeMap:
		v, ok := kv[keyRainMap]
		if !ok || strings.TrimSpace(v) == "" {
			return Params{}, fmt.Errorf("lsmap: parameter file %s: mode %q requires %q",
				path, p.Mode, keyRainMap)
		}
		p.RainMapName = strings.TrimSpace(v)
	default:
		return Params{}, fmt.Errorf("lsmap: parameter file %s: invalid mode %q; must be %q or %q",
			path, p.Mode, lsmap.ModeConstant, lsmap.ModeMap)
	}
	return p, nil
}

// readKeyValueXLSX reads key/value pairs from the first two columns
// of the first sheet of a Microsoft Excel file.
func readKeyValueXLSX(path string) (map[string]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("lsmap: opening parameter file: %v", err)
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("lsmap: parameter file %s has no sheets", path)
	}
	kv := make(map[string]string)
	for _, row := range f.Sheets[0].Rows {
		if len(row.Cells) < 2 {
			continue
		}
		k := strings.TrimSpace(row.Cells[0].Value)
		if k == "" {
			continue
		}
		kv[k] = row.Cells[1].Value
	}
	return kv, nil
}

// readKeyValueCSV reads key/value pairs from the first two columns of
// a headerless CSV file.
func readKeyValueCSV(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lsmap: opening parameter file: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	kv := make(map[string]string)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lsmap: reading parameter file %s: %v", path, err)
		}
		if len(rec) < 2 {
			continue
		}
		k := strings.TrimSpace(rec[0])
		if k == "" {
			continue
		}
		kv[k] = rec[1]
	}
	return kv, nil
}
