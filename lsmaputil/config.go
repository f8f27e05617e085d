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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/spatialhazard/lsmap"
)

// ModelConfig assembles the model configuration from the viper
// configuration and the user-parameter spreadsheet. Any error here is
// fatal for the whole run; no tile is processed after one.
func ModelConfig(cfg *viper.Viper) (lsmap.Config, error) {
	dataDir := os.ExpandEnv(cfg.GetString("DataDir"))
	params, err := ReadParams(filepath.Join(dataDir, os.ExpandEnv(cfg.GetString("InputVariables"))))
	if err != nil {
		return lsmap.Config{}, err
	}

	thresholds, err := GetFloat64Slice("RainThresholds", cfg)
	if err != nil {
		return lsmap.Config{}, err
	}
	sclasses, err := GetIntSlice("SusceptibilityClasses", cfg)
	if err != nil {
		return lsmap.Config{}, err
	}

	c := lsmap.Config{
		Mode:                  params.Mode,
		ConstantRain:          params.ConstantRain,
		RainMapFile:           params.RainMapName,
		DataDir:               dataDir,
		ResultsDir:            os.ExpandEnv(cfg.GetString("ResultsDir")),
		SusceptibilityPattern: cfg.GetString("SusceptibilityPattern"),
		MeanRainFile:          os.ExpandEnv(cfg.GetString("MeanRainFile")),
		StdRainFile:           os.ExpandEnv(cfg.GetString("StdRainFile")),
		Thresholds:            thresholds,
		SusceptibilityClasses: sclasses,
		ByThresholdValue:      cfg.GetBool("ClassifyByThresholdValue"),
		Parallel:              cfg.GetBool("Parallel"),
		MaxProcesses:          cfg.GetInt("MaxProcesses"),
	}
	if err := c.Valid(); err != nil {
		return lsmap.Config{}, err
	}
	return c, nil
}

// GetFloat64Slice returns the value of a []float64 configuration
// variable, which may arrive as a typed slice from a configuration
// file or as a formatted string from a command-line flag.
func GetFloat64Slice(varName string, cfg *viper.Viper) ([]float64, error) {
	switch v := cfg.Get(varName).(type) {
	case []float64:
		return v, nil
	case []interface{}:
		o := make([]float64, len(v))
		for i, val := range v {
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return nil, fmt.Errorf("lsmap: parsing configuration variable %s: %v", varName, err)
			}
			o[i] = f
		}
		return o, nil
	case string:
		var o []float64
		for _, field := range splitListString(v) {
			f, err := cast.ToFloat64E(field)
			if err != nil {
				return nil, fmt.Errorf("lsmap: parsing configuration variable %s: %v", varName, err)
			}
			o = append(o, f)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("lsmap: configuration variable %s has invalid type %T", varName, v)
	}
}

// GetIntSlice returns the value of a []int configuration variable,
// accepting the same representations as GetFloat64Slice.
func GetIntSlice(varName string, cfg *viper.Viper) ([]int, error) {
	switch v := cfg.Get(varName).(type) {
	case []int:
		return v, nil
	case []interface{}:
		o := make([]int, len(v))
		for i, val := range v {
			n, err := cast.ToIntE(val)
			if err != nil {
				return nil, fmt.Errorf("lsmap: parsing configuration variable %s: %v", varName, err)
			}
			o[i] = n
		}
		return o, nil
	case string:
		var o []int
		for _, field := range splitListString(v) {
			n, err := cast.ToIntE(field)
			if err != nil {
				return nil, fmt.Errorf("lsmap: parsing configuration variable %s: %v", varName, err)
			}
			o = append(o, n)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("lsmap: configuration variable %s has invalid type %T", varName, v)
	}
}

// splitListString splits a flag-formatted list such as "[0.3,2,3.7,5]"
// into its fields.
func splitListString(s string) []string {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	var fields []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
