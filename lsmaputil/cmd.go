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

// Package lsmaputil holds the command-line interface and
// configuration plumbing for the LSMap landslide hazard model.
package lsmaputil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialhazard/lsmap"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to LSMap.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "DataDir",
			usage: `
              DataDir is the directory holding the susceptibility tiles, the
              normalization statistics rasters, and the parameter spreadsheet.
              The path can include environment variables.`,
			defaultVal: "Data",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "ResultsDir",
			usage: `
              ResultsDir is the root of the output tree. Hazard rasters are
              written under <ResultsDir>/<mode>/Hazard and rain-hazard rasters
              under <ResultsDir>/<mode>/RainHazard. The path can include
              environment variables and is created if it doesn't exist.`,
			defaultVal: "Results",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "InputVariables",
			usage: `
              InputVariables is the name of the user-parameter spreadsheet
              within DataDir. It supplies the rainfall mode ("constant" or
              "map"), the constant 24h accumulation, and the rainfall map
              name. Both .xlsx and .csv files are accepted.`,
			defaultVal: "input_variables.xlsx",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "SusceptibilityPattern",
			usage: `
              SusceptibilityPattern is the glob pattern, relative to DataDir,
              that selects the susceptibility tiles to be processed. The tile
              prefix is the part of the file name before the first underscore.`,
			defaultVal: "*_sus.asc",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "MeanRainFile",
			usage: `
              MeanRainFile is the raster of the historical mean of the maximum
              daily rainfall, within DataDir. It is resampled onto each
              susceptibility tile.`,
			defaultVal: "MeanMaxDayRain.asc",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "StdRainFile",
			usage: `
              StdRainFile is the raster of the historical standard deviation of
              the maximum daily rainfall, within DataDir. It is resampled onto
              each susceptibility tile.`,
			defaultVal: "StdMaxDayRain.txt",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "RainThresholds",
			usage: `
              RainThresholds are the four ascending class limits for
              normalized rainfall.`,
			defaultVal: []float64{0.3, 2.0, 3.7, 5.0},
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "SusceptibilityClasses",
			usage: `
              SusceptibilityClasses lists the valid susceptibility classes.`,
			defaultVal: []int{1, 2, 3, 4, 5},
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "ClassifyByThresholdValue",
			usage: `
              ClassifyByThresholdValue classifies normalized rainfall against
              the configured RainThresholds magnitudes. By default rainfall is
              classified against the threshold ordinal indices 0, 1, 2, 3,
              reproducing the behavior of the GIRI reference implementation.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "Parallel",
			usage: `
              Parallel processes up to MaxProcesses tiles concurrently instead
              of one at a time. The set of output files is the same either way.`,
			shorthand:  "p",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "MaxProcesses",
			usage: `
              MaxProcesses is the maximum number of tiles processed
              concurrently when Parallel is set.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "MetricsAddr",
			usage: `
              MetricsAddr, if set, is an address (for example :9090) on which
              Prometheus metrics are served for the duration of the run.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel sets the logging verbosity: debug, info, warn, or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("LSMAP")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case []float64:
				if option.shorthand == "" {
					set.Float64Slice(option.name, option.defaultVal.([]float64), option.usage)
				} else {
					set.Float64SliceP(option.name, option.shorthand, option.defaultVal.([]float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("lsmap: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "lsmap",
	Short: "A gridded landslide hazard model.",
	Long: `LSMap computes landslide hazard maps from susceptibility tiles and
24-hour rainfall accumulations per the GIRI model.
Use the subcommands specified below to access the model functionality.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'LSMAP_var' where
'var' is the name of the variable to be set. Many configuration variables are
additionally allowed to contain environment variables within them.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of LSMap.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("LSMap v%s\n", lsmap.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd runs the hazard calculation over all susceptibility tiles.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute hazard maps for all susceptibility tiles.",
	Long: `run discovers the susceptibility tiles matching
SusceptibilityPattern in DataDir and computes a rain-hazard raster and a
hazard raster for each of them, using the rainfall input specified in the
InputVariables spreadsheet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(Cfg)
	},
	DisableAutoGenTag: true,
}
