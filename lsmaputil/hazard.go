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
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"

	"github.com/spatialhazard/lsmap"
	"github.com/spatialhazard/lsmap/internal/metrics"
)

// newLogger builds the run logger from the LogLevel configuration
// variable.
func newLogger(cfg *viper.Viper) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return nil, fmt.Errorf("lsmap: parsing LogLevel: %v", err)
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return logger, nil
}

// Run executes a full batch: it assembles the configuration,
// constructs the hazard model, and processes every susceptibility
// tile. Configuration and parameter errors abort before any tile is
// processed; per-tile failures are aggregated and reported at the
// end.
func Run(cfg *viper.Viper) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	c, err := ModelConfig(cfg)
	if err != nil {
		return err
	}
	model, err := lsmap.NewHazardModel(c, logger)
	if err != nil {
		return err
	}

	if addr := cfg.GetString("MetricsAddr"); addr != "" {
		go func() {
			if err := metrics.Serve(addr); err != nil {
				logger.WithField("addr", addr).Error(err)
			}
		}()
	}

	batch := &lsmap.Batch{
		Computer:     model,
		DataDir:      c.DataDir,
		Pattern:      c.SusceptibilityPattern,
		Parallel:     c.Parallel,
		MaxProcesses: c.MaxProcesses,
		Log:          logger,
	}
	logger.WithFields(logrus.Fields{
		"mode":     c.Mode,
		"parallel": c.Parallel,
	}).Info("starting hazard computation")
	return batch.Run()
}
