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

package lsmap

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/spatialhazard/lsmap/internal/metrics"
)

// A Batch discovers susceptibility tiles and dispatches a
// TileHazardComputer over each of them, sequentially or with a
// bounded number of concurrent workers. Tiles are independent: one
// tile's failure never stops the others, and no state is shared
// between them.
type Batch struct {
	Computer TileHazardComputer

	// DataDir and Pattern select the susceptibility tiles:
	// filepath.Glob(DataDir/Pattern).
	DataDir string
	Pattern string

	// Parallel selects worker-pool dispatch with up to MaxProcesses
	// tiles in flight; otherwise tiles run one at a time.
	Parallel     bool
	MaxProcesses int

	Log logrus.FieldLogger
}

// A TileError records one tile's failure.
type TileError struct {
	Tile string
	Err  error
}

func (e TileError) Error() string { return fmt.Sprintf("tile %s: %v", e.Tile, e.Err) }

// A BatchError aggregates the failures of a batch in which at least
// one tile could not be processed. Tiles not listed completed
// successfully.
type BatchError struct {
	Failures []TileError
}

func (e *BatchError) Error() string {
	tiles := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		tiles[i] = f.Tile
	}
	return fmt.Sprintf("lsmap: %d of the processed tiles failed: %s",
		len(e.Failures), strings.Join(tiles, ", "))
}

// Run discovers and processes all susceptibility tiles. Every
// discovered tile is attempted exactly once; Run waits for all
// dispatched tiles before returning. If any tiles fail, the returned
// error is a *BatchError listing them.
func (b *Batch) Run() error {
	log := b.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	files, err := filepath.Glob(filepath.Join(b.DataDir, b.Pattern))
	if err != nil {
		return fmt.Errorf("lsmap: finding susceptibility tiles: %v", err)
	}
	sort.Strings(files)
	metrics.BatchTiles.Set(float64(len(files)))
	if len(files) == 0 {
		log.WithFields(logrus.Fields{"dir": b.DataDir, "pattern": b.Pattern}).
			Warn("no susceptibility tiles found")
		return nil
	}

	var failures []TileError
	if !b.Parallel {
		for _, file := range files {
			if err := b.runTile(file); err != nil {
				log.WithField("tile", TilePrefix(file)).Error(err)
				failures = append(failures, TileError{Tile: TilePrefix(file), Err: err})
			}
		}
	} else {
		nworkers := b.MaxProcesses
		if nworkers > len(files) {
			nworkers = len(files)
		}
		jobChan := make(chan string, len(files))
		var mx sync.Mutex
		var wg sync.WaitGroup
		wg.Add(nworkers)
		for w := 0; w < nworkers; w++ {
			go func() {
				defer wg.Done()
				for file := range jobChan {
					if err := b.runTile(file); err != nil {
						log.WithField("tile", TilePrefix(file)).Error(err)
						mx.Lock()
						failures = append(failures, TileError{Tile: TilePrefix(file), Err: err})
						mx.Unlock()
					}
				}
			}()
		}
		for _, file := range files {
			jobChan <- file
		}
		close(jobChan)
		wg.Wait()
		sort.Slice(failures, func(i, j int) bool { return failures[i].Tile < failures[j].Tile })
	}

	if len(failures) > 0 {
		return &BatchError{Failures: failures}
	}
	return nil
}

// runTile processes one tile and records its outcome.
func (b *Batch) runTile(file string) error {
	start := time.Now()
	err := b.Computer.ComputeTile(file, TilePrefix(file))
	metrics.TileDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TilesProcessed.WithLabelValues("failure").Inc()
	} else {
		metrics.TilesProcessed.WithLabelValues("success").Inc()
	}
	return err
}
