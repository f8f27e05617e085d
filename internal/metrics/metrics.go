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

// Package metrics holds Prometheus instrumentation for batch runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TilesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lsmap_tiles_processed_total",
			Help: "Susceptibility tiles processed, by outcome",
		},
		[]string{"outcome"},
	)

	TileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lsmap_tile_duration_seconds",
			Help:    "Wall time spent computing one tile",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	BatchTiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lsmap_batch_tiles",
			Help: "Number of tiles discovered for the current batch",
		},
	)
)

// Serve exposes the /metrics endpoint on addr. It blocks, so it is
// normally run in its own goroutine for the duration of a batch.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
