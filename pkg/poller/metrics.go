// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package poller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Poll loop metrics
	pollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kje_poll_duration_seconds",
			Help:    "Time taken by one poll tick against the Kubernetes API",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
	)

	pollTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kje_poll_total",
			Help: "Total number of poll ticks",
		},
		[]string{"status"}, // success or error
	)

	jobsObserved = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kje_jobs_observed",
			Help: "Number of matching jobs in the last successful poll",
		},
	)

	jobsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kje_jobs_tracked",
			Help: "Number of finished jobs retained since process start",
		},
	)
)
