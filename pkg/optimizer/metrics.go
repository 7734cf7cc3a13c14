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

package optimizer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	optimizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ro_optimize_duration_seconds",
			Help:    "Duration of optimize requests in seconds, catalog load included",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	// Outcomes by error code; "OK" for success.
	optimizeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ro_optimize_requests_total",
			Help: "Total number of optimize requests by outcome",
		},
		[]string{"outcome"},
	)

	optimizeCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ro_optimize_candidates",
			Help:    "Number of catalog records surviving the constraint filter",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

const outcomeOK = "OK"
