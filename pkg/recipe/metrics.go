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

package recipe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recipe parsing metrics
	recipeParseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "encore_recipe_parse_duration_seconds",
			Help:    "Duration of recipe parsing and validation in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		},
		[]string{"format"},
	)

	recipeParseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "encore_recipe_parse_total",
			Help: "Total number of recipes parsed",
		},
		[]string{"format", "outcome"},
	)
)

func observeParse(format Format, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	recipeParseTotal.WithLabelValues(string(format), outcome).Inc()
	recipeParseDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
}
