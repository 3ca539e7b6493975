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

package encore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/encore/pkg/errors"
)

// Build outcomes used as metric labels.
const (
	outcomeSuccess       = "success"
	outcomeConfiguration = "configuration_error"
	outcomeEnvironment   = "environment_error"
	outcomeInteraction   = "interaction_error"
	outcomeInternal      = "internal_error"
)

var (
	buildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "encore_builds_total",
			Help: "Total number of configuration builds",
		},
		[]string{"mode", "target", "outcome"},
	)

	buildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "encore_build_duration_seconds",
			Help:    "Time spent validating and projecting a configuration",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"target"},
	)

	interactionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "encore_interaction_errors_total",
			Help: "Total number of interaction errors by feature involved",
		},
		[]string{"feature"},
	)
)

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.IsInteraction(err):
		return outcomeInteraction
	case errors.IsEnvironment(err):
		return outcomeEnvironment
	case errors.IsConfiguration(err):
		return outcomeConfiguration
	default:
		return outcomeInternal
	}
}

func observeBuild(mode, target string, start time.Time, err error) {
	buildsTotal.WithLabelValues(mode, target, outcome(err)).Inc()
	buildDuration.WithLabelValues(target).Observe(time.Since(start).Seconds())
}

func observeInteractions(err error) {
	batch, ok := err.(*errors.InteractionErrors)
	if !ok {
		return
	}
	for _, f := range batch.Features() {
		interactionErrorsTotal.WithLabelValues(f).Inc()
	}
}
