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
	"log/slog"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/uuid"

	"github.com/NVIDIA/encore/pkg/esbuild"
	"github.com/NVIDIA/encore/pkg/projector"
	"github.com/NVIDIA/encore/pkg/validator"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// Targets.
const (
	TargetWebpack = "webpack"
	TargetESBuild = "esbuild"
)

// SupportedTargets lists the bundlers a builder can project to.
func SupportedTargets() []string {
	return []string{TargetWebpack, TargetESBuild}
}

// Validate checks recorded errors, the environment and feature interactions
// without projecting. The report is returned whenever validation ran, even
// if it carries errors.
func (b *Builder) Validate() (*validator.Report, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	if err := b.env.Require(); err != nil {
		return nil, err
	}
	report := b.validator.Validate(b.store, b.env)
	return report, report.Err()
}

// Build validates the recorded options and projects them into a webpack
// configuration. On success the store returns to its defaults.
func (b *Builder) Build() (*webpack.Config, error) {
	cfg, _, err := b.buildWebpack()
	return cfg, err
}

// BuildESBuild is Build for the esbuild target. The notes name configured
// features esbuild cannot express.
func (b *Builder) BuildESBuild() (api.BuildOptions, []string, error) {
	opts, notes, _, err := b.buildESBuild()
	return opts, notes, err
}

func (b *Builder) buildWebpack() (*webpack.Config, *validator.Report, error) {
	start := time.Now()
	mode := b.modeLabel()
	id := uuid.NewString()

	report, err := b.prepare(id)
	if err != nil {
		observeBuild(mode, TargetWebpack, start, err)
		return nil, report, err
	}

	cfg, err := projector.Project(b.store, b.env, report)
	observeBuild(mode, TargetWebpack, start, err)
	if err != nil {
		return nil, report, err
	}

	b.store.Reset()
	slog.Debug("build complete",
		"build_id", id,
		"target", TargetWebpack,
		"mode", mode,
		"entries", len(cfg.Entry),
		"duration", time.Since(start))
	return cfg, report, nil
}

func (b *Builder) buildESBuild() (api.BuildOptions, []string, *validator.Report, error) {
	start := time.Now()
	mode := b.modeLabel()
	id := uuid.NewString()

	report, err := b.prepare(id)
	if err != nil {
		observeBuild(mode, TargetESBuild, start, err)
		return api.BuildOptions{}, nil, report, err
	}

	opts, notes, err := esbuild.Project(b.store, b.env, report)
	observeBuild(mode, TargetESBuild, start, err)
	if err != nil {
		return api.BuildOptions{}, nil, report, err
	}

	for _, n := range notes {
		slog.Warn(n, "build_id", id, "target", TargetESBuild)
	}
	b.store.Reset()
	slog.Debug("build complete",
		"build_id", id,
		"target", TargetESBuild,
		"mode", mode,
		"entries", len(opts.EntryPointsAdvanced),
		"duration", time.Since(start))
	return opts, notes, report, nil
}

// prepare runs every pre-projection check and logs warnings.
func (b *Builder) prepare(id string) (*validator.Report, error) {
	report, err := b.Validate()
	if report == nil {
		return nil, err
	}
	for _, w := range report.Warnings {
		slog.Warn(w.Message, "build_id", id, "rule", w.Rule, "features", w.Features)
	}
	if err != nil {
		observeInteractions(err)
		slog.Debug("build rejected", "build_id", id, "errors", len(report.Errors))
		return report, err
	}
	return report, nil
}

func (b *Builder) modeLabel() string {
	mode, err := b.env.Mode()
	if err != nil {
		return "unconfigured"
	}
	return mode.String()
}
