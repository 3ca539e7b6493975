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

package projector

import (
	"log/slog"
	"maps"

	"dario.cat/mergo"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/validator"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// Input is what every sub-projection reads. Report may be nil, in which case
// no feature is treated as disabled.
type Input struct {
	Store  *options.Store
	Env    *env.Context
	Report *validator.Report
}

// Project assembles the complete webpack configuration. It fails only when
// the environment is not configured or an option merge fails; interaction
// checks are the validator's job.
func Project(store *options.Store, envctx *env.Context, report *validator.Report) (*webpack.Config, error) {
	if envctx == nil {
		envctx = env.New()
	}
	if err := envctx.Require(); err != nil {
		return nil, err
	}
	if store == nil {
		store = options.New()
	}
	in := Input{Store: store, Env: envctx, Report: report}

	module, err := Module(in)
	if err != nil {
		return nil, err
	}
	plugins, err := Plugins(in)
	if err != nil {
		return nil, err
	}

	cfg := &webpack.Config{
		Mode:         Mode(in),
		Context:      envctx.Options().Context,
		Entry:        Entries(in),
		Output:       Output(in),
		Module:       module,
		Plugins:      plugins,
		Optimization: Optimization(in),
		Devtool:      Devtool(in),
		DevServer:    DevServer(in),
		Resolve:      Resolve(in),
		WatchOptions: Watch(in),
		Watch:        envctx.Options().Watch,
		Performance:  &webpack.Performance{Hints: false},
		Stats:        Stats(in),
	}
	if len(store.Externals) > 0 {
		cfg.Externals = maps.Clone(store.Externals)
	}

	slog.Debug("projected webpack configuration",
		"mode", cfg.Mode,
		"entries", len(cfg.Entry),
		"rules", len(cfg.Module.Rules),
		"plugins", len(cfg.Plugins),
		"devServer", cfg.DevServer != nil)

	return cfg, nil
}

// Mode returns the webpack mode string.
func Mode(in Input) string {
	if in.Env.IsProduction() {
		return webpack.ModeProduction
	}
	return webpack.ModeDevelopment
}

// Devtool returns false when source maps are off, a separate source map in
// production and an inline one otherwise.
func Devtool(in Input) any {
	switch {
	case !in.Store.SourceMaps:
		return false
	case in.Env.IsProduction():
		return "source-map"
	default:
		return "inline-source-map"
	}
}

// Stats returns the stats preset.
func Stats(in Input) string {
	if in.Env.Options().Verbose {
		return "normal"
	}
	return "minimal"
}

// IntegrityEnabled reports whether integrity hashes survive validation.
func IntegrityEnabled(in Input) bool {
	return in.Store.Integrity.Enabled && !in.Report.IsDisabled(validator.FeatureIntegrityHashes)
}

// merge overlays user options onto defaults. The defaults map is modified.
func merge(dst, src webpack.Options) (webpack.Options, error) {
	if dst == nil {
		dst = webpack.Options{}
	}
	if len(src) == 0 {
		return dst, nil
	}
	if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to merge options into defaults", err)
	}
	return dst, nil
}

// toggleOptions merges a copy of a toggle's options into defaults and runs
// its override. Nothing reachable from the result belongs to the store.
func toggleOptions(defaults webpack.Options, t options.Toggle) (webpack.Options, error) {
	src, err := options.DeepCopy(t.Options)
	if err != nil {
		return nil, err
	}
	merged, err := merge(defaults, src)
	if err != nil {
		return nil, err
	}
	return options.Apply(merged, t.Override), nil
}
