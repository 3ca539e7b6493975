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
	"log/slog"
	"maps"
	"slices"

	"dario.cat/mergo"

	"github.com/NVIDIA/encore/pkg/encore"
	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/webpack"
)

type enabler func(*encore.Builder, ...encore.LoaderOption) *encore.Builder

var loaderEnablers = map[string]enabler{
	"sass":                      (*encore.Builder).EnableSassLoader,
	"less":                      (*encore.Builder).EnableLessLoader,
	"stylus":                    (*encore.Builder).EnableStylusLoader,
	"postcss":                   (*encore.Builder).EnablePostCSSLoader,
	"typescript":                (*encore.Builder).EnableTypeScriptLoader,
	"babel-typescript":          (*encore.Builder).EnableBabelTypeScriptPreset,
	"forked-typescript-checker": (*encore.Builder).EnableForkedTypeScriptTypesChecking,
	"react":                     (*encore.Builder).EnableReactPreset,
	"preact":                    (*encore.Builder).EnablePreactPreset,
	"vue":                       (*encore.Builder).EnableVueLoader,
	"handlebars":                (*encore.Builder).EnableHandlebarsLoader,
}

// Apply validates the recipe and records it on b. Overlays whose mode does
// not match b's configured mode are skipped. It returns the first error
// recorded on b while applying.
func (r *Recipe) Apply(b *encore.Builder) error {
	if err := r.Validate(); err != nil {
		return err
	}

	before := len(b.Errors())
	r.Settings.apply(b)
	for i := range r.Overlays {
		o := &r.Overlays[i]
		mode, _ := env.ParseMode(o.Mode)
		b.WhenFunc(inMode(mode), o.Settings.apply)
	}

	if errs := b.Errors(); len(errs) > before {
		return errs[before]
	}
	slog.Debug("recipe applied", "name", r.Name, "overlays", len(r.Overlays))
	return nil
}

func inMode(mode env.Mode) func(*encore.Builder) bool {
	return func(b *encore.Builder) bool {
		current, err := b.Environment().Mode()
		return err == nil && current == mode
	}
}

func (s *Settings) apply(b *encore.Builder) {
	if s.OutputPath != "" {
		b.SetOutputPath(s.OutputPath)
	}
	if s.PublicPath != "" {
		b.SetPublicPath(s.PublicPath)
	}
	if s.ManifestKeyPrefix != nil {
		b.SetManifestKeyPrefix(*s.ManifestKeyPrefix)
	}
	if len(s.Entries) > 0 {
		b.AddEntries(s.Entries)
	}
	for _, name := range slices.Sorted(maps.Keys(s.StyleEntries)) {
		b.AddStyleEntry(name, s.StyleEntries[name]...)
	}

	if s.Versioning != nil {
		b.EnableVersioning(*s.Versioning)
	}
	if s.SourceMaps != nil {
		b.EnableSourceMaps(*s.SourceMaps)
	}
	if s.SingleRuntimeChunk != nil {
		if *s.SingleRuntimeChunk {
			b.EnableSingleRuntimeChunk()
		} else {
			b.DisableSingleRuntimeChunk()
		}
	}
	if s.SplitEntryChunks {
		b.SplitEntryChunks()
	}
	if s.Integrity != nil {
		b.EnableIntegrityHashes(s.Integrity.Enabled, s.Integrity.Algorithms...)
	}
	if s.DisableCSSExtraction {
		b.DisableCSSExtraction()
	}

	for _, name := range slices.Sorted(maps.Keys(s.Loaders)) {
		loaderEnablers[name](b, encore.WithOptions(s.Loaders[name].Options))
	}

	if len(s.Aliases) > 0 {
		b.AddAliases(s.Aliases)
	}
	if len(s.Externals) > 0 {
		b.AddExternals(s.Externals)
	}
	if len(s.Provide) > 0 {
		b.AutoProvideVariables(s.Provide)
	}
	if len(s.CopyFiles) > 0 {
		b.CopyFiles(s.CopyFiles...)
	}
	for _, name := range slices.Sorted(maps.Keys(s.CacheGroups)) {
		b.AddCacheGroup(name, s.CacheGroups[name])
	}
	for _, p := range s.Plugins {
		plugin := webpack.Plugin{Name: p.Name, Options: p.Options}
		if p.Priority != nil {
			b.AddPlugin(plugin, *p.Priority)
		} else {
			b.AddPlugin(plugin)
		}
	}

	if len(s.Define) > 0 {
		define := webpack.Options(s.Define)
		b.ConfigureDefinePlugin(func(o webpack.Options) webpack.Options {
			if err := mergo.Merge(&o, define, mergo.WithOverride); err != nil {
				slog.Warn("failed to merge recipe definitions", "error", err)
			}
			return o
		})
	}
	if s.DevServer != nil {
		partial := s.DevServer
		b.ConfigureDevServerOptions(func(ds *webpack.DevServer) *webpack.DevServer {
			merged, err := mergeDevServer(ds, partial)
			if err != nil {
				slog.Warn("failed to merge recipe dev server options", "error", err)
				return ds
			}
			return merged
		})
	}

	if s.Cleanup {
		b.CleanupOutputBeforeBuild()
	}
	if s.Notifications {
		b.EnableBuildNotifications(true)
	}
}
