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

package esbuild

import (
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/projector"
	"github.com/NVIDIA/encore/pkg/validator"
)

var (
	imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".ico", ".svg", ".webp", ".avif"}
	fontExtensions  = []string{".woff", ".woff2", ".ttf", ".eot", ".otf"}
)

// Project builds esbuild options for the store. The notes list every
// configured feature that has no esbuild equivalent.
func Project(store *options.Store, envctx *env.Context, report *validator.Report) (api.BuildOptions, []string, error) {
	if envctx == nil {
		envctx = env.New()
	}
	if err := envctx.Require(); err != nil {
		return api.BuildOptions{}, nil, err
	}
	if store == nil {
		store = options.New()
	}

	in := projector.Input{Store: store, Env: envctx, Report: report}
	rt := envctx.Options()
	prod := envctx.IsProduction()
	var notes []string

	opts := api.BuildOptions{
		EntryPointsAdvanced: entryPoints(store, &notes),
		Outdir:              store.OutputPath,
		Bundle:              true,
		Write:               false,
		Metafile:            true,
		Platform:            api.PlatformBrowser,
		Target:              api.ES2020,
		Format:              api.FormatIIFE,
		Splitting:           store.SplitEntryChunks,
		MinifyWhitespace:    prod,
		MinifyIdentifiers:   prod,
		MinifySyntax:        prod,
		TreeShaking:         api.TreeShakingTrue,
		Sourcemap:           sourceMap(in),
		EntryNames:          "[name]",
		ChunkNames:          "chunks/[name]",
		AssetNames:          "assets/[name]",
		PublicPath:          strings.TrimSuffix(projector.PublicPath(in), "/"),
		Define:              define(in),
		Loader:              loaders(in, &notes),
		LogLevel:            api.LogLevelWarning,
	}
	if store.SplitEntryChunks {
		opts.Format = api.FormatESModule
	}
	if store.Versioning {
		opts.EntryNames = "[name].[hash]"
		opts.ChunkNames = "chunks/[name].[hash]"
		opts.AssetNames = "assets/[name].[hash]"
	}
	if rt.Verbose {
		opts.LogLevel = api.LogLevelInfo
	}
	if filepath.IsAbs(rt.Context) {
		opts.AbsWorkingDir = rt.Context
	}
	if len(store.Aliases) > 0 {
		opts.Alias = maps.Clone(store.Aliases)
	}
	if len(store.Externals) > 0 {
		opts.External = slices.Sorted(maps.Keys(store.Externals))
	}
	if cf, ok := store.TypeScript.Options["configFile"].(string); ok && cf != "" {
		opts.Tsconfig = cf
	}

	switch {
	case store.React.Enabled:
		opts.JSX = api.JSXAutomatic
	case store.Preact.Enabled:
		opts.JSX = api.JSXTransform
		opts.JSXFactory = "h"
		opts.JSXFragment = "Fragment"
	}

	notes = append(notes, unsupported(in)...)

	slog.Debug("projected esbuild options",
		"entries", len(opts.EntryPointsAdvanced),
		"minify", prod,
		"notes", len(notes))

	return opts, notes, nil
}

func entryPoints(s *options.Store, notes *[]string) []api.EntryPoint {
	out := make([]api.EntryPoint, 0, len(s.Entries))
	for _, e := range s.Entries {
		if len(e.Sources) > 1 {
			*notes = append(*notes, fmt.Sprintf(
				"entry %q has %d sources; esbuild bundles one input per entry, only %s is used",
				e.Name, len(e.Sources), e.Sources[0]))
		}
		out = append(out, api.EntryPoint{InputPath: e.Sources[0], OutputPath: e.Name})
	}
	return out
}

func sourceMap(in projector.Input) api.SourceMap {
	switch {
	case !in.Store.SourceMaps:
		return api.SourceMapNone
	case in.Env.IsProduction():
		return api.SourceMapLinked
	default:
		return api.SourceMapInline
	}
}

func define(in projector.Input) map[string]string {
	values := projector.DefineValues(in)
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func loaders(in projector.Input, notes *[]string) map[string]api.Loader {
	s := in.Store
	out := map[string]api.Loader{}

	if !s.ImageRule.Disabled {
		l := api.LoaderFile
		if s.ImageRule.MaxSize > 0 {
			*notes = append(*notes, "esbuild has no size threshold for inlining; images are inlined as data URLs")
			l = api.LoaderDataURL
		}
		for _, ext := range imageExtensions {
			out[ext] = l
		}
	}
	if !s.FontRule.Disabled {
		for _, ext := range fontExtensions {
			out[ext] = api.LoaderFile
		}
	}
	if s.React.Enabled || s.Preact.Enabled {
		out[".js"] = api.LoaderJSX
	}
	return out
}

// unsupported lists configured features esbuild cannot express.
func unsupported(in projector.Input) []string {
	s := in.Store
	var notes []string
	note := func(cond bool, msg string) {
		if cond {
			notes = append(notes, msg)
		}
	}

	note(s.Sass.Enabled, "sass-loader has no esbuild equivalent; .scss entries will fail to load")
	note(s.Less.Enabled, "less-loader has no esbuild equivalent")
	note(s.Stylus.Enabled, "stylus-loader has no esbuild equivalent")
	note(s.PostCSS.Enabled, "postcss-loader has no esbuild equivalent")
	note(s.Vue.Enabled, "vue-loader has no esbuild equivalent")
	note(s.Handlebars.Enabled, "handlebars-loader has no esbuild equivalent")
	note(s.ForkedTypeScriptChecker.Enabled, "esbuild does not type check; run tsc --noEmit separately")
	note(projector.IntegrityEnabled(in), "integrity hashes are not computed by esbuild")
	note(len(s.CopyRules) > 0, "copy rules are ignored; esbuild does not copy static files")
	note(len(s.CacheGroups) > 0, "cache groups are ignored; esbuild splits chunks automatically")
	note(len(s.Plugins) > 0, "webpack plugins are ignored")
	note(len(s.Rules) > 0, "custom module rules are ignored")
	note(len(s.Provide) > 0, "provided variables are ignored; import them explicitly")
	note(s.Cleanup.Enabled, "output cleanup is ignored")
	note(s.Notifications.Enabled, "build notifications are ignored")
	note(in.Env.IsDevServer(), "dev-server settings are ignored; use esbuild serve mode")
	note(s.SingleRuntimeChunkEnabled(), "esbuild has no runtime chunk")
	return notes
}
