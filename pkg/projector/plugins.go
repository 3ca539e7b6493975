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
	"path"
	"strconv"

	"github.com/NVIDIA/encore/pkg/defaults"
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// Priorities of built-in plugins.
const (
	PriorityDefault        = 0
	PriorityManifest       = 10
	PriorityFriendlyErrors = 40
)

// Plugins projects the ordered plugin list.
func Plugins(in Input) ([]webpack.Plugin, error) {
	s := in.Store
	var list OrderedList[webpack.Plugin]
	add := func(name string, opts webpack.Options, priority int) {
		list.Insert(webpack.Plugin{Name: name, Options: opts}, priority)
	}
	names := Filenames(in)

	if !s.CSSExtraction.Disabled {
		add(webpack.PluginMiniCSSExtract, options.Apply(webpack.Options{
			"filename":      names.CSS,
			"chunkFilename": names.CSS,
		}, s.MiniCSSExtractPlugin), PriorityDefault)
	}

	add(webpack.PluginDefine, DefineValues(in), PriorityDefault)

	if len(s.Provide) > 0 {
		provide := make(webpack.Options, len(s.Provide))
		for k, v := range s.Provide {
			provide[k] = v
		}
		add(webpack.PluginProvide, provide, PriorityDefault)
	}

	if s.Cleanup.Enabled {
		opts, err := toggleOptions(webpack.Options{
			"cleanOnceBeforeBuildPatterns": []string{"**/*", "!.gitkeep"},
			"verbose":                      false,
			"dry":                          false,
		}, s.Cleanup)
		if err != nil {
			return nil, err
		}
		add(webpack.PluginClean, opts, PriorityDefault)
	}

	if s.Vue.Enabled {
		add(webpack.PluginVueLoader, nil, PriorityDefault)
	}

	if s.ForkedTypeScriptChecker.Enabled {
		opts, err := toggleOptions(webpack.Options{
			"async": !in.Env.IsProduction(),
			"typescript": map[string]any{
				"diagnosticOptions": map[string]any{"semantic": true, "syntactic": true},
			},
		}, s.ForkedTypeScriptChecker)
		if err != nil {
			return nil, err
		}
		add(webpack.PluginForkTSChecker, opts, PriorityDefault)
	}

	if s.Notifications.Enabled {
		opts, err := toggleOptions(webpack.Options{
			"title":        "encore",
			"alwaysNotify": false,
		}, s.Notifications)
		if err != nil {
			return nil, err
		}
		add(webpack.PluginNotifier, opts, PriorityDefault)
	}

	if len(s.CopyRules) > 0 {
		add(webpack.PluginCopy, webpack.Options{"patterns": copyPatterns(in)}, PriorityDefault)
	}

	add(webpack.PluginEntrypoints, entrypointsOptions(in), PriorityDefault)

	add(webpack.PluginManifest, options.Apply(webpack.Options{
		"fileName":        defaults.ManifestFileName,
		"basePath":        ManifestKeyPrefix(in),
		"publicPath":      PublicPath(in),
		"writeToFileEmit": true,
	}, s.Manifest), PriorityManifest)

	if !in.Env.Options().Verbose {
		add(webpack.PluginFriendlyErrors, webpack.Options{"clearConsole": false}, PriorityFriendlyErrors)
	}

	for _, spec := range s.Plugins {
		plugin, err := options.DeepCopy(spec.Plugin)
		if err != nil {
			return nil, err
		}
		list.Add(plugin, spec.Priority)
	}

	return list.Items(), nil
}

// DefineValues returns the define plugin definitions after the caller's
// override. Values are JavaScript expressions.
func DefineValues(in Input) webpack.Options {
	nodeEnv := webpack.ModeDevelopment
	if in.Env.IsProduction() {
		nodeEnv = webpack.ModeProduction
	}
	return options.Apply(webpack.Options{
		"process.env.NODE_ENV": strconv.Quote(nodeEnv),
	}, in.Store.DefinePlugin)
}

func entrypointsOptions(in Input) webpack.Options {
	opts := webpack.Options{
		"output":      defaults.EntrypointsFileName,
		"entrypoints": true,
		"writeToDisk": true,
		"publicPath":  PublicPath(in),
		"integrity":   false,
	}
	if IntegrityEnabled(in) {
		opts["integrity"] = true
		opts["integrityHashes"] = append([]string(nil), in.Store.Integrity.Algorithms...)
	}
	return opts
}

// copyPatterns projects copy rules. Without a pattern every file directly
// under From is copied, or every file below it with IncludeSubdirectories.
func copyPatterns(in Input) []map[string]any {
	to := "[path][name][ext]"
	if in.Store.Versioning {
		to = "[path][name].[contenthash:" + strconv.Itoa(defaults.HashLength) + "][ext]"
	}

	out := make([]map[string]any, 0, len(in.Store.CopyRules))
	for _, r := range in.Store.CopyRules {
		glob := r.Pattern
		if glob == "" {
			glob = "*"
			if r.IncludeSubdirectories {
				glob = "**/*"
			}
		}
		p := map[string]any{
			"from":             path.Join(r.From, glob),
			"to":               to,
			"noErrorOnMissing": false,
		}
		if r.To != "" {
			p["to"] = r.To
		}
		if r.Context != "" {
			p["context"] = r.Context
		}
		out = append(out, p)
	}
	return out
}
