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
	"regexp"
	"strings"

	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// Optimization projects minimizers, the runtime chunk and split chunks.
func Optimization(in Input) *webpack.Optimization {
	s := in.Store
	opt := &webpack.Optimization{
		Minimize:    in.Env.IsProduction(),
		SplitChunks: SplitChunks(in),
	}

	if in.Env.IsProduction() {
		opt.Minimizer = []webpack.Plugin{
			{
				Name: webpack.PluginTerser,
				Options: options.Apply(webpack.Options{
					"parallel":        true,
					"extractComments": false,
					"terserOptions":   map[string]any{"format": map[string]any{"comments": false}},
				}, s.Terser),
			},
			{
				Name: webpack.PluginCSSMinimizer,
				Options: options.Apply(webpack.Options{
					"minimizerOptions": map[string]any{"preset": []any{"default"}},
				}, s.CSSMinimizer),
			},
		}
	}

	if s.SingleRuntimeChunkEnabled() {
		opt.RuntimeChunk = "single"
	}
	return opt
}

// SplitChunks projects the split chunks section. Entry chunks are split only
// when SplitEntryChunks is set; cache groups keep insertion order.
func SplitChunks(in Input) *webpack.SplitChunks {
	sc := &webpack.SplitChunks{Chunks: "async"}
	if in.Store.SplitEntryChunks {
		sc.Chunks = "all"
	}
	for _, cg := range in.Store.CacheGroups {
		sc.CacheGroups = append(sc.CacheGroups, cacheGroup(cg))
	}
	return options.Apply(sc, in.Store.SplitChunks)
}

func cacheGroup(cg options.CacheGroup) webpack.CacheGroup {
	out := webpack.CacheGroup{
		Key:                cg.Name,
		Name:               cg.Name,
		Test:               cg.Test,
		Chunks:             cg.Chunks,
		Enforce:            cg.Enforce,
		Priority:           cg.Priority,
		ReuseExistingChunk: cg.ReuseExistingChunk,
		MinSize:            cg.MinSize,
	}
	if out.Chunks == "" {
		out.Chunks = "all"
	}
	if len(cg.NodeModules) > 0 {
		quoted := make([]string, len(cg.NodeModules))
		for i, m := range cg.NodeModules {
			quoted[i] = regexp.QuoteMeta(m)
		}
		out.Test = nodeModules + "(" + strings.Join(quoted, "|") + `)[\\/]`
	}
	return out
}
