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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/webpack"
)

func TestPlugins_Order(t *testing.T) {
	s := storeWithMain(t)
	s.Cleanup.Enabled = true
	s.AddProvide(map[string]string{"$": "jquery"})
	require.NoError(t, s.AddPlugin(webpack.Plugin{Name: "appended"}, nil))
	require.NoError(t, s.AddPlugin(webpack.Plugin{Name: "early"}, options.Priority(-10)))
	require.NoError(t, s.AddPlugin(webpack.Plugin{Name: "after-manifest"}, options.Priority(10)))

	cfg := project(t, s, env.ModeProduction, env.RuntimeOptions{})
	assert.Equal(t, []string{
		"early",
		webpack.PluginMiniCSSExtract,
		webpack.PluginDefine,
		webpack.PluginProvide,
		webpack.PluginClean,
		webpack.PluginEntrypoints,
		webpack.PluginManifest,
		"after-manifest",
		webpack.PluginFriendlyErrors,
		"appended",
	}, cfg.PluginNames())
}

func TestPlugins_Conditional(t *testing.T) {
	tests := []struct {
		name    string
		rt      env.RuntimeOptions
		setup   func(*options.Store)
		present []string
		absent  []string
	}{
		{
			name:    "defaults",
			present: []string{webpack.PluginMiniCSSExtract, webpack.PluginFriendlyErrors},
			absent:  []string{webpack.PluginProvide, webpack.PluginClean, webpack.PluginCopy, webpack.PluginVueLoader},
		},
		{
			name:   "extraction disabled",
			setup:  func(s *options.Store) { s.CSSExtraction.Disabled = true },
			absent: []string{webpack.PluginMiniCSSExtract},
		},
		{
			name:   "verbose drops friendly errors",
			rt:     env.RuntimeOptions{Verbose: true},
			absent: []string{webpack.PluginFriendlyErrors},
		},
		{
			name: "feature plugins",
			setup: func(s *options.Store) {
				s.Vue.Enabled = true
				s.TypeScript.Enabled = true
				s.ForkedTypeScriptChecker.Enabled = true
				s.Notifications.Enabled = true
			},
			present: []string{webpack.PluginVueLoader, webpack.PluginForkTSChecker, webpack.PluginNotifier},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := storeWithMain(t)
			if tt.setup != nil {
				tt.setup(s)
			}
			names := project(t, s, env.ModeProduction, tt.rt).PluginNames()
			for _, p := range tt.present {
				assert.Contains(t, names, p)
			}
			for _, p := range tt.absent {
				assert.NotContains(t, names, p)
			}
		})
	}
}

func TestPlugins_Define(t *testing.T) {
	s := storeWithMain(t)
	s.DefinePlugin = func(o webpack.Options) webpack.Options {
		o["API_URL"] = `"https://api.example.com"`
		return nil
	}
	cfg := project(t, s, env.ModeProduction, env.RuntimeOptions{})
	define, ok := cfg.FindPlugin(webpack.PluginDefine)
	require.True(t, ok)
	assert.Equal(t, `"production"`, define.Options["process.env.NODE_ENV"])
	assert.Equal(t, `"https://api.example.com"`, define.Options["API_URL"])
}

func TestPlugins_Entrypoints(t *testing.T) {
	s := storeWithMain(t)
	s.Versioning = true
	require.NoError(t, s.EnableIntegrityHashes(true, "sha256", "sha512"))

	cfg := project(t, s, env.ModeProduction, env.RuntimeOptions{})
	ep, ok := cfg.FindPlugin(webpack.PluginEntrypoints)
	require.True(t, ok)
	assert.Equal(t, true, ep.Options["integrity"])
	assert.Equal(t, []string{"sha256", "sha512"}, ep.Options["integrityHashes"])

	manifest, ok := cfg.FindPlugin(webpack.PluginManifest)
	require.True(t, ok)
	assert.Equal(t, "build/", manifest.Options["basePath"])
}

func TestPlugins_CopyPatterns(t *testing.T) {
	s := storeWithMain(t)
	s.Versioning = true
	require.NoError(t, s.CopyFiles(
		options.CopyRule{From: "./assets/images"},
		options.CopyRule{From: "./assets/fonts", IncludeSubdirectories: true, To: "fonts/[name][ext]"},
		options.CopyRule{From: "./static", Pattern: "*.txt", Context: "./static"},
	))

	cfg := project(t, s, env.ModeProduction, env.RuntimeOptions{})
	cp, ok := cfg.FindPlugin(webpack.PluginCopy)
	require.True(t, ok)
	patterns, ok := cp.Options["patterns"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, patterns, 3)

	assert.Equal(t, "assets/images/*", patterns[0]["from"])
	assert.Equal(t, "[path][name].[contenthash:8][ext]", patterns[0]["to"])
	assert.Equal(t, "assets/fonts/**/*", patterns[1]["from"])
	assert.Equal(t, "fonts/[name][ext]", patterns[1]["to"])
	assert.Equal(t, "static/*.txt", patterns[2]["from"])
	assert.Equal(t, "./static", patterns[2]["context"])
}

func TestOptimization(t *testing.T) {
	s := storeWithMain(t)
	s.SplitEntryChunks = true
	on := true
	s.SingleRuntimeChunk = &on
	require.NoError(t, s.AddCacheGroup("vendor", options.CacheGroup{NodeModules: []string{"react", "react-dom"}}))
	require.NoError(t, s.AddCacheGroup("app", options.CacheGroup{Test: `[\\/]src[\\/]`, Chunks: "initial"}))

	opt := Optimization(Input{Store: s, Env: configured(t, env.ModeDevelopment, env.RuntimeOptions{})})
	assert.False(t, opt.Minimize)
	assert.Empty(t, opt.Minimizer)
	assert.Equal(t, "single", opt.RuntimeChunk)
	assert.Equal(t, "all", opt.SplitChunks.Chunks)

	require.Len(t, opt.SplitChunks.CacheGroups, 2)
	vendor := opt.SplitChunks.CacheGroups[0]
	assert.Equal(t, "vendor", vendor.Key)
	assert.Equal(t, `[\\/]node_modules[\\/](react|react-dom)[\\/]`, vendor.Test)
	assert.Equal(t, "all", vendor.Chunks)
	assert.Equal(t, "initial", opt.SplitChunks.CacheGroups[1].Chunks)

	raw, err := json.Marshal(opt.SplitChunks)
	require.NoError(t, err)
	assert.Regexp(t, `"cacheGroups":\{"vendor":\{.*\},"app":\{.*\}\}`, string(raw))
}

func TestDevServer(t *testing.T) {
	rt := env.RuntimeOptions{Host: "0.0.0.0", Port: 9001, HTTPS: true, Hot: true}
	s := storeWithMain(t)

	ds := DevServer(Input{Store: s, Env: configured(t, env.ModeDevServer, rt)})
	require.NotNil(t, ds)
	assert.Equal(t, "0.0.0.0", ds.Host)
	assert.Equal(t, 9001, ds.Port)
	assert.Equal(t, "https", ds.Server)
	assert.True(t, ds.Hot)
	assert.False(t, ds.LiveReload)
	assert.Equal(t, "public", ds.Static.Directory)
	assert.Equal(t, "*", ds.Headers["Access-Control-Allow-Origin"])

	assert.Nil(t, DevServer(Input{Store: s, Env: configured(t, env.ModeDevelopment, rt)}))
}

func TestWatch(t *testing.T) {
	s := options.New()
	assert.Nil(t, Watch(Input{Store: s, Env: configured(t, env.ModeDevelopment, env.RuntimeOptions{})}))

	w := Watch(Input{Store: s, Env: configured(t, env.ModeDevelopment, env.RuntimeOptions{Watch: true})})
	require.NotNil(t, w)
	assert.Equal(t, []string{"**/node_modules"}, w.Ignored)
}

func TestResolve(t *testing.T) {
	s := options.New()
	s.React.Enabled = true
	s.Vue.Enabled = true
	s.AddAliases(map[string]string{"@": "./assets"})

	r := Resolve(Input{Store: s, Env: configured(t, env.ModeProduction, env.RuntimeOptions{})})
	assert.Equal(t, []string{".wasm", ".mjs", ".js", ".json", ".jsx", ".vue"}, r.Extensions)
	assert.Equal(t, map[string]string{"@": "./assets"}, r.Alias)

	s.Aliases["~"] = "./lib"
	assert.NotContains(t, r.Alias, "~")
}
