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
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/options"
)

func configured(t *testing.T, mode env.Mode, rt env.RuntimeOptions) *env.Context {
	t.Helper()
	c := env.New()
	require.NoError(t, c.Configure(mode, rt))
	return c
}

func TestProject_Production(t *testing.T) {
	s := options.New()
	require.NoError(t, s.AddEntry("main", "./assets/app.js"))
	require.NoError(t, s.AddStyleEntry("theme", "./assets/theme.css"))
	s.Versioning = true
	s.SourceMaps = true
	s.AddExternals(map[string]string{"jquery": "jQuery", "lodash": "_"})

	opts, notes, err := Project(s, configured(t, env.ModeProduction, env.RuntimeOptions{Context: "/srv/app"}), nil)
	require.NoError(t, err)

	assert.Equal(t, []api.EntryPoint{
		{InputPath: "./assets/app.js", OutputPath: "main"},
		{InputPath: "./assets/theme.css", OutputPath: "theme"},
	}, opts.EntryPointsAdvanced)
	assert.Equal(t, "public/build", opts.Outdir)
	assert.True(t, opts.Bundle)
	assert.False(t, opts.Write)
	assert.True(t, opts.MinifyWhitespace)
	assert.True(t, opts.MinifyIdentifiers)
	assert.Equal(t, api.SourceMapLinked, opts.Sourcemap)
	assert.Equal(t, "[name].[hash]", opts.EntryNames)
	assert.Equal(t, "/build", opts.PublicPath)
	assert.Equal(t, "/srv/app", opts.AbsWorkingDir)
	assert.Equal(t, []string{"jquery", "lodash"}, opts.External)
	assert.Equal(t, `"production"`, opts.Define["process.env.NODE_ENV"])
	assert.Equal(t, api.LoaderFile, opts.Loader[".png"])
	assert.Empty(t, notes)
}

func TestProject_Development(t *testing.T) {
	s := options.New()
	require.NoError(t, s.AddEntry("main", "./a.js", "./b.js"))
	s.SourceMaps = true
	s.SplitEntryChunks = true
	s.Preact.Enabled = true

	opts, notes, err := Project(s, configured(t, env.ModeDevelopment, env.RuntimeOptions{}), nil)
	require.NoError(t, err)

	assert.False(t, opts.MinifySyntax)
	assert.Equal(t, api.SourceMapInline, opts.Sourcemap)
	assert.Equal(t, api.FormatESModule, opts.Format)
	assert.True(t, opts.Splitting)
	assert.Equal(t, api.JSXTransform, opts.JSX)
	assert.Equal(t, "h", opts.JSXFactory)
	assert.Equal(t, "[name]", opts.EntryNames)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], `entry "main" has 2 sources`)
}

func TestProject_UnsupportedFeaturesAreNoted(t *testing.T) {
	s := options.New()
	require.NoError(t, s.AddEntry("main", "./a.js"))
	s.Sass.Enabled = true
	s.Vue.Enabled = true
	require.NoError(t, s.CopyFiles(options.CopyRule{From: "./images"}))

	_, notes, err := Project(s, configured(t, env.ModeProduction, env.RuntimeOptions{}), nil)
	require.NoError(t, err)
	assert.Len(t, notes, 3)
}

func TestProject_EnvironmentNotConfigured(t *testing.T) {
	_, _, err := Project(options.New(), env.New(), nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeEnvironmentNotConfigured))
}

func TestSummarize(t *testing.T) {
	s := options.New()
	require.NoError(t, s.AddEntry("main", "./assets/app.jsx"))
	s.SourceMaps = true
	s.React.Enabled = true

	opts, _, err := Project(s, configured(t, env.ModeProduction, env.RuntimeOptions{}), nil)
	require.NoError(t, err)

	sum := Summarize(opts)
	assert.Equal(t, map[string]string{"main": "./assets/app.jsx"}, sum.EntryPoints)
	assert.Equal(t, "iife", sum.Format)
	assert.Equal(t, "browser", sum.Platform)
	assert.Equal(t, "es2020", sum.Target)
	assert.True(t, sum.Minify)
	assert.Equal(t, "linked", sum.Sourcemap)
	assert.Equal(t, "automatic", sum.JSX)
	assert.Equal(t, "file", sum.Loader[".png"])
}
