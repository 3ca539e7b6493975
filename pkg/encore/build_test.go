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
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/validator"
	"github.com/NVIDIA/encore/pkg/webpack"
)

func TestBuild_ProductionMainEntry(t *testing.T) {
	cfg, err := production().AddEntry("main", "./a.js").Build()
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"main": {"./a.js"}}, cfg.Entry)
	assert.Equal(t, webpack.ModeProduction, cfg.Mode)
	assert.True(t, cfg.Optimization.Minimize)
	assert.Nil(t, cfg.DevServer)
}

func TestBuild_EnvironmentNotConfigured(t *testing.T) {
	_, err := New().AddEntry("main", "./a.js").Build()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeEnvironmentNotConfigured))
}

func TestBuild_ReturnsRecordedError(t *testing.T) {
	b := production().AddEntry("main", "./a.js").AddEntry("main", "./b.js")
	_, err := b.Build()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDuplicateKey))
}

func TestBuild_NoEntries(t *testing.T) {
	_, err := production().Build()
	require.Error(t, err)
	assert.True(t, errors.IsInteraction(err))
}

func TestBuild_VersioningWithDevServer(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
	}{
		{"versioning first", func() *Builder {
			return New().ConfigureRuntimeEnvironment(env.ModeDevelopment, env.RuntimeOptions{}).
				AddEntry("main", "./a.js").
				EnableVersioning(true).
				ConfigureDevServerOptions(nil)
		}},
		{"dev server first", func() *Builder {
			return New().ConfigureRuntimeEnvironment(env.ModeDevelopment, env.RuntimeOptions{}).
				AddEntry("main", "./a.js").
				ConfigureDevServerOptions(nil).
				EnableVersioning(true)
		}},
		{"dev server mode", func() *Builder {
			return New().ConfigureRuntimeEnvironment(env.ModeDevServer, env.RuntimeOptions{}).
				AddEntry("main", "./a.js").
				EnableVersioning(true)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Build()
			require.Error(t, err)

			var batch *errors.InteractionErrors
			require.ErrorAs(t, err, &batch)
			assert.Equal(t, 1, batch.Len())
			assert.ElementsMatch(t,
				[]string{string(validator.FeatureVersioning), string(validator.FeatureDevServer)},
				batch.Features())
		})
	}
}

func TestBuild_TypeScriptStrategies(t *testing.T) {
	tests := []struct {
		name    string
		loader  bool
		preset  bool
		wantErr bool
	}{
		{"loader only", true, false, false},
		{"preset only", false, true, false},
		{"both", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := production().AddEntry("main", "./a.ts").
				When(tt.loader, func(b *Builder) { b.EnableTypeScriptLoader() }).
				When(tt.preset, func(b *Builder) { b.EnableBabelTypeScriptPreset() })

			_, err := b.Build()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var batch *errors.InteractionErrors
			require.ErrorAs(t, err, &batch)
			assert.ElementsMatch(t,
				[]string{string(validator.FeatureTypeScriptLoader), string(validator.FeatureBabelTypeScriptPreset)},
				batch.Features())
		})
	}
}

func TestBuild_BatchesEveryInteraction(t *testing.T) {
	_, err := New().ConfigureRuntimeEnvironment(env.ModeDevServer, env.RuntimeOptions{}).
		EnableVersioning(true).
		EnableTypeScriptLoader().
		EnableBabelTypeScriptPreset().
		Build()

	var batch *errors.InteractionErrors
	require.ErrorAs(t, err, &batch)
	assert.Equal(t, 3, batch.Len())
}

func TestBuild_ConsumesStore(t *testing.T) {
	b := production().AddEntry("main", "./a.js").EnableSassLoader()
	first, err := b.Build()
	require.NoError(t, err)
	_, ok := first.FindRule("sass")
	require.True(t, ok)

	assert.True(t, b.IsProduction(), "environment survives a build")
	assert.Empty(t, b.Store().Entries)
	assert.False(t, b.Store().Sass.Enabled)

	second, err := b.AddEntry("other", "./b.js").Build()
	require.NoError(t, err)
	_, ok = second.FindRule("sass")
	assert.False(t, ok)
	assert.Equal(t, map[string][]string{"other": {"./b.js"}}, second.Entry)
}

func TestBuild_FailureKeepsStore(t *testing.T) {
	b := production().EnableSassLoader()
	_, err := b.Build()
	require.Error(t, err)

	assert.True(t, b.Store().Sass.Enabled)
	cfg, err := b.AddEntry("main", "./a.js").Build()
	require.NoError(t, err)
	_, ok := cfg.FindRule("sass")
	assert.True(t, ok)
}

func TestBuild_ConcurrentForks(t *testing.T) {
	base := New().AddEntry("main", "./a.js").EnableSassLoader()
	require.NoError(t, base.Err())

	modes := []env.Mode{env.ModeProduction, env.ModeDevelopment, env.ModeDevServer}
	configs := make([]*webpack.Config, len(modes))

	g, _ := errgroup.WithContext(context.Background())
	for i, mode := range modes {
		fork, err := base.Fork()
		require.NoError(t, err)
		g.Go(func() error {
			cfg, err := fork.ConfigureRuntimeEnvironment(mode, env.RuntimeOptions{}).Build()
			if err != nil {
				return fmt.Errorf("%s: %w", mode, err)
			}
			configs[i] = cfg
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, webpack.ModeProduction, configs[0].Mode)
	assert.Equal(t, webpack.ModeDevelopment, configs[1].Mode)
	assert.NotNil(t, configs[2].DevServer)
	for _, cfg := range configs {
		_, ok := cfg.FindRule("sass")
		assert.True(t, ok)
	}
	assert.Equal(t, []string{"main"}, base.Store().EntryNames())
}

func TestValidate_ReportsWarnings(t *testing.T) {
	b := production().AddEntry("main", "./a.js").EnableIntegrityHashes(true)
	report, err := b.Validate()
	require.NoError(t, err)
	assert.Equal(t, validator.ValidationStatusWarn, report.Status)
	assert.True(t, report.IsDisabled(validator.FeatureIntegrityHashes))

	_, err = b.Build()
	require.NoError(t, err)
}

func TestBuild_FileChecker(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := New(WithFileChecker(validator.NewFileChecker(fs))).
		ConfigureRuntimeEnvironment(env.ModeProduction, env.RuntimeOptions{}).
		AddEntry("main", "./a.ts").
		EnableTypeScriptLoader()

	_, err := b.Build()
	require.Error(t, err)
	assert.True(t, errors.IsInteraction(err))

	require.NoError(t, afero.WriteFile(fs, "tsconfig.json", []byte("{}"), 0o644))
	_, err = b.Build()
	require.NoError(t, err)
}

func TestBuildESBuild(t *testing.T) {
	opts, notes, err := production().
		AddEntry("main", "./a.js").
		EnableVersioning(true).
		BuildESBuild()
	require.NoError(t, err)
	assert.Len(t, opts.EntryPointsAdvanced, 1)
	assert.True(t, opts.MinifyWhitespace)
	assert.Empty(t, notes)
}

func TestBuildResult(t *testing.T) {
	tests := []struct {
		target  string
		want    string
		wantErr bool
	}{
		{"", TargetWebpack, false},
		{TargetWebpack, TargetWebpack, false},
		{TargetESBuild, TargetESBuild, false},
		{"rollup", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			res, err := production().AddEntry("main", "./a.js").BuildResult(tt.target, "v1.2.3")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfiguration(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Target)
			assert.Equal(t, "production", res.Mode)
			assert.Equal(t, "v1.2.3", res.Metadata["version"])
			assert.Equal(t, TargetWebpack == tt.want, res.Webpack != nil)
			assert.Equal(t, TargetESBuild == tt.want, res.ESBuild != nil)
			// single runtime chunk left undecided
			assert.NotEmpty(t, res.Warnings)
		})
	}
}
