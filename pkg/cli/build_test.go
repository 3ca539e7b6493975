/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/encore/pkg/encore"
	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/serializer"
)

const shopRecipe = `
kind: BuildRecipe
name: shop
entries:
  app: [./assets/app.js]
singleRuntimeChunk: true
overlays:
  - mode: production
    versioning: true
`

// withRecipes swaps fileSystem for an in-memory one holding files.
func withRecipes(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	prev := fileSystem
	fileSystem = fs
	t.Cleanup(func() { fileSystem = prev })
	return fs
}

// run executes the root command and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	root := newRootCmd()
	root.Writer = &out
	root.ErrWriter = &out
	err := root.Run(context.Background(), append([]string{name, "--log-level", "error"}, args...))
	return out.String(), err
}

func TestBuildAll(t *testing.T) {
	fs := withRecipes(t, map[string]string{"/app/encore.yaml": shopRecipe})

	opts := &buildCmdOptions{
		recipePath: "/app/encore.yaml",
		modes:      []env.Mode{env.ModeDevelopment, env.ModeProduction, env.ModeDevServer},
		target:     encore.TargetWebpack,
		format:     serializer.FormatYAML,
	}
	results, err := buildAll(context.Background(), fs, opts)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, mode := range opts.modes {
		assert.Equal(t, mode.String(), results[i].Mode)
		require.NotNil(t, results[i].Webpack)
	}
	assert.Nil(t, results[0].Webpack.DevServer)
	assert.NotNil(t, results[2].Webpack.DevServer)
	assert.Contains(t, results[1].Webpack.Output.Filename, "[contenthash")
	assert.NotContains(t, results[0].Webpack.Output.Filename, "[contenthash")
}

func TestBuildAll_Errors(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		path   string
		modes  []env.Mode
		target string
		check  func(error) bool
	}{
		{
			name:   "missing recipe",
			files:  map[string]string{},
			path:   "/app/encore.yaml",
			modes:  []env.Mode{env.ModeProduction},
			target: encore.TargetWebpack,
			check:  func(err error) bool { return errors.HasCode(err, errors.ErrCodeNotFound) },
		},
		{
			name:   "no entries",
			files:  map[string]string{"/app/encore.yaml": "singleRuntimeChunk: true"},
			path:   "/app/encore.yaml",
			modes:  []env.Mode{env.ModeProduction},
			target: encore.TargetWebpack,
			check:  errors.IsInteraction,
		},
		{
			name: "versioning under dev-server only",
			files: map[string]string{"/app/encore.yaml": shopRecipe + `
  - mode: dev-server
    versioning: true
`},
			path:   "/app/encore.yaml",
			modes:  []env.Mode{env.ModeDevelopment, env.ModeDevServer},
			target: encore.TargetWebpack,
			check:  errors.IsInteraction,
		},
		{
			name:   "unsupported target",
			files:  map[string]string{"/app/encore.yaml": shopRecipe},
			path:   "/app/encore.yaml",
			modes:  []env.Mode{env.ModeProduction},
			target: "rollup",
			check:  errors.IsConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := withRecipes(t, tt.files)
			_, err := buildAll(context.Background(), fs, &buildCmdOptions{
				recipePath: tt.path,
				modes:      tt.modes,
				target:     tt.target,
			})
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestParseBuildCmdOptions(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantModes []env.Mode
		wantErr   bool
	}{
		{"default mode", nil, []env.Mode{env.ModeProduction}, false},
		{"repeated modes", []string{"-m", "dev", "-m", "dev-server"}, []env.Mode{env.ModeDevelopment, env.ModeDevServer}, false},
		{"duplicates collapse", []string{"-m", "prod", "-m", "production"}, []env.Mode{env.ModeProduction}, false},
		{"bad mode", []string{"-m", "staging"}, nil, true},
		{"bad target", []string{"--target", "rollup"}, nil, true},
		{"bad format", []string{"-t", "xml"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *buildCmdOptions
			var parseErr error
			cmd := buildCmd()
			cmd.Action = func(_ context.Context, c *cli.Command) error {
				got, parseErr = parseBuildCmdOptions(c)
				return nil
			}
			args := append([]string{"build", "-r", "encore.yaml"}, tt.args...)
			require.NoError(t, cmd.Run(context.Background(), args))

			if tt.wantErr {
				assert.Error(t, parseErr)
				return
			}
			require.NoError(t, parseErr)
			assert.Equal(t, tt.wantModes, got.modes)
			assert.Equal(t, "encore.yaml", got.recipePath)
		})
	}
}

func TestBuildCmd_WritesResults(t *testing.T) {
	withRecipes(t, map[string]string{"/app/encore.yaml": shopRecipe})
	out := filepath.Join(t.TempDir(), "config.yaml")

	_, err := run(t, "build", "-r", "/app/encore.yaml", "-m", "dev", "-m", "production", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var docs []struct {
		Kind   string `yaml:"kind"`
		Mode   string `yaml:"mode"`
		Target string `yaml:"target"`
	}
	require.NoError(t, yaml.Unmarshal(data, &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "BuildResult", docs[0].Kind)
	assert.Equal(t, "development", docs[0].Mode)
	assert.Equal(t, "production", docs[1].Mode)
	assert.Equal(t, "webpack", docs[1].Target)
}

func TestBuildCmd_RequiresRecipe(t *testing.T) {
	_, err := run(t, "build")
	assert.Error(t, err)
}
