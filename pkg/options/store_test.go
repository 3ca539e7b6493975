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

package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/encore/pkg/defaults"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/webpack"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, defaults.OutputPath, s.OutputPath)
	assert.Equal(t, defaults.PublicPath, s.PublicPath)
	assert.Nil(t, s.ManifestKeyPrefix)
	assert.Empty(t, s.Entries)
	assert.NotNil(t, s.Aliases)
	assert.NotNil(t, s.LoaderRules)
	assert.False(t, s.SingleRuntimeChunkDecided())
}

func TestAddEntry(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Store) error
		code     errors.ErrorCode
		wantLen  int
		wantKind EntryKind
	}{
		{
			name:     "script entry",
			setup:    func(s *Store) error { return s.AddEntry("main", "./a.js") },
			wantLen:  1,
			wantKind: EntryScript,
		},
		{
			name:     "style entry",
			setup:    func(s *Store) error { return s.AddStyleEntry("theme", "./theme.scss") },
			wantLen:  1,
			wantKind: EntryStyle,
		},
		{
			name:  "empty name",
			setup: func(s *Store) error { return s.AddEntry(" ", "./a.js") },
			code:  errors.ErrCodeConfiguration,
		},
		{
			name:  "no sources",
			setup: func(s *Store) error { return s.AddEntry("main") },
			code:  errors.ErrCodeConfiguration,
		},
		{
			name:  "empty source",
			setup: func(s *Store) error { return s.AddEntry("main", "") },
			code:  errors.ErrCodeConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			err := tt.setup(s)
			if tt.code != "" {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tt.code))
				assert.Empty(t, s.Entries)
				return
			}
			require.NoError(t, err)
			require.Len(t, s.Entries, tt.wantLen)
			assert.Equal(t, tt.wantKind, s.Entries[0].Kind)
		})
	}
}

func TestDuplicateEntryAcrossCollections(t *testing.T) {
	tests := []struct {
		name   string
		first  func(*Store) error
		second func(*Store) error
	}{
		{
			name:   "script then script",
			first:  func(s *Store) error { return s.AddEntry("main", "./a.js") },
			second: func(s *Store) error { return s.AddEntry("main", "./b.js") },
		},
		{
			name:   "script then style",
			first:  func(s *Store) error { return s.AddEntry("main", "./a.js") },
			second: func(s *Store) error { return s.AddStyleEntry("main", "./a.css") },
		},
		{
			name:   "style then entries map",
			first:  func(s *Store) error { return s.AddStyleEntry("main", "./a.css") },
			second: func(s *Store) error { return s.AddEntries(map[string][]string{"main": {"./a.js"}}) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			require.NoError(t, tt.first(s))
			before := s.Entries[0]

			err := tt.second(s)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeDuplicateKey))
			require.Len(t, s.Entries, 1)
			assert.Equal(t, before, s.Entries[0])
		})
	}
}

func TestAddEntriesIsAtomicAndSorted(t *testing.T) {
	s := New()
	require.NoError(t, s.AddEntry("b", "./b.js"))

	err := s.AddEntries(map[string][]string{"a": {"./a.js"}, "b": {"./other.js"}})
	require.Error(t, err)
	assert.Equal(t, []string{"b"}, s.EntryNames())

	require.NoError(t, s.AddEntries(map[string][]string{"z": {"./z.js"}, "c": {"./c.js"}}))
	assert.Equal(t, []string{"b", "c", "z"}, s.EntryNames())
}

func TestEntrySourcesAreCopied(t *testing.T) {
	s := New()
	sources := []string{"./a.js"}
	require.NoError(t, s.AddEntry("main", sources...))
	sources[0] = "./changed.js"
	assert.Equal(t, "./a.js", s.Entries[0].Sources[0])
}

func TestAddCacheGroup(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCacheGroup("vendor", CacheGroup{NodeModules: []string{"react"}}))

	err := s.AddCacheGroup("vendor", CacheGroup{Test: "x"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeDuplicateKey))

	err = s.AddCacheGroup("empty", CacheGroup{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfiguration))

	require.Len(t, s.CacheGroups, 1)
	assert.Equal(t, "vendor", s.CacheGroups[0].Name)
}

func TestCopyFilesAppends(t *testing.T) {
	s := New()
	require.NoError(t, s.CopyFiles(CopyRule{From: "./images"}))
	require.NoError(t, s.CopyFiles(CopyRule{From: "./fonts"}, CopyRule{From: "./static"}))
	assert.Len(t, s.CopyRules, 3)

	err := s.CopyFiles(CopyRule{From: "./ok"}, CopyRule{})
	assert.True(t, errors.IsConfiguration(err))
	assert.Len(t, s.CopyRules, 3)
}

func TestAddPluginAndRule(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPlugin(webpack.Plugin{Name: "a"}, nil))
	require.NoError(t, s.AddPlugin(webpack.Plugin{Name: "b"}, Priority(-5)))
	assert.True(t, errors.IsConfiguration(s.AddPlugin(webpack.Plugin{}, nil)))
	require.Len(t, s.Plugins, 2)
	assert.Equal(t, -5, *s.Plugins[1].Priority)

	require.NoError(t, s.AddRule(webpack.Rule{Test: `\.txt$`, Type: "asset/source"}, nil))
	assert.True(t, errors.IsConfiguration(s.AddRule(webpack.Rule{Type: "asset"}, nil)))
	assert.True(t, errors.IsConfiguration(s.AddRule(webpack.Rule{Test: `\.x$`}, nil)))
	assert.Len(t, s.Rules, 1)
}

func TestAliasesWiden(t *testing.T) {
	s := New()
	s.AddAliases(map[string]string{"@": "./assets", "~": "./node_modules"})
	s.AddAliases(map[string]string{"@": "./src"})
	assert.Equal(t, map[string]string{"@": "./src", "~": "./node_modules"}, s.Aliases)
}

func TestEnableIntegrityHashes(t *testing.T) {
	s := New()
	require.NoError(t, s.EnableIntegrityHashes(true))
	assert.Equal(t, []string{defaults.IntegrityAlgorithm}, s.Integrity.Algorithms)

	require.NoError(t, s.EnableIntegrityHashes(true, "sha256", "sha512"))
	assert.Equal(t, []string{"sha256", "sha512"}, s.Integrity.Algorithms)

	assert.True(t, errors.IsConfiguration(s.EnableIntegrityHashes(true, "md5")))
}

func TestSetters(t *testing.T) {
	s := New()
	assert.True(t, errors.IsConfiguration(s.SetOutputPath("")))
	assert.True(t, errors.IsConfiguration(s.SetPublicPath("")))
	require.NoError(t, s.SetOutputPath("web/build"))
	require.NoError(t, s.SetOutputPath("public/assets"))
	assert.Equal(t, "public/assets", s.OutputPath)

	s.SetManifestKeyPrefix("")
	require.NotNil(t, s.ManifestKeyPrefix)
	assert.Empty(t, *s.ManifestKeyPrefix)

	assert.True(t, errors.IsConfiguration(s.SetFilenames(Filenames{JS: "app.js"})))
	require.NoError(t, s.SetFilenames(Filenames{JS: "[name].[contenthash].js"}))

	assert.True(t, errors.IsConfiguration(s.SetLoaderRule("bogus", func(r *webpack.Rule) *webpack.Rule { return nil })))
	assert.True(t, errors.IsConfiguration(s.SetLoaderRule(RuleImages, nil)))
	require.NoError(t, s.SetLoaderRule(RuleImages, func(r *webpack.Rule) *webpack.Rule { return nil }))

	assert.True(t, errors.IsConfiguration(s.SetAssetRule(RuleSass, AssetRule{})))
	assert.True(t, errors.IsConfiguration(s.SetAssetRule(RuleImages, AssetRule{MaxSize: -1})))
	require.NoError(t, s.SetAssetRule(RuleFonts, AssetRule{Disabled: true}))
	assert.True(t, s.FontRule.Disabled)
}

func TestReset(t *testing.T) {
	s := New()
	require.NoError(t, s.AddEntry("main", "./a.js"))
	s.Versioning = true
	s.Sass.Enabled = true
	s.AddAliases(map[string]string{"@": "./src"})

	s.Reset()
	s.Reset()

	assert.Equal(t, New(), s)
}

func TestClone(t *testing.T) {
	s := New()
	require.NoError(t, s.AddEntry("main", "./a.js"))
	s.AddAliases(map[string]string{"@": "./src"})
	s.Sass = Toggle{Enabled: true, Options: webpack.Options{"sourceMap": true}}
	called := false
	s.Terser = func(o webpack.Options) webpack.Options {
		called = true
		return nil
	}

	cp, err := s.Clone()
	require.NoError(t, err)

	require.NoError(t, cp.AddEntry("admin", "./admin.js"))
	cp.Entries[0].Sources[0] = "./changed.js"
	cp.AddAliases(map[string]string{"~": "./lib"})
	cp.Sass.Options["sourceMap"] = false

	assert.Equal(t, []string{"main"}, s.EntryNames())
	assert.Equal(t, "./a.js", s.Entries[0].Sources[0])
	assert.NotContains(t, s.Aliases, "~")
	assert.Equal(t, true, s.Sass.Options["sourceMap"])

	require.NotNil(t, cp.Terser)
	cp.Terser(webpack.Options{})
	assert.True(t, called)
}
