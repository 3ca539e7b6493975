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
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/header"
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// Recipe is a declarative build description.
type Recipe struct {
	header.Header `json:",inline" yaml:",inline"`

	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Settings `json:",inline" yaml:",inline"`

	// Overlays are applied after the base settings, each only in its mode.
	Overlays []Overlay `json:"overlays,omitempty" yaml:"overlays,omitempty"`
}

// Overlay holds settings applied only in one build mode.
type Overlay struct {
	Mode string `json:"mode" yaml:"mode"`

	Settings `json:",inline" yaml:",inline"`
}

// Settings mirrors the builder API.
type Settings struct {
	OutputPath        string              `json:"outputPath,omitempty" yaml:"outputPath,omitempty"`
	PublicPath        string              `json:"publicPath,omitempty" yaml:"publicPath,omitempty"`
	ManifestKeyPrefix *string             `json:"manifestKeyPrefix,omitempty" yaml:"manifestKeyPrefix,omitempty"`
	Entries           map[string][]string `json:"entries,omitempty" yaml:"entries,omitempty"`
	StyleEntries      map[string][]string `json:"styleEntries,omitempty" yaml:"styleEntries,omitempty"`

	Versioning           *bool      `json:"versioning,omitempty" yaml:"versioning,omitempty"`
	SourceMaps           *bool      `json:"sourceMaps,omitempty" yaml:"sourceMaps,omitempty"`
	SingleRuntimeChunk   *bool      `json:"singleRuntimeChunk,omitempty" yaml:"singleRuntimeChunk,omitempty"`
	SplitEntryChunks     bool       `json:"splitEntryChunks,omitempty" yaml:"splitEntryChunks,omitempty"`
	Integrity            *Integrity `json:"integrity,omitempty" yaml:"integrity,omitempty"`
	DisableCSSExtraction bool       `json:"disableCssExtraction,omitempty" yaml:"disableCssExtraction,omitempty"`

	// Loaders enables loaders and presets by name. Options are merged over
	// the computed defaults.
	Loaders map[string]Loader `json:"loaders,omitempty" yaml:"loaders,omitempty"`

	Aliases     map[string]string             `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Externals   map[string]string             `json:"externals,omitempty" yaml:"externals,omitempty"`
	Provide     map[string]string             `json:"provide,omitempty" yaml:"provide,omitempty"`
	CopyFiles   []options.CopyRule            `json:"copyFiles,omitempty" yaml:"copyFiles,omitempty"`
	CacheGroups map[string]options.CacheGroup `json:"cacheGroups,omitempty" yaml:"cacheGroups,omitempty"`
	Plugins     []Plugin                      `json:"plugins,omitempty" yaml:"plugins,omitempty"`

	// Define is merged into the DefinePlugin definitions.
	Define map[string]any `json:"define,omitempty" yaml:"define,omitempty"`

	// DevServer is a partial dev server section using webpack key names.
	// Present, even empty, it marks the dev server as configured.
	DevServer map[string]any `json:"devServer,omitempty" yaml:"devServer,omitempty"`

	Cleanup       bool `json:"cleanup,omitempty" yaml:"cleanup,omitempty"`
	Notifications bool `json:"notifications,omitempty" yaml:"notifications,omitempty"`
}

// Integrity enables subresource integrity hashes.
type Integrity struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	Algorithms []string `json:"algorithms,omitempty" yaml:"algorithms,omitempty"`
}

// Loader carries the options of an enabled loader.
type Loader struct {
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Plugin is an additional webpack plugin.
type Plugin struct {
	Name     string         `json:"name" yaml:"name"`
	Options  map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
	Priority *int           `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Validate checks the header and every value the builder cannot check
// itself.
func (r *Recipe) Validate() error {
	if r == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "recipe cannot be nil")
	}
	if err := r.Header.Check(header.KindBuildRecipe); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid recipe header", err)
	}
	if err := r.Settings.validate(); err != nil {
		return errors.WrapWithContext(errors.ErrCodeConfiguration, "invalid recipe", err,
			map[string]any{"recipe": r.Name})
	}
	for i, o := range r.Overlays {
		if _, err := env.ParseMode(o.Mode); err != nil {
			return errors.WrapWithContext(errors.ErrCodeConfiguration,
				fmt.Sprintf("overlay %d has an invalid mode", i), err,
				map[string]any{"recipe": r.Name, "mode": o.Mode})
		}
		if err := o.Settings.validate(); err != nil {
			return errors.WrapWithContext(errors.ErrCodeConfiguration,
				fmt.Sprintf("invalid %s overlay", o.Mode), err,
				map[string]any{"recipe": r.Name, "mode": o.Mode})
		}
	}
	return nil
}

func (s *Settings) validate() error {
	for name := range s.Loaders {
		if _, ok := loaderEnablers[name]; !ok {
			return fmt.Errorf("unknown loader %q, supported: %v", name, LoaderNames())
		}
	}
	for i, p := range s.Plugins {
		if p.Name == "" {
			return fmt.Errorf("plugin %d has no name", i)
		}
	}
	if s.DevServer != nil {
		if _, err := mergeDevServer(&webpack.DevServer{}, s.DevServer); err != nil {
			return err
		}
	}
	return nil
}

// LoaderNames lists the loader names a recipe may enable.
func LoaderNames() []string {
	return slices.Sorted(maps.Keys(loaderEnablers))
}

// mergeDevServer decodes partial over a copy of ds. Keys absent from
// partial keep their value; explicit zero values replace it.
func mergeDevServer(ds *webpack.DevServer, partial map[string]any) (*webpack.DevServer, error) {
	raw, err := json.Marshal(partial)
	if err != nil {
		return nil, fmt.Errorf("invalid devServer section: %w", err)
	}
	out := *ds
	if ds.Static != nil {
		static := *ds.Static
		out.Static = &static
	}
	if ds.Client != nil {
		client := *ds.Client
		out.Client = &client
	}
	out.Headers = maps.Clone(ds.Headers)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("invalid devServer section: %w", err)
	}
	return &out, nil
}
