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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/header"
	"github.com/NVIDIA/encore/pkg/options"
)

type hclRecipe struct {
	Kind       string            `hcl:"kind,optional"`
	APIVersion string            `hcl:"api_version,optional"`
	Metadata   map[string]string `hcl:"metadata,optional"`
	Name       string            `hcl:"name,optional"`
	Overlays   []hclOverlay      `hcl:"overlay,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type hclOverlay struct {
	Mode   string   `hcl:"mode,label"`
	Remain hcl.Body `hcl:",remain"`
}

type hclSettings struct {
	OutputPath           *string             `hcl:"output_path,optional"`
	PublicPath           *string             `hcl:"public_path,optional"`
	ManifestKeyPrefix    *string             `hcl:"manifest_key_prefix,optional"`
	Entries              map[string][]string `hcl:"entries,optional"`
	StyleEntries         map[string][]string `hcl:"style_entries,optional"`
	Versioning           *bool               `hcl:"versioning,optional"`
	SourceMaps           *bool               `hcl:"source_maps,optional"`
	SingleRuntimeChunk   *bool               `hcl:"single_runtime_chunk,optional"`
	SplitEntryChunks     *bool               `hcl:"split_entry_chunks,optional"`
	DisableCSSExtraction *bool               `hcl:"disable_css_extraction,optional"`
	Cleanup              *bool               `hcl:"cleanup,optional"`
	Notifications        *bool               `hcl:"notifications,optional"`
	Aliases              map[string]string   `hcl:"aliases,optional"`
	Externals            map[string]string   `hcl:"externals,optional"`
	Provide              map[string]string   `hcl:"provide,optional"`
	Define               cty.Value           `hcl:"define,optional"`
	DevServer            cty.Value           `hcl:"dev_server,optional"`

	Integrity   *hclIntegrity   `hcl:"integrity,block"`
	Loaders     []hclLoader     `hcl:"loader,block"`
	CopyFiles   []hclCopy       `hcl:"copy,block"`
	CacheGroups []hclCacheGroup `hcl:"cache_group,block"`
	Plugins     []hclPlugin     `hcl:"plugin,block"`
}

type hclIntegrity struct {
	Enabled    bool     `hcl:"enabled,optional"`
	Algorithms []string `hcl:"algorithms,optional"`
}

type hclLoader struct {
	Name    string    `hcl:"name,label"`
	Options cty.Value `hcl:"options,optional"`
}

type hclCopy struct {
	From                  string `hcl:"from"`
	To                    string `hcl:"to,optional"`
	Pattern               string `hcl:"pattern,optional"`
	IncludeSubdirectories bool   `hcl:"include_subdirectories,optional"`
	Context               string `hcl:"context,optional"`
}

type hclCacheGroup struct {
	Name               string   `hcl:"name,label"`
	Test               string   `hcl:"test,optional"`
	NodeModules        []string `hcl:"node_modules,optional"`
	Chunks             string   `hcl:"chunks,optional"`
	Enforce            bool     `hcl:"enforce,optional"`
	Priority           *int     `hcl:"priority,optional"`
	ReuseExistingChunk bool     `hcl:"reuse_existing_chunk,optional"`
	MinSize            *int     `hcl:"min_size,optional"`
}

type hclPlugin struct {
	Name     string    `hcl:"name,label"`
	Options  cty.Value `hcl:"options,optional"`
	Priority *int      `hcl:"priority,optional"`
}

// evalContext exposes the build mode to recipe expressions.
func evalContext(mode env.Mode) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"mode":       cty.StringVal(mode.String()),
			"production": cty.BoolVal(mode == env.ModeProduction),
			"dev_server": cty.BoolVal(mode == env.ModeDevServer),
		},
	}
}

func decodeHCL(data []byte, filename string, mode env.Mode) (*Recipe, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, hclError("failed to parse HCL recipe", filename, diags)
	}

	ctx := evalContext(mode)

	var top hclRecipe
	if diags := gohcl.DecodeBody(file.Body, ctx, &top); diags.HasErrors() {
		return nil, hclError("failed to decode HCL recipe", filename, diags)
	}

	r := &Recipe{
		Header: header.Header{
			Kind:       header.Kind(top.Kind),
			APIVersion: top.APIVersion,
			Metadata:   top.Metadata,
		},
		Name: top.Name,
	}

	settings, err := decodeSettings(top.Remain, ctx, filename)
	if err != nil {
		return nil, err
	}
	r.Settings = settings

	for _, o := range top.Overlays {
		s, err := decodeSettings(o.Remain, ctx, filename)
		if err != nil {
			return nil, err
		}
		r.Overlays = append(r.Overlays, Overlay{Mode: o.Mode, Settings: s})
	}
	return r, nil
}

func decodeSettings(body hcl.Body, ctx *hcl.EvalContext, filename string) (Settings, error) {
	var hs hclSettings
	if diags := gohcl.DecodeBody(body, ctx, &hs); diags.HasErrors() {
		return Settings{}, hclError("failed to decode HCL recipe", filename, diags)
	}

	s := Settings{
		ManifestKeyPrefix:  hs.ManifestKeyPrefix,
		Entries:            hs.Entries,
		StyleEntries:       hs.StyleEntries,
		Versioning:         hs.Versioning,
		SourceMaps:         hs.SourceMaps,
		SingleRuntimeChunk: hs.SingleRuntimeChunk,
		Aliases:            hs.Aliases,
		Externals:          hs.Externals,
		Provide:            hs.Provide,
	}
	s.OutputPath = deref(hs.OutputPath)
	s.PublicPath = deref(hs.PublicPath)
	s.SplitEntryChunks = deref(hs.SplitEntryChunks)
	s.DisableCSSExtraction = deref(hs.DisableCSSExtraction)
	s.Cleanup = deref(hs.Cleanup)
	s.Notifications = deref(hs.Notifications)

	if hs.Integrity != nil {
		s.Integrity = &Integrity{Enabled: hs.Integrity.Enabled, Algorithms: hs.Integrity.Algorithms}
	}

	var err error
	if s.Define, err = objectValue(hs.Define); err != nil {
		return Settings{}, hclValueError("define", filename, err)
	}
	if s.DevServer, err = objectValue(hs.DevServer); err != nil {
		return Settings{}, hclValueError("dev_server", filename, err)
	}

	for _, l := range hs.Loaders {
		opts, err := objectValue(l.Options)
		if err != nil {
			return Settings{}, hclValueError("loader "+l.Name, filename, err)
		}
		if s.Loaders == nil {
			s.Loaders = make(map[string]Loader)
		}
		s.Loaders[l.Name] = Loader{Options: opts}
	}

	for _, c := range hs.CopyFiles {
		s.CopyFiles = append(s.CopyFiles, options.CopyRule{
			From:                  c.From,
			To:                    c.To,
			Pattern:               c.Pattern,
			IncludeSubdirectories: c.IncludeSubdirectories,
			Context:               c.Context,
		})
	}

	for _, cg := range hs.CacheGroups {
		if s.CacheGroups == nil {
			s.CacheGroups = make(map[string]options.CacheGroup)
		}
		s.CacheGroups[cg.Name] = options.CacheGroup{
			Test:               cg.Test,
			NodeModules:        cg.NodeModules,
			Chunks:             cg.Chunks,
			Enforce:            cg.Enforce,
			Priority:           cg.Priority,
			ReuseExistingChunk: cg.ReuseExistingChunk,
			MinSize:            cg.MinSize,
		}
	}

	for _, p := range hs.Plugins {
		opts, err := objectValue(p.Options)
		if err != nil {
			return Settings{}, hclValueError("plugin "+p.Name, filename, err)
		}
		s.Plugins = append(s.Plugins, Plugin{Name: p.Name, Options: opts, Priority: p.Priority})
	}

	return s, nil
}

// objectValue converts an HCL object into plain Go values. A null value
// yields a nil map.
func objectValue(v cty.Value) (map[string]any, error) {
	if v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("expected an object, got %s", ty.FriendlyName())
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	raw, err := ctyjson.Marshal(v, ty)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func hclError(msg, filename string, diags hcl.Diagnostics) error {
	return errors.WrapWithContext(errors.ErrCodeInvalidRequest, msg, diags,
		map[string]any{"path": filename})
}

func hclValueError(attr, filename string, err error) error {
	return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid %s value", attr), err,
		map[string]any{"path": filename})
}
