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
	"github.com/NVIDIA/encore/pkg/webpack"
)

// EntryKind distinguishes script entries from style-only entries.
type EntryKind string

const (
	EntryScript EntryKind = "script"
	EntryStyle  EntryKind = "style"
)

// Entry maps an output name to its source files.
type Entry struct {
	Name    string    `json:"name" yaml:"name"`
	Kind    EntryKind `json:"kind" yaml:"kind"`
	Sources []string  `json:"sources" yaml:"sources"`
}

// Toggle is an enable flag plus the options and override for one feature.
// Options are merged over the computed defaults before Override runs.
type Toggle struct {
	Enabled  bool
	Options  webpack.Options
	Override Override[webpack.Options]
}

// DevServerToggle records dev-server customization. Configured is set when
// the caller supplied dev-server options, independent of the active mode.
type DevServerToggle struct {
	Configured bool
	Override   Override[*webpack.DevServer]
}

// CacheGroup is a split chunks cache group as configured by the caller.
// Either Test or NodeModules must be set.
type CacheGroup struct {
	Name               string   `json:"name,omitempty" yaml:"name,omitempty"`
	Test               string   `json:"test,omitempty" yaml:"test,omitempty"`
	NodeModules        []string `json:"node_modules,omitempty" yaml:"node_modules,omitempty"`
	Chunks             string   `json:"chunks,omitempty" yaml:"chunks,omitempty"`
	Enforce            bool     `json:"enforce,omitempty" yaml:"enforce,omitempty"`
	Priority           *int     `json:"priority,omitempty" yaml:"priority,omitempty"`
	ReuseExistingChunk bool     `json:"reuseExistingChunk,omitempty" yaml:"reuseExistingChunk,omitempty"`
	MinSize            *int     `json:"minSize,omitempty" yaml:"minSize,omitempty"`
}

// CopyRule copies static files into the output directory.
type CopyRule struct {
	From                  string `json:"from" yaml:"from"`
	To                    string `json:"to,omitempty" yaml:"to,omitempty"`
	Pattern               string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	IncludeSubdirectories bool   `json:"includeSubdirectories,omitempty" yaml:"includeSubdirectories,omitempty"`
	Context               string `json:"context,omitempty" yaml:"context,omitempty"`
}

// PluginSpec is a caller plugin with an optional ordering priority.
type PluginSpec struct {
	Plugin   webpack.Plugin
	Priority *int
}

// RuleSpec is a caller module rule with an optional ordering priority.
type RuleSpec struct {
	Rule     webpack.Rule
	Priority *int
}

// Integrity configures subresource integrity hashes.
type Integrity struct {
	Enabled    bool
	Algorithms []string
}

// CSSExtraction controls whether CSS is extracted into files.
type CSSExtraction struct {
	Disabled bool
}

// Filenames overrides output filename patterns. Empty fields keep defaults.
type Filenames struct {
	JS     string `json:"js,omitempty" yaml:"js,omitempty"`
	CSS    string `json:"css,omitempty" yaml:"css,omitempty"`
	Images string `json:"images,omitempty" yaml:"images,omitempty"`
	Fonts  string `json:"fonts,omitempty" yaml:"fonts,omitempty"`
}

// AssetRule configures the built-in image or font rule. A positive MaxSize
// inlines assets smaller than MaxSize bytes.
type AssetRule struct {
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	MaxSize  int    `json:"maxSize,omitempty" yaml:"maxSize,omitempty"`
}

// RuleName names a built-in module rule.
type RuleName string

const (
	RuleJavaScript RuleName = "javascript"
	RuleCSS        RuleName = "css"
	RuleImages     RuleName = "images"
	RuleFonts      RuleName = "fonts"
	RuleSass       RuleName = "sass"
	RuleLess       RuleName = "less"
	RuleStylus     RuleName = "stylus"
	RuleTypeScript RuleName = "typescript"
	RuleVue        RuleName = "vue"
	RuleHandlebars RuleName = "handlebars"
)

// BuiltinRules returns the built-in rule names in projection order.
func BuiltinRules() []RuleName {
	return []RuleName{
		RuleJavaScript, RuleCSS, RuleImages, RuleFonts, RuleSass,
		RuleLess, RuleStylus, RuleTypeScript, RuleVue, RuleHandlebars,
	}
}

// IsBuiltinRule reports whether name is a built-in rule.
func IsBuiltinRule(name RuleName) bool {
	for _, r := range BuiltinRules() {
		if r == name {
			return true
		}
	}
	return false
}

// SupportedIntegrityAlgorithms returns the accepted hash algorithms.
func SupportedIntegrityAlgorithms() []string {
	return []string{"sha256", "sha384", "sha512"}
}

// Priority returns a pointer to p for PluginSpec and RuleSpec.
func Priority(p int) *int {
	return &p
}
