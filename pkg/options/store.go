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
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/NVIDIA/encore/pkg/defaults"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// Store is the option store of one build. Fields are exported so validation
// fixtures can be built by hand; callers should prefer the mutators.
type Store struct {
	OutputPath        string
	PublicPath        string
	ManifestKeyPrefix *string

	Entries []Entry

	Versioning         bool
	SourceMaps         bool
	SingleRuntimeChunk *bool
	SplitEntryChunks   bool

	CacheGroups []CacheGroup
	CopyRules   []CopyRule
	Aliases     map[string]string
	Externals   map[string]string
	Plugins     []PluginSpec
	Rules       []RuleSpec

	Integrity     Integrity
	CSSExtraction CSSExtraction
	Filenames     Filenames
	ImageRule     AssetRule
	FontRule      AssetRule
	Provide       map[string]string

	Cleanup       Toggle
	Notifications Toggle
	DevServer     DevServerToggle

	Sass                    Toggle
	Less                    Toggle
	Stylus                  Toggle
	PostCSS                 Toggle
	TypeScript              Toggle
	ForkedTypeScriptChecker Toggle
	BabelTypeScript         Toggle
	React                   Toggle
	Preact                  Toggle
	Vue                     Toggle
	Handlebars              Toggle

	Babel                Override[webpack.Options]
	BabelPresetEnv       Override[webpack.Options]
	CSSLoader            Override[webpack.Options]
	StyleLoader          Override[webpack.Options]
	MiniCSSExtractLoader Override[webpack.Options]
	MiniCSSExtractPlugin Override[webpack.Options]
	Terser               Override[webpack.Options]
	CSSMinimizer         Override[webpack.Options]
	Manifest             Override[webpack.Options]
	DefinePlugin         Override[webpack.Options]
	SplitChunks          Override[*webpack.SplitChunks]
	Watch                Override[*webpack.WatchOptions]
	Output               Override[*webpack.Output]
	Resolve              Override[*webpack.Resolve]
	LoaderRules          map[RuleName]Override[*webpack.Rule]
}

// New returns a store holding the defaults.
func New() *Store {
	return &Store{
		OutputPath:  defaults.OutputPath,
		PublicPath:  defaults.PublicPath,
		Aliases:     map[string]string{},
		Externals:   map[string]string{},
		Provide:     map[string]string{},
		LoaderRules: map[RuleName]Override[*webpack.Rule]{},
	}
}

// Reset returns the store to the state New produces.
func (s *Store) Reset() {
	*s = *New()
}

// DeepCopy returns a copy of v that shares no maps or slices with it. A nil
// map comes back empty.
func DeepCopy[T any](v T) (T, error) {
	var cp T
	if err := copier.CopyWithOption(&cp, v, copier.Option{DeepCopy: true}); err != nil {
		return cp, errors.Wrap(errors.ErrCodeInternal, "failed to copy options", err)
	}
	return cp, nil
}

// Clone returns a deep copy. Override callbacks are shared, not copied.
func (s *Store) Clone() (*Store, error) {
	var cp Store
	if err := copier.CopyWithOption(&cp, s, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to clone option store", err)
	}
	// copier leaves nil maps untouched; keep the New invariants.
	if cp.Aliases == nil {
		cp.Aliases = map[string]string{}
	}
	if cp.Externals == nil {
		cp.Externals = map[string]string{}
	}
	if cp.Provide == nil {
		cp.Provide = map[string]string{}
	}
	cp.shareOverrides(s)
	return &cp, nil
}

// shareOverrides points every override callback of s at the ones in src.
func (s *Store) shareOverrides(src *Store) {
	s.Babel = src.Babel
	s.BabelPresetEnv = src.BabelPresetEnv
	s.CSSLoader = src.CSSLoader
	s.StyleLoader = src.StyleLoader
	s.MiniCSSExtractLoader = src.MiniCSSExtractLoader
	s.MiniCSSExtractPlugin = src.MiniCSSExtractPlugin
	s.Terser = src.Terser
	s.CSSMinimizer = src.CSSMinimizer
	s.Manifest = src.Manifest
	s.DefinePlugin = src.DefinePlugin
	s.SplitChunks = src.SplitChunks
	s.Watch = src.Watch
	s.Output = src.Output
	s.Resolve = src.Resolve
	s.DevServer.Override = src.DevServer.Override

	for name, t := range src.toggles() {
		s.toggles()[name].Override = t.Override
	}

	s.LoaderRules = maps.Clone(src.LoaderRules)
	if s.LoaderRules == nil {
		s.LoaderRules = map[RuleName]Override[*webpack.Rule]{}
	}
}

func (s *Store) toggles() map[string]*Toggle {
	return map[string]*Toggle{
		"cleanup":                   &s.Cleanup,
		"notifications":             &s.Notifications,
		"sass":                      &s.Sass,
		"less":                      &s.Less,
		"stylus":                    &s.Stylus,
		"postcss":                   &s.PostCSS,
		"typescript":                &s.TypeScript,
		"forked-typescript-checker": &s.ForkedTypeScriptChecker,
		"babel-typescript":          &s.BabelTypeScript,
		"react":                     &s.React,
		"preact":                    &s.Preact,
		"vue":                       &s.Vue,
		"handlebars":                &s.Handlebars,
	}
}

// SetOutputPath sets the directory bundles are written to.
func (s *Store) SetOutputPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.New(errors.ErrCodeConfiguration, "output path cannot be empty")
	}
	s.OutputPath = p
	return nil
}

// SetPublicPath sets the URL prefix assets are served from.
func (s *Store) SetPublicPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.New(errors.ErrCodeConfiguration, "public path cannot be empty")
	}
	s.PublicPath = p
	return nil
}

// SetManifestKeyPrefix sets the prefix used for keys in manifest.json.
// An empty prefix is valid and means keys carry no prefix.
func (s *Store) SetManifestKeyPrefix(p string) {
	s.ManifestKeyPrefix = &p
}

// HasEntry reports whether name is used by a script or style entry.
func (s *Store) HasEntry(name string) bool {
	return slices.ContainsFunc(s.Entries, func(e Entry) bool { return e.Name == name })
}

// EntryNames returns the entry names in insertion order.
func (s *Store) EntryNames() []string {
	names := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		names = append(names, e.Name)
	}
	return names
}

// AddEntry adds a script entry.
func (s *Store) AddEntry(name string, sources ...string) error {
	return s.addEntry(EntryScript, name, sources)
}

// AddStyleEntry adds a style-only entry.
func (s *Store) AddStyleEntry(name string, sources ...string) error {
	return s.addEntry(EntryStyle, name, sources)
}

// AddEntries adds script entries in sorted name order. Every name is checked
// before any entry is added.
func (s *Store) AddEntries(entries map[string][]string) error {
	names := slices.Sorted(maps.Keys(entries))
	for _, name := range names {
		if err := s.checkEntry(name, entries[name]); err != nil {
			return err
		}
	}
	for _, name := range names {
		s.Entries = append(s.Entries, newEntry(EntryScript, name, entries[name]))
	}
	return nil
}

func (s *Store) addEntry(kind EntryKind, name string, sources []string) error {
	if err := s.checkEntry(name, sources); err != nil {
		return err
	}
	s.Entries = append(s.Entries, newEntry(kind, name, sources))
	return nil
}

func (s *Store) checkEntry(name string, sources []string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeConfiguration, "entry name cannot be empty")
	}
	if len(sources) == 0 {
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("entry %q must have at least one source file", name),
			map[string]any{"name": name})
	}
	for _, src := range sources {
		if strings.TrimSpace(src) == "" {
			return errors.NewWithContext(errors.ErrCodeConfiguration,
				fmt.Sprintf("entry %q has an empty source path", name),
				map[string]any{"name": name})
		}
	}
	if s.HasEntry(name) {
		return errors.NewWithContext(errors.ErrCodeDuplicateKey,
			fmt.Sprintf("duplicate entry name %q: entry names must be unique across script and style entries", name),
			map[string]any{"name": name})
	}
	return nil
}

func newEntry(kind EntryKind, name string, sources []string) Entry {
	return Entry{Name: name, Kind: kind, Sources: slices.Clone(sources)}
}

// AddCacheGroup adds a named split chunks cache group.
func (s *Store) AddCacheGroup(name string, group CacheGroup) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeConfiguration, "cache group name cannot be empty")
	}
	if group.Test == "" && len(group.NodeModules) == 0 {
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("cache group %q must define either test or node_modules", name),
			map[string]any{"name": name})
	}
	for _, cg := range s.CacheGroups {
		if cg.Name == name {
			return errors.NewWithContext(errors.ErrCodeDuplicateKey,
				fmt.Sprintf("duplicate cache group name %q", name),
				map[string]any{"name": name})
		}
	}
	group.Name = name
	group.NodeModules = slices.Clone(group.NodeModules)
	s.CacheGroups = append(s.CacheGroups, group)
	return nil
}

// CopyFiles appends copy rules.
func (s *Store) CopyFiles(rules ...CopyRule) error {
	for i, r := range rules {
		if strings.TrimSpace(r.From) == "" {
			return errors.NewWithContext(errors.ErrCodeConfiguration,
				"copy rule requires a from directory",
				map[string]any{"index": i})
		}
	}
	s.CopyRules = append(s.CopyRules, rules...)
	return nil
}

// AddPlugin appends a caller plugin. A nil priority places it after every
// built-in plugin.
func (s *Store) AddPlugin(plugin webpack.Plugin, priority *int) error {
	if strings.TrimSpace(plugin.Name) == "" {
		return errors.New(errors.ErrCodeConfiguration, "plugin name cannot be empty")
	}
	s.Plugins = append(s.Plugins, PluginSpec{Plugin: plugin, Priority: priority})
	return nil
}

// AddRule appends a caller module rule.
func (s *Store) AddRule(rule webpack.Rule, priority *int) error {
	if strings.TrimSpace(rule.Test) == "" {
		return errors.New(errors.ErrCodeConfiguration, "module rule requires a test pattern")
	}
	if len(rule.Use) == 0 && rule.Type == "" {
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			"module rule requires at least one loader or an asset type",
			map[string]any{"test": rule.Test})
	}
	s.Rules = append(s.Rules, RuleSpec{Rule: rule, Priority: priority})
	return nil
}

// AddAliases merges module resolution aliases. Later calls win per key.
func (s *Store) AddAliases(aliases map[string]string) {
	maps.Copy(s.Aliases, aliases)
}

// AddExternals merges externals. Later calls win per key.
func (s *Store) AddExternals(externals map[string]string) {
	maps.Copy(s.Externals, externals)
}

// AddProvide merges automatically provided variables.
func (s *Store) AddProvide(vars map[string]string) {
	maps.Copy(s.Provide, vars)
}

// EnableIntegrityHashes toggles subresource integrity. With no algorithms the
// default algorithm is used.
func (s *Store) EnableIntegrityHashes(enabled bool, algorithms ...string) error {
	if len(algorithms) == 0 {
		algorithms = []string{defaults.IntegrityAlgorithm}
	}
	supported := SupportedIntegrityAlgorithms()
	for _, a := range algorithms {
		if !slices.Contains(supported, a) {
			return errors.NewWithContext(errors.ErrCodeConfiguration,
				fmt.Sprintf("invalid integrity algorithm %q (must be one of %s)", a, strings.Join(supported, ", ")),
				map[string]any{"algorithm": a})
		}
	}
	s.Integrity = Integrity{Enabled: enabled, Algorithms: slices.Clone(algorithms)}
	return nil
}

// SetLoaderRule registers an override for a built-in module rule.
func (s *Store) SetLoaderRule(name RuleName, fn Override[*webpack.Rule]) error {
	if !IsBuiltinRule(name) {
		names := make([]string, 0)
		for _, r := range BuiltinRules() {
			names = append(names, string(r))
		}
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("unknown loader rule %q (must be one of %s)", name, strings.Join(names, ", ")),
			map[string]any{"rule": string(name)})
	}
	if fn == nil {
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("loader rule %q override cannot be nil", name),
			map[string]any{"rule": string(name)})
	}
	s.LoaderRules[name] = fn
	return nil
}

// SetFilenames overrides filename patterns.
func (s *Store) SetFilenames(f Filenames) error {
	for kind, pattern := range map[string]string{"js": f.JS, "css": f.CSS} {
		if pattern != "" && !strings.Contains(pattern, "[name]") && !strings.Contains(pattern, "[id]") {
			return errors.NewWithContext(errors.ErrCodeConfiguration,
				fmt.Sprintf("%s filename %q must contain [name] or [id]", kind, pattern),
				map[string]any{"kind": kind, "pattern": pattern})
		}
	}
	s.Filenames = f
	return nil
}

// SetAssetRule configures the image or font rule.
func (s *Store) SetAssetRule(name RuleName, rule AssetRule) error {
	if rule.MaxSize < 0 {
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("%s rule maxSize cannot be negative", name),
			map[string]any{"rule": string(name)})
	}
	switch name {
	case RuleImages:
		s.ImageRule = rule
	case RuleFonts:
		s.FontRule = rule
	default:
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("%q is not an asset rule", name),
			map[string]any{"rule": string(name)})
	}
	return nil
}

// SingleRuntimeChunkDecided reports whether the runtime chunk strategy was set.
func (s *Store) SingleRuntimeChunkDecided() bool {
	return s.SingleRuntimeChunk != nil
}

// SingleRuntimeChunkEnabled reports whether a single runtime chunk is emitted.
func (s *Store) SingleRuntimeChunkEnabled() bool {
	return s.SingleRuntimeChunk != nil && *s.SingleRuntimeChunk
}
