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
	"fmt"

	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// SetOutputPath sets the directory bundles are written to.
func (b *Builder) SetOutputPath(p string) *Builder {
	return b.record(b.store.SetOutputPath(p))
}

// SetPublicPath sets the URL prefix assets are served from.
func (b *Builder) SetPublicPath(p string) *Builder {
	return b.record(b.store.SetPublicPath(p))
}

// SetManifestKeyPrefix sets the key prefix used in manifest.json. Required
// when the public path is an absolute URL.
func (b *Builder) SetManifestKeyPrefix(p string) *Builder {
	b.store.SetManifestKeyPrefix(p)
	return b
}

// AddEntry adds a script entry. A name already used by any entry is
// recorded as a DUPLICATE_KEY error.
func (b *Builder) AddEntry(name string, sources ...string) *Builder {
	return b.record(b.store.AddEntry(name, sources...))
}

// AddEntries adds several script entries in name order.
func (b *Builder) AddEntries(entries map[string][]string) *Builder {
	return b.record(b.store.AddEntries(entries))
}

// AddStyleEntry adds an entry that only produces CSS.
func (b *Builder) AddStyleEntry(name string, sources ...string) *Builder {
	return b.record(b.store.AddStyleEntry(name, sources...))
}

// EnableVersioning toggles content hashes in output filenames.
func (b *Builder) EnableVersioning(enabled bool) *Builder {
	b.store.Versioning = enabled
	return b
}

// EnableSourceMaps toggles source maps.
func (b *Builder) EnableSourceMaps(enabled bool) *Builder {
	b.store.SourceMaps = enabled
	return b
}

// EnableSingleRuntimeChunk emits one runtime chunk shared by all entries.
func (b *Builder) EnableSingleRuntimeChunk() *Builder {
	on := true
	b.store.SingleRuntimeChunk = &on
	return b
}

// DisableSingleRuntimeChunk embeds the runtime in every entry.
func (b *Builder) DisableSingleRuntimeChunk() *Builder {
	off := false
	b.store.SingleRuntimeChunk = &off
	return b
}

// SplitEntryChunks splits shared code out of entry chunks.
func (b *Builder) SplitEntryChunks() *Builder {
	b.store.SplitEntryChunks = true
	return b
}

// AddCacheGroup adds a named split chunks cache group.
func (b *Builder) AddCacheGroup(name string, group options.CacheGroup) *Builder {
	return b.record(b.store.AddCacheGroup(name, group))
}

// CopyFiles copies static files into the output directory.
func (b *Builder) CopyFiles(rules ...options.CopyRule) *Builder {
	return b.record(b.store.CopyFiles(rules...))
}

// AddPlugin adds a webpack plugin. Without a priority it runs after every
// built-in plugin; with one it is ordered among them, lower first.
func (b *Builder) AddPlugin(plugin webpack.Plugin, priority ...int) *Builder {
	p, err := singlePriority(priority)
	if err != nil {
		return b.record(err)
	}
	return b.record(b.store.AddPlugin(plugin, p))
}

// AddRule adds a module rule, ordered like AddPlugin.
func (b *Builder) AddRule(rule webpack.Rule, priority ...int) *Builder {
	p, err := singlePriority(priority)
	if err != nil {
		return b.record(err)
	}
	return b.record(b.store.AddRule(rule, p))
}

func singlePriority(priority []int) (*int, error) {
	switch len(priority) {
	case 0:
		return nil, nil
	case 1:
		return options.Priority(priority[0]), nil
	default:
		return nil, errors.New(errors.ErrCodeConfiguration,
			fmt.Sprintf("at most one priority may be given, got %d", len(priority)))
	}
}

// AddAliases adds module resolution aliases.
func (b *Builder) AddAliases(aliases map[string]string) *Builder {
	b.store.AddAliases(aliases)
	return b
}

// AddExternals excludes modules from the bundle.
func (b *Builder) AddExternals(externals map[string]string) *Builder {
	b.store.AddExternals(externals)
	return b
}

// EnableIntegrityHashes adds subresource integrity hashes to entrypoints.json.
func (b *Builder) EnableIntegrityHashes(enabled bool, algorithms ...string) *Builder {
	return b.record(b.store.EnableIntegrityHashes(enabled, algorithms...))
}

// DisableCSSExtraction injects CSS with style tags instead of emitting files.
func (b *Builder) DisableCSSExtraction() *Builder {
	b.store.CSSExtraction.Disabled = true
	return b
}

// ConfigureFilenames overrides output filename patterns.
func (b *Builder) ConfigureFilenames(f options.Filenames) *Builder {
	return b.record(b.store.SetFilenames(f))
}

// ConfigureImageRule configures the built-in image rule.
func (b *Builder) ConfigureImageRule(rule options.AssetRule) *Builder {
	return b.record(b.store.SetAssetRule(options.RuleImages, rule))
}

// ConfigureFontRule configures the built-in font rule.
func (b *Builder) ConfigureFontRule(rule options.AssetRule) *Builder {
	return b.record(b.store.SetAssetRule(options.RuleFonts, rule))
}

// AutoProvideVariables makes modules available as free variables.
func (b *Builder) AutoProvideVariables(vars map[string]string) *Builder {
	b.store.AddProvide(vars)
	return b
}

// AutoProvidejQuery provides jQuery as $, jQuery and window.jQuery.
func (b *Builder) AutoProvidejQuery() *Builder {
	return b.AutoProvideVariables(map[string]string{
		"$":             "jquery",
		"jQuery":        "jquery",
		"window.jQuery": "jquery",
	})
}

// CleanupOutputBeforeBuild empties the output directory before each build.
func (b *Builder) CleanupOutputBeforeBuild(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.Cleanup, opts)
}

// EnableBuildNotifications shows desktop notifications for builds.
func (b *Builder) EnableBuildNotifications(enabled bool, opts ...LoaderOption) *Builder {
	t, err := toggle(opts)
	if err != nil {
		return b.record(err)
	}
	t.Enabled = enabled
	b.store.Notifications = t
	return b
}
