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

// LoaderOption customizes a loader or plugin toggle.
type LoaderOption func(*options.Toggle) error

// WithOptions merges a copy of o over the computed default options. Later
// edits to o do not reach the builder.
func WithOptions(o webpack.Options) LoaderOption {
	cp, err := options.DeepCopy(o)
	return func(t *options.Toggle) error {
		if err != nil {
			return err
		}
		if t.Options == nil {
			t.Options = webpack.Options{}
		}
		for k, v := range cp {
			t.Options[k] = v
		}
		return nil
	}
}

// WithOverride edits the merged options before they are emitted.
func WithOverride(fn options.Override[webpack.Options]) LoaderOption {
	return func(t *options.Toggle) error {
		t.Override = fn
		return nil
	}
}

func toggle(opts []LoaderOption) (options.Toggle, error) {
	t := options.Toggle{Enabled: true}
	for _, opt := range opts {
		if err := opt(&t); err != nil {
			return options.Toggle{}, err
		}
	}
	return t, nil
}

// setToggle stores the toggle built from opts in dst. On error dst is left
// unchanged and the error is recorded.
func (b *Builder) setToggle(dst *options.Toggle, opts []LoaderOption) *Builder {
	t, err := toggle(opts)
	if err != nil {
		return b.record(err)
	}
	*dst = t
	return b
}

// EnableSassLoader compiles .scss and .sass files.
func (b *Builder) EnableSassLoader(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.Sass, opts)
}

// EnableLessLoader compiles .less files.
func (b *Builder) EnableLessLoader(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.Less, opts)
}

// EnableStylusLoader compiles .styl files.
func (b *Builder) EnableStylusLoader(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.Stylus, opts)
}

// EnablePostCSSLoader runs postcss-loader after css-loader.
func (b *Builder) EnablePostCSSLoader(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.PostCSS, opts)
}

// EnableTypeScriptLoader compiles TypeScript with ts-loader.
func (b *Builder) EnableTypeScriptLoader(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.TypeScript, opts)
}

// EnableForkedTypeScriptTypesChecking type checks in a separate process.
func (b *Builder) EnableForkedTypeScriptTypesChecking(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.ForkedTypeScriptChecker, opts)
}

// EnableBabelTypeScriptPreset strips TypeScript types with Babel.
func (b *Builder) EnableBabelTypeScriptPreset(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.BabelTypeScript, opts)
}

// EnableReactPreset compiles JSX for React.
func (b *Builder) EnableReactPreset(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.React, opts)
}

// EnablePreactPreset compiles JSX for Preact.
func (b *Builder) EnablePreactPreset(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.Preact, opts)
}

// EnableVueLoader compiles single file components.
func (b *Builder) EnableVueLoader(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.Vue, opts)
}

// EnableHandlebarsLoader compiles .hbs and .handlebars templates.
func (b *Builder) EnableHandlebarsLoader(opts ...LoaderOption) *Builder {
	return b.setToggle(&b.store.Handlebars, opts)
}

func nilCallback(method string) error {
	return errors.New(errors.ErrCodeConfiguration, fmt.Sprintf("%s: callback cannot be nil", method))
}

// setOverride stores fn in dst, recording an error for a nil callback.
func setOverride[T any](b *Builder, method string, dst *options.Override[T], fn options.Override[T]) *Builder {
	if fn == nil {
		return b.record(nilCallback(method))
	}
	*dst = fn
	return b
}

// ConfigureBabel edits the babel-loader options.
func (b *Builder) ConfigureBabel(fn options.Override[webpack.Options]) *Builder {
	return setOverride(b, "ConfigureBabel", &b.store.Babel, fn)
}

// ConfigureBabelPresetEnv edits the @babel/preset-env options.
func (b *Builder) ConfigureBabelPresetEnv(fn options.Override[webpack.Options]) *Builder {
	return setOverride(b, "ConfigureBabelPresetEnv", &b.store.BabelPresetEnv, fn)
}

// ConfigureCSSLoader edits the css-loader options.
func (b *Builder) ConfigureCSSLoader(fn options.Override[webpack.Options]) *Builder {
	return setOverride(b, "ConfigureCSSLoader", &b.store.CSSLoader, fn)
}

// ConfigureStyleLoader edits the style-loader options used when CSS
// extraction is disabled.
func (b *Builder) ConfigureStyleLoader(fn options.Override[webpack.Options]) *Builder {
	return setOverride(b, "ConfigureStyleLoader", &b.store.StyleLoader, fn)
}

// ConfigureMiniCSSExtractPlugin edits the extract loader and plugin
// options. Either callback may be nil, not both.
func (b *Builder) ConfigureMiniCSSExtractPlugin(loader, plugin options.Override[webpack.Options]) *Builder {
	if loader == nil && plugin == nil {
		return b.record(nilCallback("ConfigureMiniCSSExtractPlugin"))
	}
	b.store.MiniCSSExtractLoader = loader
	b.store.MiniCSSExtractPlugin = plugin
	return b
}

// ConfigureTerserPlugin edits the terser minimizer options.
func (b *Builder) ConfigureTerserPlugin(fn options.Override[webpack.Options]) *Builder {
	return setOverride(b, "ConfigureTerserPlugin", &b.store.Terser, fn)
}

// ConfigureCSSMinimizerPlugin edits the CSS minimizer options.
func (b *Builder) ConfigureCSSMinimizerPlugin(fn options.Override[webpack.Options]) *Builder {
	return setOverride(b, "ConfigureCSSMinimizerPlugin", &b.store.CSSMinimizer, fn)
}

// ConfigureManifestPlugin edits the manifest plugin options.
func (b *Builder) ConfigureManifestPlugin(fn options.Override[webpack.Options]) *Builder {
	return setOverride(b, "ConfigureManifestPlugin", &b.store.Manifest, fn)
}

// ConfigureDefinePlugin edits the define plugin definitions.
func (b *Builder) ConfigureDefinePlugin(fn options.Override[webpack.Options]) *Builder {
	return setOverride(b, "ConfigureDefinePlugin", &b.store.DefinePlugin, fn)
}

// ConfigureSplitChunks edits the split chunks section.
func (b *Builder) ConfigureSplitChunks(fn options.Override[*webpack.SplitChunks]) *Builder {
	return setOverride(b, "ConfigureSplitChunks", &b.store.SplitChunks, fn)
}

// ConfigureWatchOptions edits watch options.
func (b *Builder) ConfigureWatchOptions(fn options.Override[*webpack.WatchOptions]) *Builder {
	return setOverride(b, "ConfigureWatchOptions", &b.store.Watch, fn)
}

// ConfigureOutput edits the output section.
func (b *Builder) ConfigureOutput(fn options.Override[*webpack.Output]) *Builder {
	return setOverride(b, "ConfigureOutput", &b.store.Output, fn)
}

// ConfigureResolve edits the resolve section.
func (b *Builder) ConfigureResolve(fn options.Override[*webpack.Resolve]) *Builder {
	return setOverride(b, "ConfigureResolve", &b.store.Resolve, fn)
}

// ConfigureDevServerOptions marks the dev server as configured and edits its
// section. fn may be nil. The section itself is only emitted in dev-server mode.
func (b *Builder) ConfigureDevServerOptions(fn options.Override[*webpack.DevServer]) *Builder {
	b.store.DevServer = options.DevServerToggle{Configured: true, Override: fn}
	return b
}

// ConfigureLoaderRule edits a built-in module rule.
func (b *Builder) ConfigureLoaderRule(name options.RuleName, fn options.Override[*webpack.Rule]) *Builder {
	return b.record(b.store.SetLoaderRule(name, fn))
}
