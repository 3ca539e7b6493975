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

package projector

import (
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/webpack"
)

const nodeModules = `[\\/]node_modules[\\/]`

// Module projects the module rules: built-in rules for enabled features at
// priority 0, in BuiltinRules order, then caller rules by priority.
func Module(in Input) (*webpack.Module, error) {
	var rules OrderedList[webpack.Rule]

	for _, name := range options.BuiltinRules() {
		rule, ok, err := BuiltinRule(in, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rule.Name = string(name)
		r := options.Apply(&rule, in.Store.LoaderRules[name])
		r.Name = string(name)
		rules.Insert(*r, 0)
	}

	for _, spec := range in.Store.Rules {
		rule, err := options.DeepCopy(spec.Rule)
		if err != nil {
			return nil, err
		}
		rules.Add(rule, spec.Priority)
	}

	return &webpack.Module{Rules: rules.Items()}, nil
}

// BuiltinRule projects a single built-in rule before its override runs. The
// boolean is false when the feature behind the rule is not enabled.
func BuiltinRule(in Input, name options.RuleName) (webpack.Rule, bool, error) {
	s := in.Store
	switch name {
	case options.RuleJavaScript:
		babel, err := BabelLoader(in)
		if err != nil {
			return webpack.Rule{}, false, err
		}
		test := `\.(cjs|mjs|jsx?)$`
		if s.BabelTypeScript.Enabled {
			test = `\.(cjs|mjs|jsx?|tsx?)$`
		}
		return webpack.Rule{Test: test, Exclude: nodeModules, Use: []webpack.Loader{babel}}, true, nil

	case options.RuleCSS:
		use, err := styleLoaders(in)
		if err != nil {
			return webpack.Rule{}, false, err
		}
		return webpack.Rule{Test: `\.css$`, Use: use}, true, nil

	case options.RuleImages:
		if s.ImageRule.Disabled {
			return webpack.Rule{}, false, nil
		}
		return assetRule(`\.(png|jpe?g|gif|ico|svg|webp|avif)$`, s.ImageRule, Filenames(in).Images), true, nil

	case options.RuleFonts:
		if s.FontRule.Disabled {
			return webpack.Rule{}, false, nil
		}
		return assetRule(`\.(woff2?|ttf|eot|otf)$`, s.FontRule, Filenames(in).Fonts), true, nil

	case options.RuleSass:
		return preprocessorRule(in, s.Sass, `\.s[ac]ss$`, webpack.LoaderSass, true)

	case options.RuleLess:
		return preprocessorRule(in, s.Less, `\.less$`, webpack.LoaderLess, false)

	case options.RuleStylus:
		return preprocessorRule(in, s.Stylus, `\.styl$`, webpack.LoaderStylus, false)

	case options.RuleTypeScript:
		if !s.TypeScript.Enabled {
			return webpack.Rule{}, false, nil
		}
		babel, err := BabelLoader(in)
		if err != nil {
			return webpack.Rule{}, false, err
		}
		tsOpts := webpack.Options{
			"silent":        true,
			"transpileOnly": s.ForkedTypeScriptChecker.Enabled,
		}
		if s.Vue.Enabled {
			tsOpts["appendTsSuffixTo"] = []string{`\.vue$`}
		}
		tsOpts, err = toggleOptions(tsOpts, s.TypeScript)
		if err != nil {
			return webpack.Rule{}, false, err
		}
		return webpack.Rule{
			Test:    `\.tsx?$`,
			Exclude: nodeModules,
			Use:     []webpack.Loader{babel, {Loader: webpack.LoaderTypeScript, Options: tsOpts}},
		}, true, nil

	case options.RuleVue:
		if !s.Vue.Enabled {
			return webpack.Rule{}, false, nil
		}
		vueOpts, err := toggleOptions(webpack.Options{"compilerOptions": map[string]any{}}, s.Vue)
		if err != nil {
			return webpack.Rule{}, false, err
		}
		return webpack.Rule{Test: `\.vue$`, Use: []webpack.Loader{{Loader: webpack.LoaderVue, Options: vueOpts}}}, true, nil

	case options.RuleHandlebars:
		if !s.Handlebars.Enabled {
			return webpack.Rule{}, false, nil
		}
		hbsOpts, err := toggleOptions(webpack.Options{"precompileOptions": map[string]any{}}, s.Handlebars)
		if err != nil {
			return webpack.Rule{}, false, err
		}
		return webpack.Rule{
			Test: `\.(handlebars|hbs)$`,
			Use:  []webpack.Loader{{Loader: webpack.LoaderHandlebars, Options: hbsOpts}},
		}, true, nil
	}
	return webpack.Rule{}, false, nil
}

// BabelLoader projects the babel-loader with preset-env, the JSX and
// TypeScript presets for enabled features, and the caller's overrides.
func BabelLoader(in Input) (webpack.Loader, error) {
	s := in.Store

	presetEnv := options.Apply(webpack.Options{
		"modules":     false,
		"targets":     map[string]any{},
		"useBuiltIns": false,
	}, s.BabelPresetEnv)

	presets := []any{[]any{"@babel/preset-env", presetEnv}}
	plugins := []any{}

	if s.React.Enabled {
		reactOpts, err := toggleOptions(webpack.Options{"runtime": "automatic"}, s.React)
		if err != nil {
			return webpack.Loader{}, err
		}
		presets = append(presets, []any{"@babel/preset-react", reactOpts})
	}
	if s.Preact.Enabled {
		preactOpts, err := toggleOptions(webpack.Options{"pragma": "h", "pragmaFrag": "Fragment"}, s.Preact)
		if err != nil {
			return webpack.Loader{}, err
		}
		plugins = append(plugins, []any{"@babel/plugin-transform-react-jsx", preactOpts})
	}
	if s.BabelTypeScript.Enabled {
		tsOpts, err := toggleOptions(webpack.Options{"allowDeclareFields": true}, s.BabelTypeScript)
		if err != nil {
			return webpack.Loader{}, err
		}
		presets = append(presets, []any{"@babel/preset-typescript", tsOpts})
	}

	babel := options.Apply(webpack.Options{
		"cacheDirectory": true,
		"sourceType":     "unambiguous",
		"presets":        presets,
		"plugins":        plugins,
	}, s.Babel)

	return webpack.Loader{Loader: webpack.LoaderBabel, Options: babel}, nil
}

// styleLoaders returns the shared style chain followed by extra loaders:
// the extract loader (or style-loader when extraction is disabled),
// css-loader and, when enabled, postcss-loader.
func styleLoaders(in Input, extra ...webpack.Loader) ([]webpack.Loader, error) {
	s := in.Store
	var chain []webpack.Loader

	if s.CSSExtraction.Disabled {
		chain = append(chain, webpack.Loader{
			Loader:  webpack.LoaderStyle,
			Options: options.Apply(webpack.Options{"injectType": "styleTag"}, s.StyleLoader),
		})
	} else {
		chain = append(chain, webpack.Loader{
			Loader:  webpack.LoaderMiniCSSExtract,
			Options: options.Apply(webpack.Options{"esModule": true}, s.MiniCSSExtractLoader),
		})
	}

	var after []webpack.Loader
	if s.PostCSS.Enabled {
		postcss, err := toggleOptions(webpack.Options{"sourceMap": s.SourceMaps}, s.PostCSS)
		if err != nil {
			return nil, err
		}
		after = append(after, webpack.Loader{Loader: webpack.LoaderPostCSS, Options: postcss})
	}
	after = append(after, extra...)

	chain = append(chain, webpack.Loader{
		Loader: webpack.LoaderCSS,
		Options: options.Apply(webpack.Options{
			"sourceMap":     s.SourceMaps,
			"importLoaders": len(after),
		}, s.CSSLoader),
	})
	return append(chain, after...), nil
}

// preprocessorRule builds the rule for a CSS preprocessor loader. Sass runs
// behind resolve-url-loader, which needs the preprocessor's source maps.
func preprocessorRule(in Input, t options.Toggle, test, loader string, resolveURLs bool) (webpack.Rule, bool, error) {
	if !t.Enabled {
		return webpack.Rule{}, false, nil
	}

	var extra []webpack.Loader
	sourceMap := in.Store.SourceMaps
	if resolveURLs {
		extra = append(extra, webpack.Loader{
			Loader:  webpack.LoaderResolveURL,
			Options: webpack.Options{"sourceMap": sourceMap},
		})
		sourceMap = true
	}

	opts, err := toggleOptions(webpack.Options{"sourceMap": sourceMap}, t)
	if err != nil {
		return webpack.Rule{}, false, err
	}
	extra = append(extra, webpack.Loader{Loader: loader, Options: opts})

	use, err := styleLoaders(in, extra...)
	if err != nil {
		return webpack.Rule{}, false, err
	}
	return webpack.Rule{Test: test, Use: use}, true, nil
}

func assetRule(test string, r options.AssetRule, filename string) webpack.Rule {
	rule := webpack.Rule{
		Test:      test,
		Type:      "asset/resource",
		Generator: webpack.Options{"filename": filename},
	}
	if r.MaxSize > 0 {
		rule.Type = "asset"
		rule.Parser = webpack.Options{"dataUrlCondition": map[string]any{"maxSize": r.MaxSize}}
	}
	return rule
}
