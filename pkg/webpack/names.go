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

package webpack

// Plugin names emitted by the projector. Each is the npm package the webpack
// config shim constructs.
const (
	PluginMiniCSSExtract   = "mini-css-extract-plugin"
	PluginDefine           = "webpack.DefinePlugin"
	PluginProvide          = "webpack.ProvidePlugin"
	PluginClean            = "clean-webpack-plugin"
	PluginVueLoader        = "vue-loader/VueLoaderPlugin"
	PluginForkTSChecker    = "fork-ts-checker-webpack-plugin"
	PluginNotifier         = "webpack-notifier"
	PluginCopy             = "copy-webpack-plugin"
	PluginEntrypoints      = "webpack-assets-manifest"
	PluginManifest         = "webpack-manifest-plugin"
	PluginFriendlyErrors   = "friendly-errors-webpack-plugin"
	PluginTerser           = "terser-webpack-plugin"
	PluginCSSMinimizer     = "css-minimizer-webpack-plugin"
	PluginHotModuleReplace = "webpack.HotModuleReplacementPlugin"
)

// Loader names.
const (
	LoaderBabel          = "babel-loader"
	LoaderCSS            = "css-loader"
	LoaderStyle          = "style-loader"
	LoaderMiniCSSExtract = "mini-css-extract-plugin/loader"
	LoaderPostCSS        = "postcss-loader"
	LoaderResolveURL     = "resolve-url-loader"
	LoaderSass           = "sass-loader"
	LoaderLess           = "less-loader"
	LoaderStylus         = "stylus-loader"
	LoaderTypeScript     = "ts-loader"
	LoaderVue            = "vue-loader"
	LoaderHandlebars     = "handlebars-loader"
)

// Mode values.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)
