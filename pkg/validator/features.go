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

package validator

// Feature names a configurable feature in issues and error contexts.
type Feature string

const (
	FeatureEntries                 Feature = "entries"
	FeatureVersioning              Feature = "versioning"
	FeatureDevServer               Feature = "dev-server"
	FeatureTypeScriptLoader        Feature = "typescript-loader"
	FeatureBabelTypeScriptPreset   Feature = "babel-typescript-preset"
	FeatureForkedTypeScriptChecker Feature = "forked-typescript-checker"
	FeatureIntegrityHashes         Feature = "integrity-hashes"
	FeaturePublicPath              Feature = "public-path"
	FeatureManifestKeyPrefix       Feature = "manifest-key-prefix"
	FeatureReactPreset             Feature = "react-preset"
	FeaturePreactPreset            Feature = "preact-preset"
	FeatureCSSExtraction           Feature = "css-extraction"
	FeatureMiniCSSExtractPlugin    Feature = "mini-css-extract-plugin"
	FeatureSingleRuntimeChunk      Feature = "single-runtime-chunk"
	FeatureCacheGroups             Feature = "cache-groups"
	FeaturePostCSSLoader           Feature = "postcss-loader"
)
