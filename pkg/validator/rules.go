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

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/encore/pkg/defaults"
)

// Rule names.
const (
	RuleEntries         = "entries"
	RuleVersioning      = "versioning-dev-server"
	RuleTypeScript      = "typescript-strategy"
	RuleForkedChecker   = "forked-type-checking"
	RuleIntegrity       = "integrity-hashes"
	RuleAbsolutePublic  = "absolute-public-path"
	RuleJSXPresets      = "jsx-presets"
	RuleCSSExtraction   = "css-extraction"
	RuleRuntimeChunk    = "runtime-chunk"
	RuleCacheGroups     = "cache-groups"
	RuleDevServerPublic = "dev-server-public-path"
	RuleRequiredFiles   = "required-files"
)

// postCSSConfigFiles are the config files postcss-loader discovers on its own.
var postCSSConfigFiles = []string{
	defaults.PostCSSConfigFile,
	"postcss.config.cjs",
	"postcss.config.mjs",
	".postcssrc",
	".postcssrc.json",
}

// DefaultRules returns the built-in rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleEntries, Check: checkEntries},
		{Name: RuleVersioning, Check: checkVersioning},
		{Name: RuleTypeScript, Check: checkTypeScript},
		{Name: RuleForkedChecker, Check: checkForkedChecker},
		{Name: RuleIntegrity, Check: checkIntegrity},
		{Name: RuleAbsolutePublic, Check: checkAbsolutePublicPath},
		{Name: RuleJSXPresets, Check: checkJSXPresets},
		{Name: RuleCSSExtraction, Check: checkCSSExtraction},
		{Name: RuleRuntimeChunk, Check: checkRuntimeChunk},
		{Name: RuleCacheGroups, Check: checkCacheGroups},
		{Name: RuleDevServerPublic, Check: checkDevServerPublicPath},
		{Name: RuleRequiredFiles, Check: checkRequiredFiles},
	}
}

// IsAbsoluteURL reports whether p carries a scheme or is protocol-relative.
func IsAbsoluteURL(p string) bool {
	return strings.Contains(p, "://") || strings.HasPrefix(p, "//")
}

// DevServerRequested reports whether the dev server is in play: the mode is
// dev-server or dev-server options were configured.
func DevServerRequested(in Input) bool {
	return in.Env.IsDevServer() || in.Store.DevServer.Configured
}

func checkEntries(in Input, r *Report) {
	if len(in.Store.Entries) == 0 {
		r.AddError(RuleEntries,
			"no entries configured: call AddEntry or AddStyleEntry at least once",
			FeatureEntries)
	}
}

func checkVersioning(in Input, r *Report) {
	if in.Store.Versioning && DevServerRequested(in) {
		r.AddError(RuleVersioning,
			"versioning cannot be used with the dev-server, which serves unhashed in-memory files: "+
				"enable versioning only when not running the dev-server",
			FeatureVersioning, FeatureDevServer)
	}
}

func checkTypeScript(in Input, r *Report) {
	if in.Store.TypeScript.Enabled && in.Store.BabelTypeScript.Enabled {
		r.AddError(RuleTypeScript,
			"only one TypeScript strategy may be enabled: choose EnableTypeScriptLoader or EnableBabelTypeScriptPreset",
			FeatureTypeScriptLoader, FeatureBabelTypeScriptPreset)
	}
}

func checkForkedChecker(in Input, r *Report) {
	s := in.Store
	if s.ForkedTypeScriptChecker.Enabled && !s.TypeScript.Enabled && !s.BabelTypeScript.Enabled {
		r.AddError(RuleForkedChecker,
			"forked TypeScript type checking requires EnableTypeScriptLoader or EnableBabelTypeScriptPreset",
			FeatureForkedTypeScriptChecker, FeatureTypeScriptLoader)
	}
}

func checkIntegrity(in Input, r *Report) {
	s := in.Store
	if !s.Integrity.Enabled || s.Versioning || strings.Contains(s.Filenames.JS, "[contenthash") {
		return
	}
	r.AddWarning(RuleIntegrity,
		"integrity hashes require content-stable filenames: enable versioning or use [contenthash] "+
			"in the js filename; integrity hashes are disabled for this build",
		FeatureIntegrityHashes, FeatureVersioning)
	r.Disable(FeatureIntegrityHashes)
}

func checkAbsolutePublicPath(in Input, r *Report) {
	if IsAbsoluteURL(in.Store.PublicPath) && in.Store.ManifestKeyPrefix == nil {
		r.AddError(RuleAbsolutePublic,
			fmt.Sprintf("cannot determine how to prefix manifest keys for absolute public path %q: "+
				"call SetManifestKeyPrefix (for example SetManifestKeyPrefix(\"build/\"))", in.Store.PublicPath),
			FeaturePublicPath, FeatureManifestKeyPrefix)
	}
}

func checkJSXPresets(in Input, r *Report) {
	if in.Store.React.Enabled && in.Store.Preact.Enabled {
		r.AddError(RuleJSXPresets,
			"the React and Preact presets cannot be enabled together",
			FeatureReactPreset, FeaturePreactPreset)
	}
}

func checkCSSExtraction(in Input, r *Report) {
	s := in.Store
	if s.CSSExtraction.Disabled && (s.MiniCSSExtractLoader != nil || s.MiniCSSExtractPlugin != nil) {
		r.AddError(RuleCSSExtraction,
			"ConfigureMiniCSSExtractPlugin has no effect when CSS extraction is disabled: "+
				"remove the call or stop calling DisableCSSExtraction",
			FeatureCSSExtraction, FeatureMiniCSSExtractPlugin)
	}
}

func checkRuntimeChunk(in Input, r *Report) {
	if !in.Store.SingleRuntimeChunkDecided() {
		r.AddWarning(RuleRuntimeChunk,
			"call EnableSingleRuntimeChunk or DisableSingleRuntimeChunk; defaulting to no single runtime chunk",
			FeatureSingleRuntimeChunk)
	}
}

func checkCacheGroups(in Input, r *Report) {
	for _, cg := range in.Store.CacheGroups {
		if in.Store.HasEntry(cg.Name) {
			r.AddWarning(RuleCacheGroups,
				fmt.Sprintf("cache group %q has the same name as an entry; the generated chunk may overwrite the entry output", cg.Name),
				FeatureCacheGroups, FeatureEntries)
		}
	}
}

func checkDevServerPublicPath(in Input, r *Report) {
	if !in.Env.IsDevServer() || in.Env.Options().KeepPublicPath {
		return
	}
	if IsAbsoluteURL(in.Store.PublicPath) {
		r.AddError(RuleDevServerPublic,
			fmt.Sprintf("absolute public path %q cannot be used with the dev-server: "+
				"use a relative public path or keep the public path explicitly", in.Store.PublicPath),
			FeaturePublicPath, FeatureDevServer)
		return
	}
	r.AddWarning(RuleDevServerPublic,
		fmt.Sprintf("public path %q is rewritten to the dev-server URL; keep the public path to disable this", in.Store.PublicPath),
		FeaturePublicPath, FeatureDevServer)
}

func checkRequiredFiles(in Input, r *Report) {
	if in.Files == nil {
		return
	}
	s := in.Store
	base := in.Env.Options().Context

	if s.TypeScript.Enabled {
		config := defaults.TypeScriptConfigFile
		if cf, ok := s.TypeScript.Options["configFile"].(string); ok && cf != "" {
			config = cf
		}
		path := resolve(base, config)
		if ok, err := in.Files.Exists(path); err != nil || !ok {
			r.AddError(RuleRequiredFiles,
				fmt.Sprintf("the TypeScript loader requires %s", path),
				FeatureTypeScriptLoader)
		}
	}

	if s.PostCSS.Enabled && len(s.PostCSS.Options) == 0 && s.PostCSS.Override == nil {
		for _, name := range postCSSConfigFiles {
			if ok, err := in.Files.Exists(resolve(base, name)); err == nil && ok {
				return
			}
		}
		r.AddWarning(RuleRequiredFiles,
			fmt.Sprintf("postcss-loader is enabled without options and no %s was found", resolve(base, defaults.PostCSSConfigFile)),
			FeaturePostCSSLoader)
	}
}

func resolve(base, name string) string {
	if filepath.IsAbs(name) || base == "" {
		return name
	}
	return filepath.Join(base, name)
}
