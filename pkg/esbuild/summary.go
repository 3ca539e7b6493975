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

package esbuild

import (
	"github.com/evanw/esbuild/pkg/api"
)

// Summary is a serializable view of the options Project sets.
type Summary struct {
	EntryPoints   map[string]string `json:"entryPoints" yaml:"entryPoints"`
	Outdir        string            `json:"outdir,omitempty" yaml:"outdir,omitempty"`
	Bundle        bool              `json:"bundle" yaml:"bundle"`
	Format        string            `json:"format" yaml:"format"`
	Platform      string            `json:"platform" yaml:"platform"`
	Target        string            `json:"target" yaml:"target"`
	Splitting     bool              `json:"splitting,omitempty" yaml:"splitting,omitempty"`
	Minify        bool              `json:"minify" yaml:"minify"`
	Sourcemap     string            `json:"sourcemap,omitempty" yaml:"sourcemap,omitempty"`
	EntryNames    string            `json:"entryNames" yaml:"entryNames"`
	ChunkNames    string            `json:"chunkNames" yaml:"chunkNames"`
	AssetNames    string            `json:"assetNames" yaml:"assetNames"`
	PublicPath    string            `json:"publicPath,omitempty" yaml:"publicPath,omitempty"`
	Define        map[string]string `json:"define,omitempty" yaml:"define,omitempty"`
	Loader        map[string]string `json:"loader,omitempty" yaml:"loader,omitempty"`
	JSX           string            `json:"jsx,omitempty" yaml:"jsx,omitempty"`
	JSXFactory    string            `json:"jsxFactory,omitempty" yaml:"jsxFactory,omitempty"`
	JSXFragment   string            `json:"jsxFragment,omitempty" yaml:"jsxFragment,omitempty"`
	Alias         map[string]string `json:"alias,omitempty" yaml:"alias,omitempty"`
	External      []string          `json:"external,omitempty" yaml:"external,omitempty"`
	Tsconfig      string            `json:"tsconfig,omitempty" yaml:"tsconfig,omitempty"`
	AbsWorkingDir string            `json:"absWorkingDir,omitempty" yaml:"absWorkingDir,omitempty"`
}

// Summarize describes opts with esbuild's command line names.
func Summarize(opts api.BuildOptions) *Summary {
	s := &Summary{
		EntryPoints:   make(map[string]string, len(opts.EntryPointsAdvanced)),
		Outdir:        opts.Outdir,
		Bundle:        opts.Bundle,
		Format:        formatName(opts.Format),
		Platform:      platformName(opts.Platform),
		Target:        targetName(opts.Target),
		Splitting:     opts.Splitting,
		Minify:        opts.MinifyWhitespace && opts.MinifyIdentifiers && opts.MinifySyntax,
		Sourcemap:     sourceMapName(opts.Sourcemap),
		EntryNames:    opts.EntryNames,
		ChunkNames:    opts.ChunkNames,
		AssetNames:    opts.AssetNames,
		PublicPath:    opts.PublicPath,
		Define:        opts.Define,
		JSX:           jsxName(opts.JSX),
		JSXFactory:    opts.JSXFactory,
		JSXFragment:   opts.JSXFragment,
		Alias:         opts.Alias,
		External:      opts.External,
		Tsconfig:      opts.Tsconfig,
		AbsWorkingDir: opts.AbsWorkingDir,
	}
	for _, ep := range opts.EntryPointsAdvanced {
		s.EntryPoints[ep.OutputPath] = ep.InputPath
	}
	if len(opts.Loader) > 0 {
		s.Loader = make(map[string]string, len(opts.Loader))
		for ext, l := range opts.Loader {
			s.Loader[ext] = loaderName(l)
		}
	}
	return s
}

func formatName(f api.Format) string {
	switch f {
	case api.FormatIIFE:
		return "iife"
	case api.FormatCommonJS:
		return "cjs"
	case api.FormatESModule:
		return "esm"
	default:
		return ""
	}
}

func platformName(p api.Platform) string {
	switch p {
	case api.PlatformNode:
		return "node"
	case api.PlatformNeutral:
		return "neutral"
	default:
		return "browser"
	}
}

func targetName(t api.Target) string {
	switch t {
	case api.ES2015:
		return "es2015"
	case api.ES2020:
		return "es2020"
	case api.ES2022:
		return "es2022"
	default:
		return "esnext"
	}
}

func sourceMapName(s api.SourceMap) string {
	switch s {
	case api.SourceMapLinked:
		return "linked"
	case api.SourceMapInline:
		return "inline"
	case api.SourceMapExternal:
		return "external"
	case api.SourceMapInlineAndExternal:
		return "both"
	default:
		return ""
	}
}

func jsxName(j api.JSX) string {
	switch j {
	case api.JSXAutomatic:
		return "automatic"
	case api.JSXPreserve:
		return "preserve"
	default:
		return ""
	}
}

func loaderName(l api.Loader) string {
	switch l {
	case api.LoaderFile:
		return "file"
	case api.LoaderDataURL:
		return "dataurl"
	case api.LoaderJSX:
		return "jsx"
	case api.LoaderTSX:
		return "tsx"
	case api.LoaderTS:
		return "ts"
	case api.LoaderCSS:
		return "css"
	case api.LoaderText:
		return "text"
	case api.LoaderCopy:
		return "copy"
	default:
		return "default"
	}
}
