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
	"fmt"
	"slices"
	"strings"

	"github.com/NVIDIA/encore/pkg/defaults"
	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/validator"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// Filenames returns the effective filename patterns: caller patterns where
// set, content-hashed defaults under versioning and plain names otherwise.
func Filenames(in Input) options.Filenames {
	f := options.Filenames{
		JS:     "[name].js",
		CSS:    "[name].css",
		Images: "images/[name][ext]",
		Fonts:  "fonts/[name][ext]",
	}
	if in.Store.Versioning {
		contentHash := fmt.Sprintf("[contenthash:%d]", defaults.HashLength)
		assetHash := fmt.Sprintf("[hash:%d]", defaults.HashLength)
		f.JS = "[name]." + contentHash + ".js"
		f.CSS = "[name]." + contentHash + ".css"
		f.Images = "images/[name]." + assetHash + "[ext]"
		f.Fonts = "fonts/[name]." + assetHash + "[ext]"
	}

	user := in.Store.Filenames
	if user.JS != "" {
		f.JS = user.JS
	}
	if user.CSS != "" {
		f.CSS = user.CSS
	}
	if in.Store.ImageRule.Filename != "" {
		f.Images = in.Store.ImageRule.Filename
	}
	if user.Images != "" {
		f.Images = user.Images
	}
	if in.Store.FontRule.Filename != "" {
		f.Fonts = in.Store.FontRule.Filename
	}
	if user.Fonts != "" {
		f.Fonts = user.Fonts
	}
	return f
}

// DevServerURL returns the base URL the dev server listens on.
func DevServerURL(opts env.RuntimeOptions) string {
	scheme := "http"
	if opts.HTTPS {
		scheme = "https"
	}
	host := opts.Host
	if host == "" {
		host = defaults.DevServerHost
	}
	port := opts.Port
	if port == 0 {
		port = defaults.DevServerPort
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

// PublicPath returns the public path assets are referenced by. Under the dev
// server a relative public path is prefixed with the dev server URL unless
// the caller keeps the public path.
func PublicPath(in Input) string {
	p := in.Store.PublicPath
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	if in.Env.IsDevServer() && !in.Env.Options().KeepPublicPath && !validator.IsAbsoluteURL(p) {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		return DevServerURL(in.Env.Options()) + p
	}
	return p
}

// ManifestKeyPrefix returns the prefix for manifest.json keys: the caller's
// prefix when set, otherwise the public path without its leading slash.
func ManifestKeyPrefix(in Input) string {
	if in.Store.ManifestKeyPrefix != nil {
		return *in.Store.ManifestKeyPrefix
	}
	p := strings.TrimPrefix(in.Store.PublicPath, "/")
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// Output projects the output section.
func Output(in Input) *webpack.Output {
	names := Filenames(in)
	out := &webpack.Output{
		Path:                in.Store.OutputPath,
		Filename:            names.JS,
		ChunkFilename:       names.JS,
		AssetModuleFilename: "assets/[name][ext]",
		PublicPath:          PublicPath(in),
		Pathinfo:            !in.Env.IsProduction(),
	}
	if IntegrityEnabled(in) {
		out.CrossOriginLoading = "anonymous"
	}
	return options.Apply(out, in.Store.Output)
}

// Entries projects one entry per script or style entry.
func Entries(in Input) map[string][]string {
	out := make(map[string][]string, len(in.Store.Entries))
	for _, e := range in.Store.Entries {
		out[e.Name] = slices.Clone(e.Sources)
	}
	return out
}
