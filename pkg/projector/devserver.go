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
	"maps"
	"path/filepath"

	"github.com/NVIDIA/encore/pkg/defaults"
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// DevServer projects the dev-server section. It is nil outside dev-server mode.
func DevServer(in Input) *webpack.DevServer {
	if !in.Env.IsDevServer() {
		return nil
	}
	rt := in.Env.Options()

	ds := &webpack.DevServer{
		Host:   rt.Host,
		Port:   rt.Port,
		Server: "http",
		Hot:    rt.Hot,
		Static: &webpack.Static{
			Directory: filepath.Dir(filepath.Clean(in.Store.OutputPath)),
			Watch:     false,
		},
		Headers:      map[string]string{"Access-Control-Allow-Origin": "*"},
		Client:       &webpack.Client{Overlay: true},
		AllowedHosts: "all",
		LiveReload:   !rt.Hot,
		Compress:     true,
	}
	if ds.Host == "" {
		ds.Host = defaults.DevServerHost
	}
	if ds.Port == 0 {
		ds.Port = defaults.DevServerPort
	}
	if rt.HTTPS {
		ds.Server = "https"
	}
	return options.Apply(ds, in.Store.DevServer.Override)
}

// Resolve projects module resolution: extensions for enabled features and
// the caller's aliases.
func Resolve(in Input) *webpack.Resolve {
	s := in.Store
	ext := []string{".wasm", ".mjs", ".js", ".json"}
	if s.React.Enabled || s.Preact.Enabled {
		ext = append(ext, ".jsx")
	}
	if s.Vue.Enabled {
		ext = append(ext, ".vue")
	}
	if s.TypeScript.Enabled || s.BabelTypeScript.Enabled {
		ext = append(ext, ".ts", ".tsx")
	}

	r := &webpack.Resolve{Extensions: ext}
	if len(s.Aliases) > 0 {
		r.Alias = maps.Clone(s.Aliases)
	}
	return options.Apply(r, s.Resolve)
}

// Watch projects watch options. They are present when the build watches
// (runtime watch or dev server) or the caller configured them.
func Watch(in Input) *webpack.WatchOptions {
	if !in.Env.Options().Watch && !in.Env.IsDevServer() && in.Store.Watch == nil {
		return nil
	}
	w := &webpack.WatchOptions{
		AggregateTimeout: defaults.WatchAggregateTimeout,
		Ignored:          []string{"**/node_modules"},
	}
	return options.Apply(w, in.Store.Watch)
}
