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

package defaults

import "time"

// Build defaults applied to an empty option store.
const (
	// OutputPath is the directory generated assets are written to.
	OutputPath = "public/build"

	// PublicPath is the URL prefix the generated assets are served from.
	PublicPath = "/build"

	// HashLength is the number of content hash characters in versioned filenames.
	HashLength = 8

	// ManifestFileName is the asset manifest written by the manifest plugin.
	ManifestFileName = "manifest.json"

	// EntrypointsFileName lists the files each entry needs at runtime.
	EntrypointsFileName = "entrypoints.json"

	// IntegrityAlgorithm is used when integrity hashes are enabled without
	// an explicit algorithm list.
	IntegrityAlgorithm = "sha384"

	// TypeScriptConfigFile is the compiler configuration expected by ts-loader.
	TypeScriptConfigFile = "tsconfig.json"

	// PostCSSConfigFile is the configuration postcss-loader discovers on its own.
	PostCSSConfigFile = "postcss.config.js"
)

// Dev-server defaults used when the runtime options leave them empty.
const (
	// DevServerHost is the host the dev server binds to.
	DevServerHost = "localhost"

	// DevServerPort is the port the dev server listens on.
	DevServerPort = 8080
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Handler limits for HTTP request processing.
const (
	// ConfigHandlerTimeout is the timeout for configuration generation requests.
	ConfigHandlerTimeout = 10 * time.Second

	// MaxRecipeBytes caps the size of a recipe accepted over HTTP.
	MaxRecipeBytes = 1 << 20
)

// Watch defaults.
const (
	// WatchAggregateTimeout is the delay in milliseconds before a rebuild
	// after the first changed file.
	WatchAggregateTimeout = 300
)
