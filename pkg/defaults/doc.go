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

// Package defaults provides centralized configuration constants for encore.
//
// This package defines the values every empty option store falls back to,
// the file names written by the generated bundler configuration, and the
// timeouts used by the HTTP API server. Centralizing these values keeps the
// builder, the projectors and the binaries consistent.
//
// # Categories
//
//   - Build defaults: output path, public path, hash length, manifest names
//   - Dev-server defaults: host and port used when the runtime omits them
//   - Server timeouts: HTTP server configuration for encored
//
// # Usage
//
//	import "github.com/NVIDIA/encore/pkg/defaults"
//
//	store.OutputPath = defaults.OutputPath
package defaults
