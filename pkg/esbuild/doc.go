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

// Package esbuild projects an option store onto esbuild build options.
//
// It is an alternative target to the webpack projection for projects that
// only need what esbuild supports natively: JavaScript, JSX, TypeScript and
// plain CSS entries with file assets. Features esbuild cannot express (Sass,
// Vue, integrity hashes, webpack plugins, ...) are reported as notes instead
// of failing the projection.
//
// The returned api.BuildOptions are ready for api.Build; this package never
// runs a build itself.
package esbuild
