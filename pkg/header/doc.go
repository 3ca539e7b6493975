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

// Package header provides the common header carried by encore documents:
// build recipes, build results and validation reports.
//
// # Header Structure
//
//	type Header struct {
//	    Kind       Kind              `json:"kind" yaml:"kind"`
//	    APIVersion string            `json:"apiVersion" yaml:"apiVersion"`
//	    Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
//	}
//
// # Usage
//
//	var h header.Header
//	h.Init(header.KindBuildResult, header.APIVersion, "v0.3.0")
//
// Serialized:
//
//	kind: BuildResult
//	apiVersion: encore.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-12-30T10:30:00Z"
//	  version: v0.3.0
//
// # Kinds
//
//   - BuildRecipe: declarative build description read by the CLI and API
//   - BuildResult: projected bundler configurations, one per mode
//   - ValidationReport: errors and warnings for a recipe
//
// Decoders call Check to reject documents of the wrong kind or an
// unsupported API version. Both fields are optional in input documents.
package header
