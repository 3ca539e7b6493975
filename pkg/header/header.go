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

package header

import (
	"fmt"
	"time"
)

// APIVersion is the API version of every encore document.
const APIVersion = "encore.nvidia.com/v1alpha1"

// Kind represents the type of an encore document.
type Kind string

const (
	// KindBuildRecipe is a declarative build description.
	KindBuildRecipe Kind = "BuildRecipe"
	// KindBuildResult wraps one or more projected bundler configurations.
	KindBuildResult Kind = "BuildResult"
	// KindValidationReport is the outcome of validating a recipe.
	KindValidationReport Kind = "ValidationReport"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindBuildRecipe, KindBuildResult, KindValidationReport:
		return true
	default:
		return false
	}
}

// Header carries the kind, API version and metadata of a document.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind and API version and stamps the creation time and, when
// non-empty, the tool version into Metadata.
func (h *Header) Init(kind Kind, apiVersion string, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = make(map[string]string)

	h.Metadata["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata["version"] = version
	}
}

// Check verifies that a decoded document declares the expected kind and a
// supported API version. Empty fields are accepted.
func (h *Header) Check(kind Kind) error {
	if h.Kind != "" && !h.Kind.IsValid() {
		return fmt.Errorf("unknown kind %q", h.Kind)
	}
	if h.Kind != "" && h.Kind != kind {
		return fmt.Errorf("unexpected kind %q, want %q", h.Kind, kind)
	}
	if h.APIVersion != "" && h.APIVersion != APIVersion {
		return fmt.Errorf("unsupported apiVersion %q, want %q", h.APIVersion, APIVersion)
	}
	return nil
}
