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

package server

import (
	"mime"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/NVIDIA/encore/pkg/header"
)

const (
	headerAPIVersion = "X-API-Version"

	// vendorMediaType prefixes versioned Accept values, for example
	// application/vnd.nvidia.encore.v1alpha1+json.
	vendorMediaType = "application/vnd.nvidia.encore."
)

// SupportedAPIVersions lists the versions a client may ask for, newest first.
func SupportedAPIVersions() []string {
	return []string{path.Base(header.APIVersion)}
}

// negotiateAPIVersion picks the first supported version named in the Accept
// header. Anything else gets the newest version.
func negotiateAPIVersion(r *http.Request) string {
	supported := SupportedAPIVersions()

	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || !strings.HasPrefix(mt, vendorMediaType) {
			continue
		}
		v, _, _ := strings.Cut(strings.TrimPrefix(mt, vendorMediaType), "+")
		if slices.Contains(supported, v) {
			return v
		}
	}

	return supported[0]
}
