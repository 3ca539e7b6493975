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

package serializer

import (
	"log/slog"
	"net/http"
)

// ContentType returns the media type for format.
func ContentType(format Format) string {
	switch format {
	case FormatYAML:
		return "application/yaml"
	case FormatTable:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// RespondJSON writes a JSON response with the given status code and data.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	Respond(w, statusCode, FormatJSON, data)
}

// RespondYAML writes a YAML response with the given status code and data.
func RespondYAML(w http.ResponseWriter, statusCode int, data any) {
	Respond(w, statusCode, FormatYAML, data)
}

// Respond encodes data before writing headers to prevent partial responses.
func Respond(w http.ResponseWriter, statusCode int, format Format, data any) {
	format = knownFormat(format)
	content, err := Marshal(format, data)
	if err != nil {
		slog.Error("response encoding failed", "error", err, "format", format)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentType(format))
	w.WriteHeader(statusCode)
	if _, err := w.Write(content); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}
