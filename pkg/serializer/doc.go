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

// Package serializer writes build results in JSON, YAML or table form.
//
// Usage:
//
//	writer := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "webpack.yaml")
//	defer writer.Close()
//	if err := writer.Serialize(ctx, result); err != nil {
//		return err
//	}
//
// The table format flattens the JSON form of a value into dotted keys, so
// it follows the same field names and ordering rules as FormatJSON:
//
//	FIELD                 VALUE
//	-----                 -----
//	entry.main.[0]        ./assets/app.js
//	output.path           public/build
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, cfg)
//	serializer.Respond(w, http.StatusOK, serializer.FormatYAML, cfg)
//
// Responses are buffered so an encoding error never produces a partial body.
package serializer
