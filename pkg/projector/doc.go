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

// Package projector turns a validated option store into a webpack
// configuration.
//
// Project is a pure function of the store, the environment and the
// validation report. It is assembled from independent sub-projections, one
// per configuration area (Output, Entries, Module, Optimization, Plugins,
// DevServer, Resolve, Watch). Each sub-projection computes a populated
// default from the environment and the store, hands that default to the
// caller's override callback, and returns the result.
//
// Plugins and module rules are ordered with OrderedList: lower priorities
// come first, equal priorities keep insertion order, and caller items
// without a priority go last.
package projector
