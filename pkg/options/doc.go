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

// Package options holds the option store: the single mutable record of every
// entry, path, feature toggle and override callback configured for a build.
//
// Mutators on Store perform only the checks that can be decided locally: a
// required value is present, a value has the right shape, a unique key is not
// already taken. Cross-feature checks belong to the validator package, and
// turning a Store into a bundler configuration belongs to the projector.
//
// Override callbacks follow one convention for every configurable area. The
// callback receives the fully populated default; when it returns a non-nil
// value that value replaces the default, otherwise the (possibly mutated)
// default is kept:
//
//	store.Terser = func(o webpack.Options) webpack.Options {
//	    o["parallel"] = false
//	    return nil
//	}
package options
