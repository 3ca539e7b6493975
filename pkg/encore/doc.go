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

// Package encore provides the fluent builder that describes a webpack build
// and produces its configuration.
//
// # Overview
//
// A Builder owns one environment context, one option store and one
// validator. Builder methods record options; Build validates the combination
// and projects it into a webpack configuration:
//
//	b := encore.New().
//	    ConfigureRuntimeEnvironment(env.ModeProduction, env.RuntimeOptions{}).
//	    SetOutputPath("public/build").
//	    SetPublicPath("/build").
//	    AddEntry("app", "./assets/app.js").
//	    EnableSassLoader().
//	    EnableSingleRuntimeChunk().
//	    When(true, func(b *encore.Builder) { b.EnableVersioning(true) })
//
//	cfg, err := b.Build()
//
// # Errors
//
// Methods that can fail locally (an empty path, a duplicate entry name)
// record their error when called; Err reports the first one immediately and
// Build refuses to run while one is recorded. Problems that involve several
// features are found by Build and returned together as one
// *errors.InteractionErrors. A build never returns a partial configuration.
//
// # Lifecycle
//
// A successful Build consumes the recorded options: the store returns to its
// defaults while the environment stays configured. Reset clears everything.
// Builders are not safe for concurrent use; Fork gives each goroutine its own
// independent copy.
package encore
