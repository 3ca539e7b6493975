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

// Package env holds the environment context of a single build: which mode is
// active (development, production or dev-server) and the runtime options a
// command line would otherwise provide.
//
// A Context is always constructed explicitly and owned by one builder. There
// is no package-level instance, so independent builds in one process never
// share mode state.
//
//	ctx := env.New()
//	if err := ctx.Configure(env.ModeProduction, env.RuntimeOptions{}); err != nil {
//	    return err
//	}
//	if ctx.IsProduction() {
//	    // ...
//	}
package env
