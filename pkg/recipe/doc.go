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

// Package recipe loads declarative build recipes and applies them to an
// encore.Builder.
//
// A recipe describes the same options as the fluent builder API. It can be
// written in YAML, JSON or HCL:
//
//	kind: BuildRecipe
//	apiVersion: encore.nvidia.com/v1alpha1
//	name: storefront
//	outputPath: public/build
//	publicPath: /build
//	entries:
//	  app: [./assets/app.js]
//	loaders:
//	  sass: {}
//	overlays:
//	  - mode: production
//	    versioning: true
//
// HCL recipes can branch on the build mode through the mode, production and
// dev_server variables:
//
//	name        = "storefront"
//	output_path = "public/build"
//	versioning  = production
//	entries     = { app = ["./assets/app.js"] }
//
//	loader "sass" {}
//
//	overlay "dev-server" {
//	  dev_server = { port = 9000 }
//	}
//
// Loading:
//
//	r, err := recipe.Load(afero.NewOsFs(), "encore.yaml", recipe.WithMode(env.ModeProduction))
//	if err != nil {
//	    return err
//	}
//	b := encore.New().ConfigureRuntimeEnvironment(env.ModeProduction, env.RuntimeOptions{})
//	if err := r.Apply(b); err != nil {
//	    return err
//	}
//	cfg, err := b.Build()
//
// Overlays only apply when the builder's environment is configured in the
// named mode at the time Apply runs.
package recipe
