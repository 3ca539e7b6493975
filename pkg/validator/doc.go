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

// Package validator checks an option store for feature interactions before
// it is projected into a bundler configuration.
//
// # Overview
//
// Every rule runs on every validation; a failing rule never stops the
// others, so a caller sees all problems in one pass. The validator reads the
// store and the environment but never mutates either. Outcomes are collected
// into a Report:
//
//   - Errors: features combined incompatibly (versioning with the dev
//     server, two TypeScript strategies, two JSX presets, ...)
//   - Warnings: suspicious but buildable combinations
//   - Disabled: best-effort features switched off by a warning, such as
//     integrity hashes on filenames that are not content-stable
//
// # Usage
//
//	v := validator.New(validator.WithFileChecker(validator.NewFileChecker(afero.NewOsFs())))
//	report := v.Validate(store, envctx)
//	if err := report.Err(); err != nil {
//	    return err // *errors.InteractionErrors
//	}
//
// # File Checks
//
// Some features depend on files outside the store (tsconfig.json,
// postcss.config.js). Those checks run only when a FileChecker is configured;
// without one the validator performs no I/O.
package validator
