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

package validator

import (
	"log/slog"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/header"
	"github.com/NVIDIA/encore/pkg/options"
)

// Input is what every rule reads. Files is nil when no FileChecker is set.
type Input struct {
	Store *options.Store
	Env   *env.Context
	Files FileChecker
}

// Rule is a single named interaction check. Check records issues on the
// report and must not mutate the input.
type Rule struct {
	Name  string
	Check func(in Input, r *Report)
}

// Validator runs a set of rules against an option store.
type Validator struct {
	// Version is stamped into report metadata (typically the CLI version).
	Version string

	rules []Rule
	files FileChecker
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithFileChecker enables rules that check for files on disk.
func WithFileChecker(fc FileChecker) Option {
	return func(v *Validator) {
		v.files = fc
	}
}

// WithRules appends rules after the built-in ones.
func WithRules(rules ...Rule) Option {
	return func(v *Validator) {
		v.rules = append(v.rules, rules...)
	}
}

// New creates a new Validator with the built-in rules and the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{
		rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Rules returns the names of the configured rules in evaluation order.
func (v *Validator) Rules() []string {
	names := make([]string, 0, len(v.rules))
	for _, r := range v.rules {
		names = append(names, r.Name)
	}
	return names
}

// Validate runs every rule and returns the collected report. The store and
// the environment are only read.
func (v *Validator) Validate(store *options.Store, envctx *env.Context) *Report {
	report := NewReport()
	report.Init(header.KindValidationReport, header.APIVersion, v.Version)

	if envctx == nil {
		envctx = env.New()
	}
	if mode, err := envctx.Mode(); err == nil {
		report.Mode = mode.String()
	}
	if store == nil {
		store = options.New()
	}

	in := Input{Store: store, Env: envctx, Files: v.files}
	for _, rule := range v.rules {
		rule.Check(in, report)
	}

	slog.Debug("validation complete",
		"mode", report.Mode,
		"rules", len(v.rules),
		"errors", len(report.Errors),
		"warnings", len(report.Warnings),
		"status", report.Status)

	return report
}
