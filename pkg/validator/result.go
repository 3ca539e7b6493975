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
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/header"
)

// ValidationStatus represents the overall validation outcome.
type ValidationStatus string

const (
	// ValidationStatusPass indicates no errors and no warnings.
	ValidationStatusPass ValidationStatus = "pass"

	// ValidationStatusWarn indicates warnings but no errors.
	ValidationStatusWarn ValidationStatus = "warn"

	// ValidationStatusFail indicates one or more errors.
	ValidationStatusFail ValidationStatus = "fail"
)

// Issue is a single error or warning raised by a rule.
type Issue struct {
	// Rule is the name of the rule that raised the issue.
	Rule string `json:"rule" yaml:"rule"`

	// Features names every feature involved.
	Features []Feature `json:"features" yaml:"features"`

	// Message is the actionable, human-readable description.
	Message string `json:"message" yaml:"message"`
}

// Report is the outcome of one validation pass.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Mode is the environment mode the store was validated against.
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Status is the overall validation status.
	Status ValidationStatus `json:"status" yaml:"status"`

	Errors   []Issue `json:"errors" yaml:"errors"`
	Warnings []Issue `json:"warnings" yaml:"warnings"`

	// Disabled lists features a warning switched off for this build.
	Disabled map[Feature]bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// NewReport creates a Report with initialized collections.
func NewReport() *Report {
	return &Report{
		Status:   ValidationStatusPass,
		Errors:   make([]Issue, 0),
		Warnings: make([]Issue, 0),
		Disabled: make(map[Feature]bool),
	}
}

// AddError records an interaction error.
func (r *Report) AddError(rule, message string, features ...Feature) {
	r.Errors = append(r.Errors, Issue{Rule: rule, Features: features, Message: message})
	r.Status = ValidationStatusFail
}

// AddWarning records a warning.
func (r *Report) AddWarning(rule, message string, features ...Feature) {
	r.Warnings = append(r.Warnings, Issue{Rule: rule, Features: features, Message: message})
	if r.Status == ValidationStatusPass {
		r.Status = ValidationStatusWarn
	}
}

// Disable switches a best-effort feature off for this build.
func (r *Report) Disable(f Feature) {
	if r.Disabled == nil {
		r.Disabled = make(map[Feature]bool)
	}
	r.Disabled[f] = true
}

// IsDisabled reports whether f was switched off. A nil Report disables nothing.
func (r *Report) IsDisabled(f Feature) bool {
	if r == nil {
		return false
	}
	return r.Disabled[f]
}

// OK reports whether the report carries no errors.
func (r *Report) OK() bool {
	return r == nil || len(r.Errors) == 0
}

// Err returns every error as one *errors.InteractionErrors, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	batch := &errors.InteractionErrors{Errors: make([]*errors.StructuredError, 0, len(r.Errors))}
	for _, issue := range r.Errors {
		batch.Errors = append(batch.Errors, errors.NewWithContext(
			errors.ErrCodeInteraction, issue.Message,
			map[string]any{
				"rule":                    issue.Rule,
				errors.FeaturesContextKey: featureNames(issue.Features),
			}))
	}
	return batch
}

func featureNames(features []Feature) []string {
	out := make([]string, len(features))
	for i, f := range features {
		out[i] = string(f)
	}
	return out
}
