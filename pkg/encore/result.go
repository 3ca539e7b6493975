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

package encore

import (
	"fmt"

	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/esbuild"
	"github.com/NVIDIA/encore/pkg/header"
	"github.com/NVIDIA/encore/pkg/validator"
	"github.com/NVIDIA/encore/pkg/webpack"
)

// Result is the serializable outcome of one build.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Mode   string `json:"mode" yaml:"mode"`
	Target string `json:"target" yaml:"target"`

	Webpack *webpack.Config  `json:"webpack,omitempty" yaml:"webpack,omitempty"`
	ESBuild *esbuild.Summary `json:"esbuild,omitempty" yaml:"esbuild,omitempty"`

	// Notes name configured features the target cannot express.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`

	Warnings []validator.Issue `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// BuildResult builds for target and wraps the output with its warnings.
// Version is recorded in the header metadata when non-empty.
func (b *Builder) BuildResult(target, version string) (*Result, error) {
	res := &Result{Mode: b.modeLabel(), Target: target}
	res.Init(header.KindBuildResult, header.APIVersion, version)

	var report *validator.Report
	switch target {
	case TargetWebpack, "":
		res.Target = TargetWebpack
		cfg, r, err := b.buildWebpack()
		if err != nil {
			return nil, err
		}
		res.Webpack, report = cfg, r
	case TargetESBuild:
		opts, notes, r, err := b.buildESBuild()
		if err != nil {
			return nil, err
		}
		res.ESBuild, res.Notes, report = esbuild.Summarize(opts), notes, r
	default:
		return nil, errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("unsupported target %q", target),
			map[string]any{"supported": SupportedTargets()})
	}

	if report != nil {
		res.Warnings = report.Warnings
	}
	return res, nil
}
