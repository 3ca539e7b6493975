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
	"log/slog"
	"slices"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/options"
	"github.com/NVIDIA/encore/pkg/validator"
)

// Builder records build options and produces bundler configurations.
type Builder struct {
	env       *env.Context
	store     *options.Store
	validator *validator.Validator

	validatorOpts []validator.Option
	errs          []error
}

// Option is a functional option for configuring Builder instances.
type Option func(*Builder)

// WithEnvironment uses an existing environment context.
func WithEnvironment(c *env.Context) Option {
	return func(b *Builder) {
		b.env = c
	}
}

// WithValidator replaces the default validator.
func WithValidator(v *validator.Validator) Option {
	return func(b *Builder) {
		b.validator = v
	}
}

// WithFileChecker enables validation rules that look for files on disk.
// Ignored when WithValidator is also given.
func WithFileChecker(fc validator.FileChecker) Option {
	return func(b *Builder) {
		b.validatorOpts = append(b.validatorOpts, validator.WithFileChecker(fc))
	}
}

// WithValidatorOptions passes options to the default validator.
func WithValidatorOptions(opts ...validator.Option) Option {
	return func(b *Builder) {
		b.validatorOpts = append(b.validatorOpts, opts...)
	}
}

// New creates a Builder with a fresh store and an unconfigured environment.
func New(opts ...Option) *Builder {
	b := &Builder{
		store: options.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.env == nil {
		b.env = env.New()
	}
	if b.validator == nil {
		b.validator = validator.New(b.validatorOpts...)
	}
	return b
}

// record keeps err, if any, and returns b for chaining.
func (b *Builder) record(err error) *Builder {
	if err != nil {
		slog.Debug("builder call failed", "error", err)
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns the first error recorded by a builder call, or nil.
func (b *Builder) Err() error {
	if len(b.errs) == 0 {
		return nil
	}
	return b.errs[0]
}

// Errors returns every recorded error in call order.
func (b *Builder) Errors() []error {
	return slices.Clone(b.errs)
}

// Store gives read access to the option store.
func (b *Builder) Store() *options.Store {
	return b.store
}

// Environment gives read access to the environment context.
func (b *Builder) Environment() *env.Context {
	return b.env
}

// ConfigureRuntimeEnvironment sets the mode and runtime options without a CLI.
func (b *Builder) ConfigureRuntimeEnvironment(mode env.Mode, opts env.RuntimeOptions) *Builder {
	return b.record(b.env.Configure(mode, opts))
}

// IsRuntimeEnvironmentConfigured reports whether a mode has been set.
func (b *Builder) IsRuntimeEnvironmentConfigured() bool {
	return b.env.IsConfigured()
}

// IsProduction reports whether the production mode is active.
func (b *Builder) IsProduction() bool {
	return b.env.IsProduction()
}

// IsDev reports whether a non-production mode is active.
func (b *Builder) IsDev() bool {
	return b.env.IsDev()
}

// IsDevServer reports whether the dev-server mode is active.
func (b *Builder) IsDevServer() bool {
	return b.env.IsDevServer()
}

// When applies fn when cond is true.
func (b *Builder) When(cond bool, fn func(*Builder)) *Builder {
	if cond && fn != nil {
		fn(b)
	}
	return b
}

// WhenFunc applies fn when pred, evaluated against b, is true.
func (b *Builder) WhenFunc(pred func(*Builder) bool, fn func(*Builder)) *Builder {
	if pred != nil && pred(b) && fn != nil {
		fn(b)
	}
	return b
}

// Reset clears the store, the environment and recorded errors.
func (b *Builder) Reset() *Builder {
	b.store.Reset()
	b.env.Reset()
	b.errs = nil
	return b
}

// Fork returns an independent builder with a deep copy of the store, the
// environment and recorded errors. The validator is shared; it holds no
// per-build state.
func (b *Builder) Fork() (*Builder, error) {
	store, err := b.store.Clone()
	if err != nil {
		return nil, err
	}
	return &Builder{
		env:       b.env.Clone(),
		store:     store,
		validator: b.validator,
		errs:      slices.Clone(b.errs),
	}, nil
}
