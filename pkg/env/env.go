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

package env

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/encore/pkg/errors"
)

// Mode is the active build mode.
type Mode string

const (
	// ModeDevelopment builds unminified assets for local use.
	ModeDevelopment Mode = "development"
	// ModeProduction builds minified assets for deployment.
	ModeProduction Mode = "production"
	// ModeDevServer builds for the in-memory development server.
	ModeDevServer Mode = "dev-server"
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	return string(m)
}

// IsValid reports whether m is one of the recognized modes.
func (m Mode) IsValid() bool {
	switch m {
	case ModeDevelopment, ModeProduction, ModeDevServer:
		return true
	default:
		return false
	}
}

// SupportedModes returns the canonical mode names.
func SupportedModes() []string {
	return []string{
		string(ModeDevelopment),
		string(ModeProduction),
		string(ModeDevServer),
	}
}

// ParseMode converts a user supplied mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dev", "development":
		return ModeDevelopment, nil
	case "prod", "production":
		return ModeProduction, nil
	case "dev-server", "devserver", "dev_server":
		return ModeDevServer, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("invalid mode %q (must be one of %s)", s, strings.Join(SupportedModes(), ", ")),
			map[string]any{"mode": s})
	}
}

// RuntimeOptions are the settings a command line entry point would provide.
type RuntimeOptions struct {
	// Context is the base directory entries and loaders resolve against.
	Context string `json:"context,omitempty" yaml:"context,omitempty"`

	// Host and Port describe where the dev server listens.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// HTTPS serves the dev server over TLS.
	HTTPS bool `json:"https,omitempty" yaml:"https,omitempty"`

	// Hot enables hot module replacement under the dev server.
	Hot bool `json:"hot,omitempty" yaml:"hot,omitempty"`

	// KeepPublicPath stops the dev server from rewriting the public path.
	KeepPublicPath bool `json:"keepPublicPath,omitempty" yaml:"keepPublicPath,omitempty"`

	// Watch keeps the bundler running and rebuilding on change.
	Watch bool `json:"watch,omitempty" yaml:"watch,omitempty"`

	// Verbose asks the bundler for detailed stats output.
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Context is the environment of one build. The zero value is unconfigured.
type Context struct {
	mode       Mode
	options    RuntimeOptions
	configured bool
}

// New returns an unconfigured Context.
func New() *Context {
	return &Context{}
}

// Configure sets the mode and runtime options. Configuring again with the
// same values is a no-op; different values require Reset first.
func (c *Context) Configure(mode Mode, opts RuntimeOptions) error {
	if !mode.IsValid() {
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("invalid mode %q (must be one of %s)", mode, strings.Join(SupportedModes(), ", ")),
			map[string]any{"mode": string(mode)})
	}

	if opts.Port < 0 || opts.Port > 65535 {
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("invalid dev-server port %d", opts.Port),
			map[string]any{"port": opts.Port})
	}

	if c.configured {
		if c.mode == mode && c.options == opts {
			return nil
		}
		return errors.NewWithContext(errors.ErrCodeEnvironmentAlreadyConfigured,
			fmt.Sprintf("runtime environment already configured for %q; reset before configuring %q", c.mode, mode),
			map[string]any{"current": string(c.mode), "requested": string(mode)})
	}

	c.mode = mode
	c.options = opts
	c.configured = true
	return nil
}

// IsConfigured reports whether Configure has been called since the last Reset.
func (c *Context) IsConfigured() bool {
	return c.configured
}

// Require returns an environment error when the mode has not been configured.
func (c *Context) Require() error {
	if !c.configured {
		return errors.New(errors.ErrCodeEnvironmentNotConfigured,
			"runtime environment is not configured; call ConfigureRuntimeEnvironment or run through the CLI")
	}
	return nil
}

// Mode returns the active mode.
func (c *Context) Mode() (Mode, error) {
	if err := c.Require(); err != nil {
		return "", err
	}
	return c.mode, nil
}

// Options returns the runtime options.
func (c *Context) Options() RuntimeOptions {
	return c.options
}

// IsProduction reports whether the production mode is active.
func (c *Context) IsProduction() bool {
	return c.configured && c.mode == ModeProduction
}

// IsDev reports whether a non-production mode (development or dev-server) is active.
func (c *Context) IsDev() bool {
	return c.configured && (c.mode == ModeDevelopment || c.mode == ModeDevServer)
}

// IsDevServer reports whether the dev-server mode is active.
func (c *Context) IsDevServer() bool {
	return c.configured && c.mode == ModeDevServer
}

// Reset returns the Context to the unconfigured state.
func (c *Context) Reset() {
	*c = Context{}
}

// Clone returns an independent copy.
func (c *Context) Clone() *Context {
	cp := *c
	return &cp
}
