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

package recipe

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/encore/pkg/defaults"
	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/errors"
)

// Format is a recipe encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"unsupported recipe file extension",
			map[string]any{"path": path, "supported": []string{".yaml", ".yml", ".json", ".hcl"}})
	}
}

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON, FormatHCL:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported recipe format %q", s))
	}
}

type parseConfig struct {
	mode     env.Mode
	filename string
}

// ParseOption customizes Parse and Load.
type ParseOption func(*parseConfig)

// WithMode sets the mode exposed to HCL expressions.
func WithMode(mode env.Mode) ParseOption {
	return func(c *parseConfig) {
		c.mode = mode
	}
}

// WithFilename names the source in HCL diagnostics.
func WithFilename(name string) ParseOption {
	return func(c *parseConfig) {
		c.filename = name
	}
}

// Load reads and parses the recipe at path from fs.
func Load(fs afero.Fs, path string, opts ...ParseOption) (*Recipe, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "recipe not found", err,
				map[string]any{"path": path})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to stat recipe", err)
	}
	if info.Size() > defaults.MaxRecipeBytes {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "recipe too large",
			map[string]any{"path": path, "size": info.Size(), "limit": defaults.MaxRecipeBytes})
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read recipe", err)
	}

	return Parse(data, format, append([]ParseOption{WithFilename(path)}, opts...)...)
}

// Parse decodes and validates a recipe.
func Parse(data []byte, format Format, opts ...ParseOption) (*Recipe, error) {
	start := time.Now()
	cfg := &parseConfig{filename: "recipe." + string(format)}
	for _, opt := range opts {
		opt(cfg)
	}

	r, err := decode(data, format, cfg)
	if err == nil {
		err = r.Validate()
	}
	observeParse(format, start, err)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func decode(data []byte, format Format, cfg *parseConfig) (*Recipe, error) {
	switch format {
	case FormatYAML, FormatJSON:
		return decodeYAML(data, cfg.filename)
	case FormatHCL:
		return decodeHCL(data, cfg.filename, cfg.mode)
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported recipe format %q", format))
	}
}

// decodeYAML also serves JSON, which is valid YAML.
func decodeYAML(data []byte, filename string) (*Recipe, error) {
	var r Recipe
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse recipe", err,
			map[string]any{"path": filename})
	}
	return &r, nil
}
