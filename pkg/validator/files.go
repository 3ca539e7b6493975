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
	"github.com/spf13/afero"
)

// FileChecker reports whether a file exists.
type FileChecker interface {
	Exists(path string) (bool, error)
}

// AferoFileChecker checks files on an afero filesystem.
type AferoFileChecker struct {
	fs afero.Fs
}

// NewFileChecker returns a FileChecker backed by fs. Use afero.NewOsFs() for
// the real filesystem and afero.NewMemMapFs() in tests.
func NewFileChecker(fs afero.Fs) *AferoFileChecker {
	return &AferoFileChecker{fs: fs}
}

// Exists implements FileChecker.
func (c *AferoFileChecker) Exists(path string) (bool, error) {
	return afero.Exists(c.fs, path)
}
