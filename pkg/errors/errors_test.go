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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConfiguration, "output path cannot be empty")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeConfiguration {
		t.Errorf("expected code %s, got %s", ErrCodeConfiguration, err.Code)
	}
	if err.Message != "output path cannot be empty" {
		t.Errorf("expected message 'output path cannot be empty', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("bad yaml")
	ctx := map[string]any{
		"path": "encore.yaml",
	}

	err := WrapWithContext(ErrCodeInvalidRequest, "failed to parse recipe", cause, ctx)

	if err.Code != ErrCodeInvalidRequest {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidRequest, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["path"] != "encore.yaml" {
		t.Errorf("expected path to be encore.yaml")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeDuplicateKey, "duplicate entry"),
			expected: "[DUPLICATE_KEY] duplicate entry",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		config      bool
		interaction bool
		environment bool
	}{
		{"nil", nil, false, false, false},
		{"configuration", New(ErrCodeConfiguration, "x"), true, false, false},
		{"duplicate key", New(ErrCodeDuplicateKey, "x"), true, false, false},
		{"not configured", New(ErrCodeEnvironmentNotConfigured, "x"), false, false, true},
		{"already configured", New(ErrCodeEnvironmentAlreadyConfigured, "x"), false, false, true},
		{"wrapped", fmt.Errorf("build: %w", New(ErrCodeDuplicateKey, "x")), true, false, false},
		{
			name: "batch",
			err: &InteractionErrors{Errors: []*StructuredError{
				New(ErrCodeInteraction, "a"),
				New(ErrCodeInteraction, "b"),
			}},
			interaction: true,
		},
		{"plain error", errors.New("plain"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfiguration(tt.err); got != tt.config {
				t.Errorf("IsConfiguration() = %v, want %v", got, tt.config)
			}
			if got := IsInteraction(tt.err); got != tt.interaction {
				t.Errorf("IsInteraction() = %v, want %v", got, tt.interaction)
			}
			if got := IsEnvironment(tt.err); got != tt.environment {
				t.Errorf("IsEnvironment() = %v, want %v", got, tt.environment)
			}
		})
	}
}

func TestInteractionErrors(t *testing.T) {
	first := NewWithContext(ErrCodeInteraction, "versioning cannot be used with the dev server",
		map[string]any{FeaturesContextKey: []string{"versioning", "dev-server"}})
	second := NewWithContext(ErrCodeInteraction, "no entries",
		map[string]any{FeaturesContextKey: []string{"entries"}})

	batch := &InteractionErrors{Errors: []*StructuredError{first, second}}

	if batch.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", batch.Len())
	}

	want := []string{"dev-server", "entries", "versioning"}
	got := batch.Features()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Features() = %v, want %v", got, want)
	}

	if !errors.Is(batch, second) {
		t.Error("errors.Is should find batch members")
	}

	var se *StructuredError
	if !errors.As(batch, &se) {
		t.Fatal("errors.As should find a StructuredError member")
	}

	single := &InteractionErrors{Errors: []*StructuredError{first}}
	if single.Error() != first.Error() {
		t.Errorf("single batch Error() = %q, want %q", single.Error(), first.Error())
	}
}
