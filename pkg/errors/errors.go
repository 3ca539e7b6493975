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
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates caller misuse: a missing required option
	// or an invalid value shape.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	// ErrCodeDuplicateKey indicates an additive operation collided with an
	// existing unique key (e.g. an entry name).
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"
	// ErrCodeInteraction indicates two otherwise valid features were combined
	// incompatibly.
	ErrCodeInteraction ErrorCode = "INTERACTION"
	// ErrCodeEnvironmentNotConfigured indicates a mode-dependent operation ran
	// before the runtime environment was configured.
	ErrCodeEnvironmentNotConfigured ErrorCode = "ENVIRONMENT_NOT_CONFIGURED"
	// ErrCodeEnvironmentAlreadyConfigured indicates a contradictory second
	// environment configuration without an intervening reset.
	ErrCodeEnvironmentAlreadyConfigured ErrorCode = "ENVIRONMENT_ALREADY_CONFIGURED"

	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeRateLimitExceeded indicates the client exceeded an enforced request limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeMethodNotAllowed indicates the HTTP method is not allowed for the resource.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeUnavailable indicates a service or resource is temporarily unavailable.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// HasCode reports whether err, or any error it wraps, is a StructuredError
// with the given code. Batches are searched member by member.
func HasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var se *StructuredError
	if stderrors.As(err, &se) && se.Code == code {
		return true
	}
	var batch *InteractionErrors
	if stderrors.As(err, &batch) {
		for _, e := range batch.Errors {
			if e.Code == code {
				return true
			}
		}
	}
	return false
}

// IsConfiguration reports whether err is a caller misuse error.
func IsConfiguration(err error) bool {
	return HasCode(err, ErrCodeConfiguration) || HasCode(err, ErrCodeDuplicateKey)
}

// IsInteraction reports whether err carries at least one interaction error.
func IsInteraction(err error) bool {
	return HasCode(err, ErrCodeInteraction)
}

// IsEnvironment reports whether err is an environment (mode) error.
func IsEnvironment(err error) bool {
	return HasCode(err, ErrCodeEnvironmentNotConfigured) ||
		HasCode(err, ErrCodeEnvironmentAlreadyConfigured)
}

// FeaturesContextKey is the Context key under which interaction errors
// record the names of the features involved.
const FeaturesContextKey = "features"

// InteractionErrors is an ordered batch of interaction errors collected in a
// single validation pass.
type InteractionErrors struct {
	Errors []*StructuredError
}

// Error implements the error interface.
func (b *InteractionErrors) Error() string {
	if len(b.Errors) == 1 {
		return b.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d configuration problems found:", len(b.Errors))
	for _, e := range b.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Unwrap exposes every member for errors.Is and errors.As.
func (b *InteractionErrors) Unwrap() []error {
	out := make([]error, len(b.Errors))
	for i, e := range b.Errors {
		out[i] = e
	}
	return out
}

// Len returns the number of collected errors.
func (b *InteractionErrors) Len() int {
	return len(b.Errors)
}

// Features returns the sorted, de-duplicated feature names mentioned by the batch.
func (b *InteractionErrors) Features() []string {
	seen := make(map[string]bool)
	for _, e := range b.Errors {
		names, _ := e.Context[FeaturesContextKey].([]string)
		for _, n := range names {
			seen[n] = true
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
