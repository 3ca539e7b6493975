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

package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/serializer"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInvalidRequest,
		errors.ErrCodeConfiguration,
		errors.ErrCodeDuplicateKey,
		errors.ErrCodeInteraction,
		errors.ErrCodeEnvironmentNotConfigured,
		errors.ErrCodeEnvironmentAlreadyConfigured:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RetryableFromCode reports whether a client may retry the same request.
func RetryableFromCode(code errors.ErrorCode) bool {
	switch code {
	case errors.ErrCodeRateLimitExceeded, errors.ErrCodeUnavailable, errors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// WriteError writes an ErrorResponse.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err as an ErrorResponse. Structured errors keep
// their code and context; an interaction batch lists every member under
// details.errors. Anything else is an internal error.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, message string, extra map[string]any) {
	details := make(map[string]any, len(extra)+2)
	for k, v := range extra {
		details[k] = v
	}

	var batch *errors.InteractionErrors
	if stderrors.As(err, &batch) {
		members := make([]map[string]any, 0, batch.Len())
		for _, e := range batch.Errors {
			members = append(members, errorDetail(e))
		}
		details["errors"] = members
		details["features"] = batch.Features()
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInteraction, message, false, details)
		return
	}

	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		details["error"] = se.Error()
		for k, v := range se.Context {
			details[k] = v
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, message, RetryableFromCode(se.Code), details)
		return
	}

	details["error"] = err.Error()
	WriteError(w, r, http.StatusInternalServerError, errors.ErrCodeInternal, message, true, details)
}

func errorDetail(e *errors.StructuredError) map[string]any {
	d := map[string]any{
		"code":    string(e.Code),
		"message": e.Message,
	}
	for k, v := range e.Context {
		d[k] = v
	}
	return d
}
