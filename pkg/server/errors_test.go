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
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/encore/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want int
	}{
		{errors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{errors.ErrCodeConfiguration, http.StatusBadRequest},
		{errors.ErrCodeDuplicateKey, http.StatusBadRequest},
		{errors.ErrCodeInteraction, http.StatusBadRequest},
		{errors.ErrCodeEnvironmentNotConfigured, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{errors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{errors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{errors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	assert.True(t, RetryableFromCode(errors.ErrCodeRateLimitExceeded))
	assert.True(t, RetryableFromCode(errors.ErrCodeInternal))
	assert.False(t, RetryableFromCode(errors.ErrCodeInteraction))
	assert.False(t, RetryableFromCode(errors.ErrCodeDuplicateKey))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteErrorFromErr(t *testing.T) {
	t.Run("interaction batch", func(t *testing.T) {
		batch := &errors.InteractionErrors{Errors: []*errors.StructuredError{
			errors.NewWithContext(errors.ErrCodeInteraction, "versioning with dev server",
				map[string]any{errors.FeaturesContextKey: []string{"versioning", "dev-server"}}),
			errors.NewWithContext(errors.ErrCodeInteraction, "no entries",
				map[string]any{errors.FeaturesContextKey: []string{"entries"}}),
		}}

		rec := httptest.NewRecorder()
		WriteErrorFromErr(rec, httptest.NewRequest(http.MethodPost, "/", nil),
			fmt.Errorf("build: %w", batch), "Build rejected", map[string]any{"mode": "dev"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, string(errors.ErrCodeInteraction), resp.Code)
		assert.Equal(t, "dev", resp.Details["mode"])
		members, ok := resp.Details["errors"].([]any)
		require.True(t, ok)
		assert.Len(t, members, 2)
		assert.ElementsMatch(t, []any{"dev-server", "entries", "versioning"}, resp.Details["features"])
	})

	t.Run("structured", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := errors.NewWithContext(errors.ErrCodeDuplicateKey, "entry exists", map[string]any{"name": "main"})
		WriteErrorFromErr(rec, httptest.NewRequest(http.MethodPost, "/", nil), err, "Invalid recipe", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, string(errors.ErrCodeDuplicateKey), resp.Code)
		assert.Equal(t, "main", resp.Details["name"])
		assert.False(t, resp.Retryable)
		assert.NotEmpty(t, resp.RequestID)
	})

	t.Run("plain", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteErrorFromErr(rec, httptest.NewRequest(http.MethodPost, "/", nil), fmt.Errorf("boom"), "Failed", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, decodeError(t, rec).Retryable)
	})
}
