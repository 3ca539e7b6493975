package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/encore/pkg/defaults"
	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/recipe"
	"github.com/NVIDIA/encore/pkg/server"
)

const testRecipe = `
kind: BuildRecipe
apiVersion: encore.nvidia.com/v1alpha1
name: shop
entries:
  app: [./assets/app.js]
singleRuntimeChunk: true
overlays:
  - mode: production
    versioning: true
`

type resultBody struct {
	Kind    string `json:"kind" yaml:"kind"`
	Mode    string `json:"mode" yaml:"mode"`
	Target  string `json:"target" yaml:"target"`
	Webpack *struct {
		Mode      string              `json:"mode" yaml:"mode"`
		Entry     map[string][]string `json:"entry" yaml:"entry"`
		DevServer *struct {
			Port int `json:"port" yaml:"port"`
		} `json:"devServer" yaml:"devServer"`
	} `json:"webpack" yaml:"webpack"`
	ESBuild *struct {
		EntryPoints map[string]string `json:"entryPoints" yaml:"entryPoints"`
	} `json:"esbuild" yaml:"esbuild"`
}

func post(t *testing.T, query, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/config"+query, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	NewConfigHandler("v0.0.1").HandleConfig(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleConfig(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		contentType string
		wantMode    string
		wantTarget  string
	}{
		{"defaults", "", "application/yaml", "production", "webpack"},
		{"no content type", "", "", "production", "webpack"},
		{"dev mode", "?mode=dev", "application/x-yaml; charset=utf-8", "development", "webpack"},
		{"esbuild target", "?target=esbuild", "text/yaml", "production", "esbuild"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, tt.query, tt.contentType, testRecipe)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var res resultBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, "BuildResult", res.Kind)
			assert.Equal(t, tt.wantMode, res.Mode)
			assert.Equal(t, tt.wantTarget, res.Target)
			if tt.wantTarget == "webpack" {
				require.NotNil(t, res.Webpack)
				assert.Equal(t, []string{"./assets/app.js"}, res.Webpack.Entry["app"])
			} else {
				require.NotNil(t, res.ESBuild)
				assert.Equal(t, "./assets/app.js", res.ESBuild.EntryPoints["app"])
			}
		})
	}
}

func TestHandleConfig_DevServerRuntime(t *testing.T) {
	body := strings.ReplaceAll(testRecipe, "versioning: true", "versioning: false")
	w := post(t, "?mode=dev-server&port=9100&hot=true&format=yaml", "application/yaml", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

	var res resultBody
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Webpack)
	require.NotNil(t, res.Webpack.DevServer)
	assert.Equal(t, 9100, res.Webpack.DevServer.Port)
}

func TestHandleConfig_JSONAndHCL(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"json", "application/json", `{"entries": {"app": ["./assets/app.js"]}, "singleRuntimeChunk": true}`},
		{"hcl", "application/hcl", `
entries = { app = ["./assets/app.js"] }
single_runtime_chunk = true
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, "", tt.contentType, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}
}

func TestHandleConfig_Errors(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
	}{
		{"bad mode", "?mode=staging", "application/yaml", testRecipe, http.StatusBadRequest, "CONFIGURATION"},
		{"bad target", "?target=rollup", "application/yaml", testRecipe, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad format", "?format=table", "application/yaml", testRecipe, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad port", "?port=http", "application/yaml", testRecipe, http.StatusBadRequest, "INVALID_REQUEST"},
		{"port out of range", "?port=70000", "application/yaml", testRecipe, http.StatusBadRequest, "CONFIGURATION"},
		{"bad flag", "?hot=maybe", "application/yaml", testRecipe, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unsupported content type", "", "text/plain", testRecipe, http.StatusBadRequest, "INVALID_REQUEST"},
		{"empty body", "", "application/yaml", "", http.StatusBadRequest, "INVALID_REQUEST"},
		{"malformed recipe", "", "application/yaml", "entries: [", http.StatusBadRequest, "INVALID_REQUEST"},
		{"no entries", "", "application/yaml", "singleRuntimeChunk: true", http.StatusBadRequest, "INTERACTION"},
		{"duplicate entry", "", "application/yaml", `
entries: {app: [./a.js]}
styleEntries: {app: [./a.css]}
`, http.StatusBadRequest, "DUPLICATE_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, tt.query, tt.contentType, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestHandleConfig_InteractionBatch(t *testing.T) {
	body := testRecipe + `
versioning: true
loaders:
  react: {}
  preact: {}
`
	w := post(t, "?mode=dev-server", "application/yaml", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, "INTERACTION", resp.Code)
	assert.False(t, resp.Retryable)

	members, ok := resp.Details["errors"].([]any)
	require.True(t, ok, "details: %v", resp.Details)
	assert.Len(t, members, 2)
	assert.Contains(t, resp.Details["features"], "react-preset")
}

func TestHandleConfig_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/config", nil)
	w := httptest.NewRecorder()
	NewConfigHandler("dev").HandleConfig(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, w).Code)
}

func TestHandleConfig_TooLarge(t *testing.T) {
	body := "name: " + strings.Repeat("x", 2<<20)
	w := post(t, "", "application/yaml", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.InDelta(t, defaults.MaxRecipeBytes, resp.Details["limit"], 0)
}

func TestHandleConfig_ReadFailure(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/config", iotest.ErrReader(io.ErrUnexpectedEOF))
	req.Header.Set("Content-Type", "application/yaml")
	w := httptest.NewRecorder()
	NewConfigHandler("v0.0.1").HandleConfig(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Equal(t, io.ErrUnexpectedEOF.Error(), resp.Details["error"])
}

func TestParseConfigRequest(t *testing.T) {
	req, err := parseConfigRequest(map[string][]string{
		"mode":           {"dev-server"},
		"context":        {"/srv/app"},
		"host":           {"0.0.0.0"},
		"port":           {"9000"},
		"https":          {"true"},
		"keepPublicPath": {"1"},
	})
	require.NoError(t, err)
	assert.Equal(t, env.ModeDevServer, req.mode)
	assert.Equal(t, env.RuntimeOptions{
		Context:        "/srv/app",
		Host:           "0.0.0.0",
		Port:           9000,
		HTTPS:          true,
		KeepPublicPath: true,
	}, req.runtime)
}

func TestRecipeFormat(t *testing.T) {
	tests := []struct {
		contentType string
		want        recipe.Format
		wantErr     bool
	}{
		{"", recipe.FormatYAML, false},
		{"application/json", recipe.FormatJSON, false},
		{"application/json; charset=utf-8", recipe.FormatJSON, false},
		{"application/yaml", recipe.FormatYAML, false},
		{"text/hcl", recipe.FormatHCL, false},
		{"application/xml", "", true},
		{";;", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			got, err := recipeFormat(tt.contentType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoutes(t *testing.T) {
	routes := Routes()
	require.Contains(t, routes, "/v1/config")
	assert.NotNil(t, routes["/v1/config"])
	assert.Equal(t, "encored", name)
}
