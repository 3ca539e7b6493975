package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NVIDIA/encore/pkg/defaults"
	"github.com/NVIDIA/encore/pkg/encore"
	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/recipe"
	"github.com/NVIDIA/encore/pkg/serializer"
	"github.com/NVIDIA/encore/pkg/server"
)

// ConfigHandler turns recipes posted over HTTP into bundler configurations.
type ConfigHandler struct {
	version string
}

// NewConfigHandler returns a handler that stamps version into every result.
func NewConfigHandler(version string) *ConfigHandler {
	return &ConfigHandler{version: version}
}

// configRequest is the decoded query of a config request.
type configRequest struct {
	mode    env.Mode
	target  string
	format  serializer.Format
	runtime env.RuntimeOptions
}

// HandleConfig builds the posted recipe for the mode and target named in the
// query and responds with the result. Interaction errors are returned as one
// batch in the error details.
func (h *ConfigHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.ConfigHandlerTimeout)
	defer cancel()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}

	req, err := parseConfigRequest(r.URL.Query())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid config request", nil)
		return
	}

	format, err := recipeFormat(r.Header.Get("Content-Type"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Unsupported recipe format", nil)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, defaults.MaxRecipeBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidRequest,
				"Recipe too large", false, map[string]any{"limit": tooLarge.Limit})
			return
		}
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Failed to read recipe", false, map[string]any{"error": err.Error()})
		return
	}
	if len(data) == 0 {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Recipe cannot be empty", false, nil)
		return
	}

	rcp, err := recipe.Parse(data, format, recipe.WithMode(req.mode))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid recipe", nil)
		return
	}

	slog.Debug("config request",
		"recipe", rcp.Name,
		"mode", req.mode,
		"target", req.target,
		"format", req.format)

	result, err := h.build(ctx, rcp, req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to build configuration", nil)
		return
	}

	serializer.Respond(w, http.StatusOK, req.format, result)
}

func (h *ConfigHandler) build(ctx context.Context, rcp *recipe.Recipe, req *configRequest) (*encore.Result, error) {
	b := encore.New().ConfigureRuntimeEnvironment(req.mode, req.runtime)
	if err := rcp.Apply(b); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "request canceled", err)
	}
	return b.BuildResult(req.target, h.version)
}

func parseConfigRequest(q url.Values) (*configRequest, error) {
	req := &configRequest{
		mode:   env.ModeProduction,
		target: encore.TargetWebpack,
		format: serializer.FormatJSON,
	}

	if v := q.Get("mode"); v != "" {
		mode, err := env.ParseMode(v)
		if err != nil {
			return nil, err
		}
		req.mode = mode
	}

	if v := q.Get("target"); v != "" {
		if v != encore.TargetWebpack && v != encore.TargetESBuild {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("unsupported target %q", v),
				map[string]any{"supported": encore.SupportedTargets()})
		}
		req.target = v
	}

	if v := q.Get("format"); v != "" {
		f := serializer.Format(v)
		if f != serializer.FormatJSON && f != serializer.FormatYAML {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("unsupported response format %q", v),
				map[string]any{"supported": []string{"json", "yaml"}})
		}
		req.format = f
	}

	rt := env.RuntimeOptions{
		Context: q.Get("context"),
		Host:    q.Get("host"),
	}
	if v := q.Get("port"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"invalid port", err, map[string]any{"port": v})
		}
		rt.Port = port
	}
	flags := map[string]*bool{
		"https":          &rt.HTTPS,
		"hot":            &rt.Hot,
		"keepPublicPath": &rt.KeepPublicPath,
		"watch":          &rt.Watch,
		"verbose":        &rt.Verbose,
	}
	for name, dst := range flags {
		v := q.Get(name)
		if v == "" {
			continue
		}
		on, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid value for %s", name), err, map[string]any{name: v})
		}
		*dst = on
	}
	req.runtime = rt

	return req, nil
}

// recipeFormat maps a request Content-Type to a recipe format. An empty
// Content-Type is read as YAML.
func recipeFormat(contentType string) (recipe.Format, error) {
	if contentType == "" {
		return recipe.FormatYAML, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"invalid Content-Type", err, map[string]any{"contentType": contentType})
	}
	switch mt {
	case "application/json":
		return recipe.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return recipe.FormatYAML, nil
	case "application/hcl", "text/hcl", "application/x-hcl":
		return recipe.FormatHCL, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported Content-Type %q", mt),
			map[string]any{"supported": []string{"application/json", "application/yaml", "application/hcl"}})
	}
}
