// Package api serves encore over HTTP.
//
// It is a thin layer over pkg/server: it configures logging and registers
// the application routes, while pkg/server owns the lifecycle, middleware
// and the health, readiness and metrics endpoints.
//
// # Endpoints
//
//   - POST /v1/config - build the recipe in the request body
//   - GET /health, GET /ready, GET /metrics
//
// # Request
//
// The body is a BuildRecipe. Its encoding follows the Content-Type header:
// application/json, application/yaml or application/hcl. A missing header
// is read as YAML.
//
// Query parameters:
//   - mode: production (default), dev or dev-server
//   - target: webpack (default) or esbuild
//   - format: json (default) or yaml
//   - context, host, port, https, hot, keepPublicPath, watch, verbose:
//     runtime options as a command line would pass them
//
// Example:
//
//	curl -X POST 'http://localhost:8080/v1/config?mode=dev-server&port=9000' \
//	  -H "Content-Type: application/yaml" \
//	  --data-binary @encore.yaml
//
// A recipe whose features conflict is answered with 400 and code
// INTERACTION; details.errors lists every conflict found, not just the
// first.
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/encore/pkg/api.version=1.0.0'"
package api
