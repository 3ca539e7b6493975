package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/encore/pkg/logging"
	"github.com/NVIDIA/encore/pkg/server"
)

const (
	name           = "encored"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/encore/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Routes returns the application routes served behind the server middleware.
func Routes() map[string]http.HandlerFunc {
	h := NewConfigHandler(version)
	return map[string]http.HandlerFunc{
		"/v1/config": h.HandleConfig,
	}
}

// Serve starts the API server and blocks until shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
