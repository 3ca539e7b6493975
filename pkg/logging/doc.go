// Package logging configures structured logging for the encore binaries.
//
// Logs are JSON on stderr and carry the module and version of the process
// that wrote them. Debug level adds the source location.
//
// # Usage
//
//	logging.SetDefaultStructuredLogger("encored", version)
//	logging.SetDefaultStructuredLoggerWithLevel("encore", version, "debug")
//
// Library packages never configure logging; they call slog directly:
//
//	slog.Warn(issue.Message, "build_id", id, "rule", issue.Rule)
//	slog.Debug("build complete", "target", "webpack", "entries", 3)
//
// # Levels
//
// debug, info (default), warn or warning, error; case-insensitive. The
// LOG_LEVEL environment variable sets the level for SetDefaultStructuredLogger:
//
//	LOG_LEVEL=debug encored
//
// The CLI takes the same values through --log-level.
//
// # Output
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "call EnableSingleRuntimeChunk or DisableSingleRuntimeChunk; defaulting to no single runtime chunk",
//	    "module": "encore",
//	    "version": "v1.0.0",
//	    "build_id": "4b1c0a0e-6a86-4bb5-9d0b-2f43a1f9b7a1",
//	    "rule": "runtime-chunk"
//	}
package logging
