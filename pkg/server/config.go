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
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/encore/pkg/defaults"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers are the application routes, each wrapped with the middleware chain.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int

	// MaxBodyBytes caps application request bodies; zero disables the cap.
	MaxBodyBytes int64

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns the defaults with environment overrides applied.
func NewConfig() *Config {
	return parseConfig()
}

// parseConfig reads ADDRESS, PORT, RATE_LIMIT, RATE_LIMIT_BURST and
// SHUTDOWN_TIMEOUT_SECONDS over the defaults. Invalid values are logged
// and ignored.
func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           os.Getenv("ADDRESS"),
		Port:              8080,
		RateLimit:         100,
		RateLimitBurst:    200,
		MaxBodyBytes:      defaults.MaxRecipeBytes,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	cfg.Port = envInt("PORT", cfg.Port, 1, 65535)
	cfg.RateLimit = rate.Limit(envInt("RATE_LIMIT", int(cfg.RateLimit), 1, 0))
	cfg.RateLimitBurst = envInt("RATE_LIMIT_BURST", cfg.RateLimitBurst, 1, 0)
	if s := envInt("SHUTDOWN_TIMEOUT_SECONDS", 0, 1, 0); s > 0 {
		cfg.ShutdownTimeout = time.Duration(s) * time.Second
	}

	return cfg
}

// envInt reads an integer in [lo, hi] from the environment; hi <= 0 means
// no upper bound.
func envInt(name string, def, lo, hi int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || (hi > 0 && v > hi) {
		slog.Warn("ignoring invalid environment value", "name", name, "value", raw)
		return def
	}
	return v
}
