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

// Package server provides the HTTP runtime shared by encore services.
//
// The server is stateless. Every request carries its own recipe, so any
// number of replicas can run behind a load balancer.
//
// # Architecture
//
//   - Rate limiting using a token bucket (golang.org/x/time/rate)
//   - Request body cap (Config.MaxBodyBytes)
//   - Request ID tracking (X-Request-Id, UUID)
//   - API version negotiation through application/vnd.nvidia.encore.<version>+json
//   - Panic recovery
//   - Prometheus RED metrics and a /metrics endpoint
//   - Health and readiness probes
//   - Graceful shutdown on SIGINT and SIGTERM
//
// # Usage
//
//	s := server.New(
//	    server.WithName("encored"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/config": handler.HandleConfig,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Handlers registered through WithHandler are wrapped with the full
// middleware chain. /health, /ready and /metrics are not rate limited.
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorFromErr, which
// produce a uniform ErrorResponse:
//
//	{
//	  "code": "INTERACTION",
//	  "message": "Build rejected",
//	  "details": {"errors": [...]},
//	  "requestId": "2f1c...",
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "retryable": false
//	}
//
// # Configuration
//
// Defaults come from pkg/defaults. ADDRESS, PORT, RATE_LIMIT,
// RATE_LIMIT_BURST and SHUTDOWN_TIMEOUT_SECONDS override them.
package server
