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

// Package server provides the HTTP runtime behind `valuetype serve`.
//
// It owns the lifecycle and the cross-cutting concerns of the API; the
// application routes are supplied by the caller as handlers:
//
//	s := server.New(
//	    server.WithName("valuetype"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/recipes": h.HandleRecipes,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Middleware
//
// Every application handler runs behind a short pipeline. The outer stage
// assigns the request ID (X-Request-Id, generated when absent or not a UUID),
// negotiates the API version (Accept: application/vnd.valuetype.v1+json) and
// attaches a logger carrying the route and the ?recipe= being served; see
// Logger. When the handler returns it logs one line with the status, size
// and error code, and records valuetype_http_* metrics labelled by route and
// error code. Inside it, panics become 500 replies and a token bucket
// (golang.org/x/time/rate) answers 429 with Retry-After.
//
// # System Endpoints
//
//	GET /         Server name, version, readiness and routes
//	GET /health   Liveness check, always 200
//	GET /ready    Readiness check, 503 until Run starts listening or while
//	              the WithReadinessCheck function fails
//	GET /metrics  Prometheus metrics
//
// # Errors
//
// All errors share one JSON shape:
//
//	{
//	  "code": "INVALID_VALUE",
//	  "message": "attribute `Cat#name` is invalid: 7",
//	  "details": {"attribute": "name"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-02T12:00:00Z",
//	  "retryable": false
//	}
//
// # Configuration
//
//	PORT                      Listen port (default: 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  Graceful shutdown budget (default: 30)
package server
