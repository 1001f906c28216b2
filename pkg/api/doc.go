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

// Package api exposes a RecipeSet over HTTP.
//
// # Usage
//
//	reg, err := declaration.LoadFile(ctx, "pets.yaml")
//	if err != nil {
//	    return err
//	}
//	return api.Serve(ctx, reg, server.WithAddress("", 8080))
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET  /v1/recipes                - List recipes with their attributes in order
//   - GET  /v1/schema?recipe=Cat      - JSON Schema for one recipe
//   - POST /v1/instances?recipe=Cat   - Construct an instance from the request body
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness)
//   - GET /ready   - Readiness check, 503 while no recipes are loaded
//   - GET /metrics - Prometheus metrics
//
// # Request Body (POST /v1/instances)
//
// The body is the attribute mapping, in JSON or YAML. Both are read with the
// YAML decoder so integers stay integers. An empty body constructs from an
// empty mapping.
//
//	curl -X POST "http://localhost:8080/v1/instances?recipe=Cat" \
//	  -H "Content-Type: application/json" \
//	  -d '{"name": "Tom", "trained?": true}'
//
// A constructed instance is returned with its final values in attribute order
// and its rendered form:
//
//	{
//	  "recipe": "Cat",
//	  "values": {"name": "Tom", "trained?": true},
//	  "rendered": "#<Cat name=\"Tom\" trained?=true>"
//	}
//
// Construction failures return 422 with the error code as the response code
// (MISSING_ATTRIBUTE, UNRECOGNIZED_ATTRIBUTE, INVALID_VALUE, INPUT_SHAPE).
// Unknown recipes return 404.
package api
