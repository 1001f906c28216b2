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
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomdalling/value-type/pkg/serializer"
)

var errNotServing = errors.New("server is not accepting connections")

// handleHealth answers liveness checks; it only fails if the process cannot
// serve HTTP at all.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondHealth(w, r, "healthy", nil)
}

// handleReady answers readiness checks: the listener must be up and the
// application check, if any, must pass.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.respondHealth(w, r, "ready", s.readiness)
}

func (s *Server) readiness(ctx context.Context) error {
	if !s.isReady() {
		return errNotServing
	}
	if s.config.Readiness == nil {
		return nil
	}
	return s.config.Readiness(ctx)
}

func (s *Server) respondHealth(w http.ResponseWriter, r *http.Request, status string, check func(context.Context) error) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	resp := HealthResponse{Status: status, Timestamp: time.Now().UTC()}
	code := http.StatusOK
	if check != nil {
		if err := check(r.Context()); err != nil {
			resp.Status = "not_ready"
			resp.Reason = err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, code, resp)
}
