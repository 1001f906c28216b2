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
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// wrap applies the request pipeline to the application handler mounted at
// route: observe, then recover, then rate limit.
func (s *Server) wrap(route string, h http.HandlerFunc) http.HandlerFunc {
	return s.observe(route, s.recoverPanics(s.limit(route, h)))
}

// observe gives the request its ID, API version and scoped logger, then
// reports the outcome to the log and to the metrics once next returns.
func (s *Server) observe(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		id := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		version := negotiateAPIVersion(r)

		logger := slog.With("requestID", id, "method", r.Method, "route", route)
		if name := r.URL.Query().Get("recipe"); name != "" {
			logger = logger.With("recipe", name)
		}

		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)
		ctx = context.WithValue(ctx, contextKeyAPIVersion, version)
		ctx = context.WithValue(ctx, contextKeyLogger, logger)

		ex := record(w)
		ex.Header().Set("X-Request-Id", id)
		SetAPIVersionHeader(ex, version)

		next(ex, r.WithContext(ctx))

		elapsed := time.Since(start)
		observeRequest(r.Method, route, ex, elapsed)

		level := slog.LevelDebug
		if ex.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		attrs := []any{"status", ex.status, "bytes", ex.bytes, "duration", elapsed.String()}
		if ex.code != "" {
			attrs = append(attrs, "code", ex.code)
		}
		logger.Log(ctx, level, "request handled", attrs...)
	}
}

// recoverPanics turns a handler panic into a 500, unless the handler had
// already started its response.
func (s *Server) recoverPanics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ex := record(w)
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			panicRecoveries.Inc()
			Logger(r.Context()).Error("handler panicked",
				"panic", fmt.Sprint(v),
				"responseStarted", ex.started)
			if ex.started {
				return
			}
			WriteError(ex, r, http.StatusInternalServerError, ErrCodeInternalError,
				"Internal server error", true, nil)
		}()
		next(ex, r)
	}
}

// limit rejects requests beyond the shared token bucket.
func (s *Server) limit(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter.Allow() {
			next(w, r)
			return
		}
		rateLimitRejects.WithLabelValues(route).Inc()
		w.Header().Set("Retry-After", "1")
		WriteError(w, r, http.StatusTooManyRequests, ErrCodeRateLimitExceeded,
			"Rate limit exceeded", true, map[string]any{
				"route": route,
				"limit": float64(s.config.RateLimit),
				"burst": s.config.RateLimitBurst,
			})
	}
}
