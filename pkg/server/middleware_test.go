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
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func newTestServer(limit rate.Limit, burst int) *Server {
	return &Server{
		config:      NewConfig(),
		rateLimiter: rate.NewLimiter(limit, burst),
	}
}

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestObserveRequestID(t *testing.T) {
	s := newTestServer(100, 200)
	provided := uuid.NewString()

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{"generates new id", "", false},
		{"keeps provided id", provided, true},
		{"replaces invalid id", "cat-123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id string
			h := s.observe("/v1/recipes", func(w http.ResponseWriter, r *http.Request) {
				id = RequestID(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			if _, err := uuid.Parse(id); err != nil {
				t.Errorf("request ID %q is not a UUID", id)
			}
			if (id == tt.header) != tt.wantSame {
				t.Errorf("request ID %q, header %q, wantSame %v", id, tt.header, tt.wantSame)
			}
			if got := rec.Header().Get("X-Request-Id"); got != id {
				t.Errorf("X-Request-Id = %q, want %q", got, id)
			}
		})
	}
}

func TestObserveLogsRecipeAndErrorCode(t *testing.T) {
	logs := captureLogs(t)
	s := newTestServer(100, 200)

	h := s.observe("/v1/instances", func(w http.ResponseWriter, r *http.Request) {
		Logger(r.Context()).Info("constructing")
		WriteError(w, r, http.StatusUnprocessableEntity, "MISSING_ATTRIBUTE",
			"attribute `Cat#name` is required", false, nil)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/v1/instances?recipe=Cat", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), logs)
	}

	var inner, done map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &inner); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &done); err != nil {
		t.Fatalf("decode log line: %v", err)
	}

	for _, entry := range []map[string]any{inner, done} {
		if entry["recipe"] != "Cat" || entry["route"] != "/v1/instances" {
			t.Errorf("log line missing request context: %v", entry)
		}
		if entry["requestID"] != rec.Header().Get("X-Request-Id") {
			t.Errorf("log line request ID %v, header %s", entry["requestID"], rec.Header().Get("X-Request-Id"))
		}
	}
	if done["code"] != "MISSING_ATTRIBUTE" || done["status"] != float64(422) {
		t.Errorf("unexpected request log line: %v", done)
	}
}

func TestRecoverPanics(t *testing.T) {
	s := newTestServer(100, 200)

	t.Run("before response", func(t *testing.T) {
		h := s.observe("/v1/instances", s.recoverPanics(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/v1/instances?recipe=Cat", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		if resp.Code != ErrCodeInternalError || !resp.Retryable {
			t.Errorf("unexpected error response: %+v", resp)
		}
		if resp.RequestID != rec.Header().Get("X-Request-Id") {
			t.Errorf("request ID %s does not match header %s", resp.RequestID, rec.Header().Get("X-Request-Id"))
		}
	})

	t.Run("after response started", func(t *testing.T) {
		h := s.recoverPanics(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"recipe":"Cat"`))
			panic("boom")
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/v1/instances", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected the started 200 to stand, got %d", rec.Code)
		}
		if rec.Body.String() != `{"recipe":"Cat"` {
			t.Errorf("body was appended to: %s", rec.Body)
		}
	})
}

func TestLimit(t *testing.T) {
	s := newTestServer(rate.Every(1e12), 1)
	h := s.limit("/v1/schema", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/v1/schema?recipe=Cat", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/v1/schema?recipe=Cat", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Errorf("expected Retry-After 1, got %q", rec.Header().Get("Retry-After"))
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != ErrCodeRateLimitExceeded || resp.Details["route"] != "/v1/schema" {
		t.Errorf("unexpected error response: %+v", resp)
	}
}

func TestExchange(t *testing.T) {
	rec := httptest.NewRecorder()
	ex := record(rec)

	if record(ex) != ex {
		t.Error("record should reuse an existing exchange")
	}

	ex.WriteHeader(http.StatusCreated)
	ex.WriteHeader(http.StatusInternalServerError)
	_, _ = ex.Write([]byte("#<Cat>"))

	if ex.status != http.StatusCreated || rec.Code != http.StatusCreated {
		t.Errorf("expected first status 201, got %d (recorded %d)", ex.status, rec.Code)
	}
	if ex.bytes != len("#<Cat>") {
		t.Errorf("expected %d bytes, got %d", len("#<Cat>"), ex.bytes)
	}

	WriteError(ex, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, ErrCodeNotFound, "gone", false, nil)
	if ex.code != ErrCodeNotFound {
		t.Errorf("expected error code to be recorded, got %q", ex.code)
	}
}
