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
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestServer_Routes(t *testing.T) {
	s := New(
		WithName("valuetype"),
		WithVersion("test"),
		WithHandler(map[string]http.HandlerFunc{
			"/v1/echo": func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("echo"))
			},
		}),
	)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	get := func(path string) *http.Response {
		t.Helper()
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	if resp := get("/health"); resp.StatusCode != http.StatusOK {
		t.Errorf("/health: expected 200, got %d", resp.StatusCode)
	}

	if resp := get("/ready"); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("/ready before SetReady: expected 503, got %d", resp.StatusCode)
	}
	s.SetReady(true)
	if resp := get("/ready"); resp.StatusCode != http.StatusOK {
		t.Errorf("/ready after SetReady: expected 200, got %d", resp.StatusCode)
	}

	resp := get("/v1/echo")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/v1/echo: expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("/v1/echo: expected middleware to set X-Request-Id")
	}

	resp = get("/")
	var root struct {
		Name   string   `json:"name"`
		Ready  bool     `json:"ready"`
		Routes []string `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		t.Fatalf("failed to decode root response: %v", err)
	}
	if root.Name != "valuetype" || !root.Ready {
		t.Errorf("unexpected root response: %+v", root)
	}
	if len(root.Routes) == 0 || root.Routes[0] != "/v1/echo" {
		t.Errorf("expected /v1/echo first in routes, got %v", root.Routes)
	}

	if resp := get("/nope"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("/nope: expected 404, got %d", resp.StatusCode)
	}

	resp = get("/metrics")
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read /metrics: %v", err)
	}
	if !strings.Contains(string(body), "valuetype_http_requests_total") {
		t.Error("/metrics: expected valuetype_http_requests_total")
	}
}

func TestServer_ReadinessCheck(t *testing.T) {
	var loaded bool
	s := New(WithReadinessCheck(func(context.Context) error {
		if !loaded {
			return errors.New("no recipes loaded")
		}
		return nil
	}))
	s.SetReady(true)

	ready := func() (int, HealthResponse) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		var resp HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode /ready: %v", err)
		}
		return rec.Code, resp
	}

	code, resp := ready()
	if code != http.StatusServiceUnavailable || resp.Reason != "no recipes loaded" {
		t.Errorf("expected 503 naming the failed check, got %d %+v", code, resp)
	}

	loaded = true
	if code, resp = ready(); code != http.StatusOK || resp.Status != "ready" {
		t.Errorf("expected 200 ready, got %d %+v", code, resp)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/health: expected 200, got %d", rec.Code)
	}
}

func TestServer_ErrorMetrics(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/v1/instances": func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, r, http.StatusUnprocessableEntity, "INVALID_VALUE", "invalid", false, nil)
		},
	}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/instances?recipe=Cat", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `valuetype_http_request_errors_total{code="INVALID_VALUE",route="/v1/instances"}`) {
		t.Errorf("/metrics: expected an INVALID_VALUE error series, got:\n%s", body)
	}
}

func TestServer_HealthMethodNotAllowed(t *testing.T) {
	s := New()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s := New()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	deadline := time.Now().Add(5 * time.Second)
	for !s.isReady() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := http.Get("http://" + l.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
	if s.isReady() {
		t.Error("expected server not ready after shutdown")
	}
}
