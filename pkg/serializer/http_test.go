package serializer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHttpReader_Read(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("kind: RecipeSet\n"))
	}))
	defer srv.Close()

	data, err := NewHttpReader(WithUserAgent("test-agent")).Read(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "kind: RecipeSet\n" {
		t.Errorf("unexpected body %q", data)
	}
	if gotAgent != "test-agent" {
		t.Errorf("User-Agent = %q, want test-agent", gotAgent)
	}
}

func TestHttpReader_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		reader *HttpReader
		url    string
	}{
		{"empty url", NewHttpReader(), ""},
		{"not found", NewHttpReader(), srv.URL + "/missing"},
		{"too large", NewHttpReader(WithMaxBytes(16)), srv.URL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.reader.Read(context.Background(), tt.url); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHttpReader_Options(t *testing.T) {
	client := &http.Client{}
	r := NewHttpReader(WithClient(client), WithTotalTimeout(3*time.Second))
	if r.Client != client {
		t.Error("WithClient not applied")
	}
	if r.Client.Timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", r.Client.Timeout)
	}

	if r := NewHttpReader(WithClient(nil)); r.Client == nil {
		t.Error("nil client should be replaced with a default")
	}
}

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		data       any
		wantStatus int
	}{
		{"ok", http.StatusOK, map[string]any{"name": "Tom"}, http.StatusOK},
		{"bad request", http.StatusBadRequest, map[string]any{"code": "INVALID_VALUE"}, http.StatusBadRequest},
		{"encoding error", http.StatusOK, make(chan int), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondJSON(w, tt.statusCode, tt.data)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus != http.StatusOK && tt.wantStatus != tt.statusCode {
				return
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", ct)
			}
			var got map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
		})
	}
}

func TestRespondJSON_EmptyData(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, nil)

	if body := w.Body.String(); body != "null\n" {
		t.Errorf("expected 'null\\n', got %q", body)
	}
}
