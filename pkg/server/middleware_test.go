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

func newMiddlewareServer(limit rate.Limit, burst int) *Server {
	cfg := NewConfig()
	cfg.RateLimit = limit
	cfg.RateLimitBurst = burst
	return &Server{
		config:      cfg,
		rateLimiter: rate.NewLimiter(limit, burst),
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestRequestIDMiddleware(t *testing.T) {
	provided := uuid.New().String()

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{"missing header generates id", "", false},
		{"valid uuid is kept", provided, true},
		{"invalid id is replaced", "order-42", false},
	}

	s := newMiddlewareServer(100, 200)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/optimize", nil)
			if tt.header != "" {
				req.Header.Set(HeaderRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if _, err := uuid.Parse(seen); err != nil {
				t.Fatalf("expected UUID in context, got %q", seen)
			}
			if got := rec.Header().Get(HeaderRequestID); got != seen {
				t.Errorf("%s header = %q, context = %q", HeaderRequestID, got, seen)
			}
			if tt.wantSame && seen != tt.header {
				t.Errorf("expected provided id %q, got %q", tt.header, seen)
			}
			if !tt.wantSame && seen == tt.header {
				t.Errorf("expected a new id, got the provided %q", seen)
			}
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		accept string
	}{
		{"no accept", ""},
		{"plain json", "application/json"},
		{"vendor v1", "application/vnd.recipe-optimizer.v1+json"},
		{"unknown vendor version", "application/vnd.recipe-optimizer.v9+json"},
	}

	s := newMiddlewareServer(100, 200)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := s.versionMiddleware(func(w http.ResponseWriter, r *http.Request) {
				seen = APIVersionFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/optimize", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if seen != DefaultAPIVersion {
				t.Errorf("context version = %q, want %q", seen, DefaultAPIVersion)
			}
			if got := rec.Header().Get(HeaderAPIVersion); got != DefaultAPIVersion {
				t.Errorf("%s = %q, want %q", HeaderAPIVersion, got, DefaultAPIVersion)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newMiddlewareServer(1, 1)
	handler := s.requestIDMiddleware(s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodGet, "/v1/optimize", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request: expected %d, got %d", http.StatusOK, first.Code)
	}
	if got := first.Header().Get("X-RateLimit-Limit"); got != "1" {
		t.Errorf("X-RateLimit-Limit = %q, want 1", got)
	}

	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodGet, "/v1/optimize", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected %d, got %d", http.StatusTooManyRequests, second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}

	resp := decodeError(t, second)
	if resp.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("code = %s, want RATE_LIMIT_EXCEEDED", resp.Code)
	}
	if !resp.Retryable {
		t.Error("expected rate limit error to be retryable")
	}
	if resp.RequestID != second.Header().Get(HeaderRequestID) {
		t.Errorf("body requestId %q does not match header %q",
			resp.RequestID, second.Header().Get(HeaderRequestID))
	}
	if resp.Details["limit"] != float64(1) || resp.Details["burst"] != float64(1) {
		t.Errorf("unexpected details: %v", resp.Details)
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newMiddlewareServer(100, 200)
	handler := s.requestIDMiddleware(s.panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("substitute table corrupted")
	}))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/v1/optimize", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != "INTERNAL" {
		t.Errorf("code = %s, want INTERNAL", resp.Code)
	}
	if strings.Contains(rec.Body.String(), "substitute table corrupted") {
		t.Error("panic value leaked into the response")
	}
	if resp.RequestID != rec.Header().Get(HeaderRequestID) {
		t.Errorf("body requestId %q does not match header", resp.RequestID)
	}
}

func TestLoggingMiddleware_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	s := newMiddlewareServer(100, 200)
	handler := s.requestIDMiddleware(s.loggingMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/optimize", nil))

	var completed map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		if entry["msg"] == "request completed" {
			completed = entry
		}
	}
	if completed == nil {
		t.Fatalf("no completion log in %q", buf.String())
	}
	if completed["status"] != float64(http.StatusNotFound) {
		t.Errorf("logged status = %v, want %d", completed["status"], http.StatusNotFound)
	}
	if completed["requestID"] != rec.Header().Get(HeaderRequestID) {
		t.Errorf("logged requestID = %v, want %s", completed["requestID"], rec.Header().Get(HeaderRequestID))
	}
}

func TestWithMiddleware_Chain(t *testing.T) {
	s := newMiddlewareServer(100, 200)

	var requestID, version string
	handler := s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		requestID = RequestIDFromContext(r.Context())
		version = APIVersionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/optimize", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if requestID == "" || rec.Header().Get(HeaderRequestID) != requestID {
		t.Errorf("request id not propagated: header %q, context %q",
			rec.Header().Get(HeaderRequestID), requestID)
	}
	if version != DefaultAPIVersion || rec.Header().Get(HeaderAPIVersion) != DefaultAPIVersion {
		t.Errorf("api version not propagated: header %q, context %q",
			rec.Header().Get(HeaderAPIVersion), version)
	}
	if rec.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("expected X-RateLimit-Remaining header")
	}
}
