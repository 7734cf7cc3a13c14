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
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
	"github.com/NVIDIA/recipe-optimizer/pkg/serializer"
)

// RootResponse is served on "GET /".
type RootResponse struct {
	Name      string   `json:"name" yaml:"name"`
	Version   string   `json:"version" yaml:"version"`
	Ready     bool     `json:"ready" yaml:"ready"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	Routes    []string `json:"routes" yaml:"routes"`
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	// API endpoints with middleware
	for pattern, handler := range s.config.Handlers {
		mux.HandleFunc(pattern, s.withMiddleware(handler))
	}

	mux.HandleFunc("GET /{$}", s.handleDefault)

	return withErrorFallback(mux)
}

// withErrorFallback serves requests no pattern matches. The mux decides
// between 404 and 405 (setting Allow); the plain-text body is replaced
// with an ErrorResponse.
func withErrorFallback(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		fw := &fallbackWriter{ResponseWriter: w}
		h.ServeHTTP(fw, r)

		switch fw.status {
		case http.StatusNotFound:
			WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
				"no route for path", false, map[string]any{"path": r.URL.Path})
		case http.StatusMethodNotAllowed:
			WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
				fmt.Sprintf("method %s not allowed", r.Method), false,
				map[string]any{"path": r.URL.Path, "allow": w.Header().Get("Allow")})
		}
	})
}

// fallbackWriter holds back 404 and 405 responses so they can be rewritten;
// anything else (redirects) passes through.
type fallbackWriter struct {
	http.ResponseWriter
	status int
	held   bool
}

func (f *fallbackWriter) WriteHeader(code int) {
	if f.status != 0 {
		return
	}
	f.status = code
	if code == http.StatusNotFound || code == http.StatusMethodNotAllowed {
		f.held = true
		return
	}
	f.ResponseWriter.WriteHeader(code)
}

func (f *fallbackWriter) Write(b []byte) (int, error) {
	if f.status == 0 {
		f.WriteHeader(http.StatusOK)
	}
	if f.held {
		return len(b), nil
	}
	return f.ResponseWriter.Write(b)
}

// routes lists the registered routes, API handlers first.
func (s *Server) routes() []string {
	api := make([]string, 0, len(s.config.Handlers))
	for pattern := range s.config.Handlers {
		api = append(api, pattern)
	}
	sort.Strings(api)
	return append(api, "GET /health", "GET /ready", "GET /metrics")
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, RootResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     ready,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	})
}
