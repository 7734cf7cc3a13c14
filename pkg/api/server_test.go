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

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/recipe-optimizer/pkg/catalog"
	"github.com/NVIDIA/recipe-optimizer/pkg/defaults"
	"github.com/NVIDIA/recipe-optimizer/pkg/server"
)

const testCSV = `Raw Material ID,Similarity Index,Price,Melting Point,Availability in Country
54-A,54,$2.00,210,ALL
54-B,54,$1.50,230,"ALL except China"
231-A,231,3.25,250,ALL
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(p, []byte(testCSV), 0o600))
	return p
}

func TestConstants(t *testing.T) {
	if name != "optimizerd" {
		t.Errorf("name = %q, want %q", name, "optimizerd")
	}

	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}

	// Verify buildtime variables exist (they may have default values)
	if version == "" {
		t.Error("version should not be empty")
	}
	if commit == "" {
		t.Error("commit should not be empty")
	}
	if date == "" {
		t.Error("date should not be empty")
	}
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		ttl       string
		countries string
		wantTTL   time.Duration
		wantAllow []string
	}{
		{"defaults", "", "", defaults.CatalogCacheTTL, nil},
		{"custom ttl", "90s", "", 90 * time.Second, nil},
		{"caching disabled", "0", "", 0, nil},
		{"invalid ttl", "soon", "", defaults.CatalogCacheTTL, nil},
		{"negative ttl", "-1m", "", defaults.CatalogCacheTTL, nil},
		{"allowlist", "", "China,Japan", defaults.CatalogCacheTTL, []string{"China", "Japan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvCatalogURI, "file:///catalog.csv")
			t.Setenv(EnvCatalogCacheTTL, tt.ttl)
			t.Setenv("ALLOWED_COUNTRIES", tt.countries)

			cfg := ConfigFromEnv()
			assert.Equal(t, "file:///catalog.csv", cfg.CatalogURI)
			assert.Equal(t, tt.wantTTL, cfg.CacheTTL)
			if tt.wantAllow == nil {
				assert.True(t, cfg.AllowLists.IsEmpty())
			} else {
				require.NotNil(t, cfg.AllowLists)
				assert.Equal(t, tt.wantAllow, cfg.AllowLists.Countries)
			}
		})
	}
}

func TestNewLoader(t *testing.T) {
	_, cached := newLoader(Config{CacheTTL: time.Minute}).(*catalog.Cache)
	assert.True(t, cached, "expected cache for positive ttl")

	_, plain := newLoader(Config{CacheTTL: 0}).(*catalog.SourceLoader)
	assert.True(t, plain, "expected plain loader when caching is disabled")
}

func TestRouteConfiguration(t *testing.T) {
	routes := Routes(Config{CatalogURI: "catalog.csv"}, catalog.NewSourceLoader())

	handler, exists := routes[OptimizePath]
	if !exists {
		t.Fatalf("expected %s route to exist", OptimizePath)
	}
	if handler == nil {
		t.Fatalf("expected %s handler to be non-nil", OptimizePath)
	}

	// Verify no extra routes
	if len(routes) != 1 {
		t.Errorf("expected exactly 1 route, got %d", len(routes))
	}
}

func TestOptimizeEndToEnd(t *testing.T) {
	cfg := Config{CatalogURI: writeCatalog(t), CacheTTL: time.Minute}
	loader := newLoader(cfg)
	s := server.New(server.WithHandler(Routes(cfg, loader)))

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantBody   string
	}{
		{"cheapest available", "?country=Germany&minMeltingPoint=200&component=54:0.5&component=231:0.5", http.StatusOK, `"ingredientId":"54-B"`},
		{"exclusion respected", "?country=China&minMeltingPoint=200&component=54:1", http.StatusOK, `"ingredientId":"54-A"`},
		{"no alternative", "?country=China&minMeltingPoint=240&component=54:1", http.StatusNotFound, `"code":"NO_ALTERNATIVE"`},
		{"bad request", "?country=China&minMeltingPoint=200&component=54:0.2", http.StatusBadRequest, `"code":"INVALID_REQUEST"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, OptimizePath+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}

	assert.Equal(t, 1, loader.(*catalog.Cache).Len())
}

func TestOptimizeMissingCatalog(t *testing.T) {
	cfg := Config{CatalogURI: filepath.Join(t.TempDir(), "missing.csv")}
	s := server.New(server.WithHandler(Routes(cfg, newLoader(cfg))))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		OptimizePath+"?country=China&minMeltingPoint=200&component=54:1", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)
}

func TestWarm(t *testing.T) {
	cfg := Config{CatalogURI: writeCatalog(t), CacheTTL: time.Minute}
	loader := newLoader(cfg)

	warm(context.Background(), cfg, loader)
	assert.Equal(t, 1, loader.(*catalog.Cache).Len())

	// unset and failing catalogs only log
	warm(context.Background(), Config{}, loader)
	warm(context.Background(), Config{CatalogURI: "/does/not/exist.csv"}, loader)
	assert.Equal(t, 1, loader.(*catalog.Cache).Len())
}
