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

package optimizer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
	"github.com/NVIDIA/recipe-optimizer/pkg/server"
)

const optimizeQuery = "/v1/optimize?country=China&minMeltingPoint=200&component=6489:0.1&component=231:0.2&component=54:0.7"

func newTestOptimizer(t *testing.T) (*Optimizer, *staticLoader) {
	t.Helper()
	loader := &staticLoader{items: loadTestCatalog(t)}
	return New(loader, WithCatalogURI("file:///catalog.csv")), loader
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleOptimize_Get(t *testing.T) {
	o, _ := newTestOptimizer(t)

	w := httptest.NewRecorder()
	o.HandleOptimize(w, httptest.NewRequest(http.MethodGet, optimizeQuery, nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=")

	var res Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, ResultKind, res.Kind)
	require.Len(t, res.Substitutes, 3)
	assert.Equal(t, "54-B", res.Substitutes[2].IngredientID)
	assert.Equal(t, "1.69", res.TotalCost.StringFixed(2))
}

func TestHandleOptimize_PostYAML(t *testing.T) {
	o, _ := newTestOptimizer(t)

	body := `country: Malaysia
minMeltingPoint: 200
components:
  - similarityClass: "231"
    fraction: 1
`
	r := httptest.NewRequest(http.MethodPost, "/v1/optimize", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/yaml")
	r.Header.Set("Accept", "application/yaml")
	w := httptest.NewRecorder()

	o.HandleOptimize(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

	var res Result
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Substitutes, 1)
	assert.Equal(t, "231-B", res.Substitutes[0].IngredientID)
	assert.Equal(t, "Malaysia", res.Country)
}

func TestHandleOptimize_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   cnserrors.ErrorCode
	}{
		{
			name:       "method not allowed",
			method:     http.MethodDelete,
			target:     "/v1/optimize",
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   cnserrors.ErrCodeMethodNotAllowed,
		},
		{
			name:       "malformed component",
			method:     http.MethodGet,
			target:     "/v1/optimize?country=China&minMeltingPoint=200&component=54",
			wantStatus: http.StatusBadRequest,
			wantCode:   cnserrors.ErrCodeInvalidRequest,
		},
		{
			name:       "fractions do not sum to one",
			method:     http.MethodGet,
			target:     "/v1/optimize?country=China&minMeltingPoint=200&component=54:0.5",
			wantStatus: http.StatusBadRequest,
			wantCode:   cnserrors.ErrCodeInvalidRequest,
		},
		{
			name:       "malformed body",
			method:     http.MethodPost,
			target:     "/v1/optimize",
			body:       `{"country":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   cnserrors.ErrCodeInvalidRequest,
		},
		{
			name:       "no alternative",
			method:     http.MethodGet,
			target:     "/v1/optimize?country=China&minMeltingPoint=200&component=999:1",
			wantStatus: http.StatusNotFound,
			wantCode:   cnserrors.ErrCodeNoAlternative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := newTestOptimizer(t)

			r := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			o.HandleOptimize(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, string(tt.wantCode), resp.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestHandleOptimize_CatalogNotFound(t *testing.T) {
	loader := &staticLoader{err: cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
		"catalog not found", map[string]any{"uri": "file:///missing.csv"})}
	o := New(loader, WithCatalogURI("file:///missing.csv"))

	w := httptest.NewRecorder()
	o.HandleOptimize(w, httptest.NewRequest(http.MethodGet, optimizeQuery, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, string(cnserrors.ErrCodeNotFound), resp.Code)
	assert.Equal(t, "file:///missing.csv", resp.Details["uri"])
	assert.False(t, resp.Retryable)
}

func TestHandleOptimize_ThroughServer(t *testing.T) {
	o, loader := newTestOptimizer(t)
	s := server.New(server.WithHandler(map[string]http.HandlerFunc{
		"/v1/optimize": o.HandleOptimize,
	}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, optimizeQuery, nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(server.HeaderRequestID))
	assert.Equal(t, server.DefaultAPIVersion, w.Header().Get(server.HeaderAPIVersion))
	assert.Equal(t, int32(1), loader.calls.Load())
}
