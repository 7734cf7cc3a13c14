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
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/recipe-optimizer/pkg/defaults"
	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
	"github.com/NVIDIA/recipe-optimizer/pkg/serializer"
	"github.com/NVIDIA/recipe-optimizer/pkg/server"
)

var (
	// cacheMaxAge can be overridden for testing or custom configurations
	cacheMaxAge = defaults.OptimizeCacheMaxAge
)

// HandleOptimize serves GET (query parameters) and POST (JSON or YAML
// body) optimize requests. The response format follows the Accept header.
func (o *Optimizer) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.OptimizeHandlerTimeout)
	defer cancel()

	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, POST")
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodGet, http.MethodPost},
			})
		return
	}

	req, err := ParseRequest(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid optimize request", nil)
		return
	}

	slog.Debug("optimize request",
		"country", req.Country,
		"minMeltingPoint", req.MinMeltingPoint.String(),
		"components", len(req.Components),
	)

	result, err := o.Optimize(ctx, req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to optimize recipe", nil)
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheMaxAge.Seconds())))
	serializer.Respond(w, http.StatusOK, serializer.FormatFromContentType(r.Header.Get("Accept")), result)
}
