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
	"log/slog"
	"os"
	"slices"
	"strings"

	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

// EnvAllowedCountries holds a comma-separated country allowlist for the API.
const EnvAllowedCountries = "ALLOWED_COUNTRIES"

// AllowLists restricts which request values the API accepts. An empty
// list allows everything. The CLI never applies allowlists.
type AllowLists struct {
	Countries []string
}

// IsEmpty returns true if no allowlists are configured (all values allowed).
func (a *AllowLists) IsEmpty() bool {
	return a == nil || len(a.Countries) == 0
}

// ValidateRequest rejects requests naming a country outside the allowlist.
// Matching is exact, like availability matching.
func (a *AllowLists) ValidateRequest(r *Request) error {
	if a.IsEmpty() || r == nil {
		return nil
	}

	slog.Debug("evaluating request against allowlists",
		"country", r.Country,
		"allowed_countries", a.Countries,
	)

	if !slices.Contains(a.Countries, r.Country) {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"country not allowed",
			map[string]any{
				"requested": r.Country,
				"allowed":   a.Countries,
			})
	}
	return nil
}

// ParseAllowListsFromEnv reads ALLOWED_COUNTRIES. It returns nil when the
// variable is unset or lists nothing.
func ParseAllowListsFromEnv() *AllowLists {
	v := os.Getenv(EnvAllowedCountries)
	if v == "" {
		return nil
	}

	var countries []string
	for _, c := range strings.Split(v, ",") {
		c = strings.TrimSpace(c)
		if c != "" && !slices.Contains(countries, c) {
			countries = append(countries, c)
		}
	}
	if len(countries) == 0 {
		return nil
	}

	slog.Info("country allowlist configured", "countries", countries)
	return &AllowLists{Countries: countries}
}
