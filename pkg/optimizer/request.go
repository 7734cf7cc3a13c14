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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/recipe-optimizer/pkg/defaults"
	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
	"github.com/NVIDIA/recipe-optimizer/pkg/header"
	"github.com/NVIDIA/recipe-optimizer/pkg/serializer"
)

// Query parameter names accepted by ParseRequestFromValues.
const (
	QueryCountry         = "country"
	QueryMinMeltingPoint = "minMeltingPoint"
	QueryComponent       = "component"
)

// FractionTolerance is the allowed distance of the fraction sum from one.
var FractionTolerance = decimal.RequireFromString("0.01")

// Validate checks the request shape: at least one component, fractions in
// (0, 1] summing to 1 within FractionTolerance, a positive minimum melting
// point, a country, and non-empty similarity classes.
func (r *Request) Validate() error {
	if r == nil {
		return invalid("request cannot be empty", nil)
	}
	if err := header.Check(r.Kind, r.APIVersion, header.KindOptimizeRequest); err != nil {
		return err
	}
	if len(r.Components) == 0 {
		return invalid("at least one component is required", nil)
	}

	one := decimal.NewFromInt(1)
	sum := decimal.Zero
	for i, c := range r.Components {
		if strings.TrimSpace(c.SimilarityClass) == "" {
			return invalid(fmt.Sprintf("component %d has no similarity class", i),
				map[string]any{"index": i})
		}
		if !c.Fraction.IsPositive() || c.Fraction.GreaterThan(one) {
			return invalid(fmt.Sprintf("fraction of %s must be greater than 0 and at most 1", c.SimilarityClass),
				map[string]any{"similarityClass": c.SimilarityClass, "fraction": c.Fraction.String()})
		}
		sum = sum.Add(c.Fraction)
	}
	if sum.Sub(one).Abs().GreaterThan(FractionTolerance) {
		return invalid("the total fraction of all components must sum to 1",
			map[string]any{"sum": sum.String()})
	}

	if !r.MinMeltingPoint.IsPositive() {
		return invalid("minimum melting point must be greater than 0",
			map[string]any{"minMeltingPoint": r.MinMeltingPoint.String()})
	}
	if strings.TrimSpace(r.Country) == "" {
		return invalid("country is required", nil)
	}
	return nil
}

// ParseTarget parses "CLASS:FRACTION" or "CLASS=FRACTION".
func ParseTarget(s string) (Target, error) {
	i := strings.LastIndexAny(s, ":=")
	if i <= 0 || i == len(s)-1 {
		return Target{}, invalid(fmt.Sprintf("invalid component %q, expected CLASS:FRACTION", s),
			map[string]any{"component": s})
	}
	class := strings.TrimSpace(s[:i])
	frac, err := decimal.NewFromString(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return Target{}, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid fraction in component %q", s), err,
			map[string]any{"component": s})
	}
	return Target{SimilarityClass: class, Fraction: frac}, nil
}

// ParseRequestFromValues builds a request from URL query parameters:
// country, minMeltingPoint and one or more component=CLASS:FRACTION.
func ParseRequestFromValues(values url.Values) (*Request, error) {
	req := &Request{Country: strings.TrimSpace(values.Get(QueryCountry))}

	if mp := values.Get(QueryMinMeltingPoint); mp != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(mp))
		if err != nil {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				"invalid minMeltingPoint", err, map[string]any{"minMeltingPoint": mp})
		}
		req.MinMeltingPoint = d
	}

	for _, c := range values[QueryComponent] {
		t, err := ParseTarget(c)
		if err != nil {
			return nil, err
		}
		req.Components = append(req.Components, t)
	}
	return req, nil
}

// ParseRequestFromBody decodes a JSON or YAML request body, chosen by
// contentType. Empty or unknown content types are read as JSON.
func ParseRequestFromBody(body io.Reader, contentType string) (*Request, error) {
	if body == nil {
		return nil, invalid("request body cannot be empty", nil)
	}

	data, err := io.ReadAll(io.LimitReader(body, defaults.MaxRequestBodyBytes+1))
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	if int64(len(data)) > defaults.MaxRequestBodyBytes {
		return nil, invalid("request body too large",
			map[string]any{"limit": defaults.MaxRequestBodyBytes})
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, invalid("request body is empty", nil)
	}

	var req Request
	switch serializer.FormatFromContentType(contentType) {
	case serializer.FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&req)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&req)
	}
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to parse request body", err)
	}
	return &req, nil
}

// ParseRequest dispatches on method: query parameters for GET, body for POST.
func ParseRequest(r *http.Request) (*Request, error) {
	if r.Method == http.MethodGet {
		return ParseRequestFromValues(r.URL.Query())
	}
	return ParseRequestFromBody(r.Body, r.Header.Get("Content-Type"))
}

func invalid(msg string, ctx map[string]any) error {
	if ctx == nil {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, msg)
	}
	return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest, msg, ctx)
}
