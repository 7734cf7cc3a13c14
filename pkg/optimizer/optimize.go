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
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NVIDIA/recipe-optimizer/pkg/catalog"
	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

// Optimize loads the catalog at uri, filters it and selects the cheapest
// substitute per target. Any error aborts with no partial recipe.
func Optimize(ctx context.Context, loader catalog.Loader, uri string,
	minMeltingPoint decimal.Decimal, country string, targets []Target) (*Recipe, error) {

	recipe, _, err := optimize(ctx, loader, uri, minMeltingPoint, country, targets)
	return recipe, err
}

func optimize(ctx context.Context, loader catalog.Loader, uri string,
	minMeltingPoint decimal.Decimal, country string, targets []Target) (*Recipe, int, error) {

	items, err := loader.Load(ctx, uri)
	if err != nil {
		return nil, 0, err
	}

	filtered, err := Filter(items, minMeltingPoint, country)
	if err != nil {
		return nil, 0, err
	}

	recipe, err := Select(filtered, targets)
	if err != nil {
		return nil, len(filtered), err
	}
	return recipe, len(filtered), nil
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithCatalogURI sets the catalog every request is optimized against.
func WithCatalogURI(uri string) Option {
	return func(o *Optimizer) { o.catalogURI = uri }
}

// WithAllowLists restricts accepted request values.
func WithAllowLists(a *AllowLists) Option {
	return func(o *Optimizer) { o.allowLists = a }
}

// WithClock overrides the time source stamped on results.
func WithClock(now func() time.Time) Option {
	return func(o *Optimizer) { o.now = now }
}

// Optimizer validates requests and runs them against one catalog.
type Optimizer struct {
	loader     catalog.Loader
	catalogURI string
	allowLists *AllowLists
	now        func() time.Time
}

// New returns an Optimizer reading catalogs through loader.
func New(loader catalog.Loader, opts ...Option) *Optimizer {
	o := &Optimizer{
		loader: loader,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CatalogURI returns the configured catalog location.
func (o *Optimizer) CatalogURI() string { return o.catalogURI }

// Optimize validates req, checks the allowlists, and computes the recipe.
func (o *Optimizer) Optimize(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()
	res, err := o.run(ctx, req)
	optimizeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		optimizeOutcomes.WithLabelValues(string(cnserrors.CodeOf(err))).Inc()
		return nil, err
	}
	optimizeOutcomes.WithLabelValues(outcomeOK).Inc()
	optimizeCandidates.Observe(float64(res.Candidates))
	return res, nil
}

func (o *Optimizer) run(ctx context.Context, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := o.allowLists.ValidateRequest(req); err != nil {
		return nil, err
	}
	if o.catalogURI == "" {
		return nil, cnserrors.New(cnserrors.ErrCodeUnavailable, "no catalog configured")
	}

	recipe, candidates, err := optimize(ctx, o.loader, o.catalogURI,
		req.MinMeltingPoint, req.Country, req.Components)
	if err != nil {
		return nil, err
	}

	slog.Debug("recipe optimized",
		"catalog", o.catalogURI,
		"country", req.Country,
		"minMeltingPoint", req.MinMeltingPoint.String(),
		"components", len(req.Components),
		"candidates", candidates,
		"totalCost", recipe.TotalCost.String(),
	)

	return &Result{
		Kind:            ResultKind,
		APIVersion:      APIVersion,
		Recipe:          *recipe,
		Country:         req.Country,
		MinMeltingPoint: req.MinMeltingPoint,
		Catalog:         o.catalogURI,
		Candidates:      candidates,
		GeneratedAt:     o.now().UTC(),
	}, nil
}
