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

package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/recipe-optimizer/pkg/defaults"
	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

// Loader loads the catalog at a URI.
type Loader interface {
	Load(ctx context.Context, uri string) ([]Ingredient, error)
}

// SourceLoader opens a Source per call and loads it under a timeout.
type SourceLoader struct {
	opts    []Option
	timeout time.Duration
}

// NewSourceLoader returns a loader passing opts to Open for every URI.
func NewSourceLoader(opts ...Option) *SourceLoader {
	return &SourceLoader{opts: opts, timeout: defaults.CatalogLoadTimeout}
}

// WithTimeout returns a copy of the loader using d as the per-load timeout.
// Non-positive values disable the timeout.
func (l *SourceLoader) WithTimeout(d time.Duration) *SourceLoader {
	cp := *l
	cp.timeout = d
	return &cp
}

// Load resolves uri and loads it. Exceeding the load timeout is reported
// as TIMEOUT.
func (l *SourceLoader) Load(ctx context.Context, uri string) ([]Ingredient, error) {
	src, err := Open(uri, l.opts...)
	if err != nil {
		return nil, err
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	scheme := schemeLabel(src.URI())
	start := time.Now()
	items, err := src.Load(ctx)
	catalogLoadDuration.WithLabelValues(scheme).Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded):
			err = cnserrors.WrapWithContext(cnserrors.ErrCodeTimeout,
				fmt.Sprintf("catalog load timed out after %s", l.timeout), err,
				map[string]any{"uri": src.URI()})
		case stderrors.Is(err, context.Canceled):
			err = contextError(src.URI(), err)
		}
		catalogLoadErrors.WithLabelValues(scheme, string(cnserrors.CodeOf(err))).Inc()
		slog.Error("catalog load failed",
			"uri", src.URI(),
			"error", err,
		)
		return nil, err
	}

	catalogIngredients.Set(float64(len(items)))
	slog.Debug("catalog loaded",
		"uri", src.URI(),
		"ingredients", len(items),
		"duration", time.Since(start).String(),
	)
	return items, nil
}

// contextError reports a load cut short by its context as TIMEOUT.
func contextError(uri string, err error) error {
	msg := "catalog load canceled"
	if stderrors.Is(err, context.DeadlineExceeded) {
		msg = "catalog load deadline exceeded"
	}
	return cnserrors.WrapWithContext(cnserrors.ErrCodeTimeout, msg, err,
		map[string]any{"uri": uri})
}

func schemeLabel(uri string) string {
	if s, ok := schemeOf(uri); ok {
		return string(s)
	}
	return string(SchemeFile)
}
