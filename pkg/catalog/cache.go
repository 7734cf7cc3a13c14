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
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/NVIDIA/recipe-optimizer/pkg/defaults"
)

// Cache memoizes catalog loads per URI for a fixed TTL. Concurrent misses
// for the same URI share one underlying load. Failed loads are not cached.
type Cache struct {
	loader Loader
	store  *gocache.Cache
	group  singleflight.Group
}

// NewCache wraps loader. A non-positive ttl uses defaults.CatalogCacheTTL.
func NewCache(loader Loader, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaults.CatalogCacheTTL
	}
	return &Cache{
		loader: loader,
		store:  gocache.New(ttl, defaults.CatalogCacheCleanupInterval),
	}
}

// Load returns the cached catalog for uri, loading it on a miss. The
// shared load runs detached from ctx so one caller going away does not fail
// the others; ctx only bounds how long this caller waits.
func (c *Cache) Load(ctx context.Context, uri string) ([]Ingredient, error) {
	if v, ok := c.store.Get(uri); ok {
		catalogCacheHits.Inc()
		return v.([]Ingredient), nil
	}
	catalogCacheMisses.Inc()

	if err := ctx.Err(); err != nil {
		return nil, contextError(uri, err)
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(uri, func() (any, error) {
		lctx, cancel := context.WithTimeout(loadCtx, defaults.CatalogLoadTimeout)
		defer cancel()

		items, err := c.loader.Load(lctx, uri)
		if err != nil {
			return nil, err
		}
		c.store.SetDefault(uri, items)
		return items, nil
	})

	select {
	case <-ctx.Done():
		slog.Debug("caller stopped waiting for catalog load", "uri", uri, "error", ctx.Err())
		return nil, contextError(uri, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			slog.Debug("catalog load shared with concurrent caller", "uri", uri)
		}
		return res.Val.([]Ingredient), nil
	}
}

// Invalidate drops the cached entry for uri.
func (c *Cache) Invalidate(uri string) {
	c.store.Delete(uri)
}

// Flush drops every cached entry.
func (c *Cache) Flush() {
	c.store.Flush()
}

// Len returns the number of cached catalogs.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}
