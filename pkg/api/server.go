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
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/NVIDIA/recipe-optimizer/pkg/catalog"
	"github.com/NVIDIA/recipe-optimizer/pkg/defaults"
	"github.com/NVIDIA/recipe-optimizer/pkg/logging"
	"github.com/NVIDIA/recipe-optimizer/pkg/optimizer"
	"github.com/NVIDIA/recipe-optimizer/pkg/server"
)

const (
	name           = "optimizerd"
	versionDefault = "dev"

	// EnvCatalogURI locates the ingredient catalog served by the API.
	EnvCatalogURI = "CATALOG_URI"

	// EnvCatalogCacheTTL is a Go duration. "0" disables caching.
	EnvCatalogCacheTTL = "CATALOG_CACHE_TTL"

	// OptimizePath is the route of the optimize endpoint.
	OptimizePath = "/v1/optimize"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/recipe-optimizer/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Config is the API configuration read from the environment.
type Config struct {
	CatalogURI string
	CacheTTL   time.Duration
	AllowLists *optimizer.AllowLists
}

// ConfigFromEnv reads CATALOG_URI, CATALOG_CACHE_TTL and ALLOWED_COUNTRIES.
// An invalid TTL is logged and replaced by the default.
func ConfigFromEnv() Config {
	cfg := Config{
		CatalogURI: os.Getenv(EnvCatalogURI),
		CacheTTL:   defaults.CatalogCacheTTL,
		AllowLists: optimizer.ParseAllowListsFromEnv(),
	}

	if v := os.Getenv(EnvCatalogCacheTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			slog.Warn("ignoring invalid catalog cache ttl",
				"env", EnvCatalogCacheTTL, "value", v, "default", defaults.CatalogCacheTTL)
		} else {
			cfg.CacheTTL = ttl
		}
	}
	return cfg
}

// newLoader returns the catalog loader for cfg, cached unless the TTL is zero.
func newLoader(cfg Config, opts ...catalog.Option) catalog.Loader {
	base := catalog.NewSourceLoader(opts...)
	if cfg.CacheTTL == 0 {
		return base
	}
	return catalog.NewCache(base, cfg.CacheTTL)
}

// Routes builds the API handlers for cfg.
func Routes(cfg Config, loader catalog.Loader) map[string]http.HandlerFunc {
	opt := optimizer.New(loader,
		optimizer.WithCatalogURI(cfg.CatalogURI),
		optimizer.WithAllowLists(cfg.AllowLists),
	)

	return map[string]http.HandlerFunc{
		OptimizePath: opt.HandleOptimize,
	}
}

// warm loads the catalog once so the first request hits the cache and
// misconfiguration shows up in the startup logs. Failures are not fatal.
func warm(ctx context.Context, cfg Config, loader catalog.Loader) {
	if cfg.CatalogURI == "" {
		slog.Warn("no catalog configured, optimize requests will fail", "env", EnvCatalogURI)
		return
	}
	items, err := loader.Load(ctx, cfg.CatalogURI)
	if err != nil {
		slog.Warn("catalog warm-up failed", "catalog", cfg.CatalogURI, "error", err)
		return
	}
	slog.Info("catalog loaded", "catalog", cfg.CatalogURI, "ingredients", len(items))
}

// Serve starts the optimizer API server and blocks until it exits.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg := ConfigFromEnv()
	loader := newLoader(cfg)
	slog.Info("api config",
		"catalog", cfg.CatalogURI,
		"cacheTTL", cfg.CacheTTL,
		"allowlist", !cfg.AllowLists.IsEmpty(),
	)

	warm(ctx, cfg, loader)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(cfg, loader)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
