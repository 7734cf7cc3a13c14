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

// Package api wires the optimizer into the HTTP server.
//
// Serve reads its configuration from the environment:
//
//	CATALOG_URI         catalog location (file path, http(s)://, s3://, cm://, postgres://, sqlite://)
//	CATALOG_CACHE_TTL   lifetime of the cached catalog, e.g. 5m; 0 disables caching
//	ALLOWED_COUNTRIES   optional comma-separated country allowlist
//	LOG_LEVEL           debug, info, warn or error
//
// Server settings (PORT, SHUTDOWN_TIMEOUT_SECONDS, RATE_LIMIT,
// RATE_LIMIT_BURST) are read by package server.
//
// Endpoints:
//
//	GET|POST /v1/optimize  compute the cheapest substitute recipe
//	GET /health            liveness
//	GET /ready             readiness
//	GET /metrics           Prometheus metrics
package api
