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

// Package server provides the HTTP server shared by the optimizer API.
//
// A Server owns the ServeMux, the middleware chain, and lifecycle. API
// handlers are registered by pattern with WithHandler and run behind:
//
//	metrics -> version -> request ID -> panic recovery -> rate limit -> logging
//
// System endpoints (/health, /ready, /metrics, and the route listing on /)
// bypass the chain.
//
// Handlers report failures through WriteError or WriteErrorFromErr, which
// map structured error codes to HTTP status:
//
//	INVALID_REQUEST, INVALID_FORMAT, PARSE_ERROR  400
//	NOT_FOUND, NO_ALTERNATIVE                     404
//	METHOD_NOT_ALLOWED                            405
//	RATE_LIMIT_EXCEEDED                           429
//	INTERNAL                                      500
//	SERVICE_UNAVAILABLE                           503
//	TIMEOUT                                       504
//
// Configuration comes from the environment: PORT, SHUTDOWN_TIMEOUT_SECONDS,
// RATE_LIMIT, and RATE_LIMIT_BURST.
package server
