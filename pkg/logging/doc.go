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

// Package logging provides structured logging utilities for the recipe
// optimizer binaries.
//
// It wraps the standard library slog package with defaults shared by the
// API server and the CLI: JSON output to stderr, LOG_LEVEL based level
// selection, module and version attributes on every record, and source
// location on debug logs.
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("optimizerd", version)
//	    slog.Info("catalog loaded", "uri", uri, "ingredients", n)
//	}
//
// Explicit level (the CLI passes its --log-level flag):
//
//	logging.SetDefaultStructuredLoggerWithLevel("optctl", version, "debug")
//
// Supported levels (case-insensitive): debug, info, warn/warning, error.
// Unknown values fall back to info.
package logging
