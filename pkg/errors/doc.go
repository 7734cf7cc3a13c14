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

// Package errors provides structured error types for programmatic error
// handling across the optimizer, its catalog sources and the API boundary.
//
// Every failure carries an ErrorCode the boundary layer maps to a transport
// status, a human-readable message, an optional cause and optional context
// naming the offending value:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeNoAlternative,
//	    "no alternative ingredient available",
//	    map[string]any{
//	        "similarityClass": "999",
//	    },
//	)
//
// Callers test for a code anywhere in a wrapped chain with HasCode:
//
//	if errors.HasCode(err, errors.ErrCodeNotFound) {
//	    // map to 404
//	}
package errors
