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

// Package availability parses the free-text "Availability in Country"
// field of the ingredient catalog into a closed, two-variant Rule.
//
// Grammar:
//
//	ALL                      available everywhere
//	ALL except A, B, ...     available everywhere except the listed countries
//	Only A, B, ...           available only in the listed countries
//
// Any other text is rejected with a PARSE_ERROR structured error; there is
// no silent default. Country matching in IsAvailable is exact and
// case-sensitive, so callers must pass the country spelling used by the
// catalog.
package availability
