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

// Package catalog loads the ingredient catalog into immutable, typed
// Ingredient records.
//
// # Format
//
// A catalog is a table with five named columns:
//
//	Raw Material ID, Similarity Index, Price, Melting Point, Availability in Country
//
// Prices may carry a leading currency symbol ("$3.25"); melting points are
// plain decimals in degrees Celsius; availability text follows the grammar
// of the availability package and is parsed eagerly. Any malformed numeric
// field fails the whole load with an INVALID_FORMAT error, any malformed
// availability text with a PARSE_ERROR, and a missing source with
// NOT_FOUND. Row order is preserved and rows are never deduplicated.
//
// # Sources
//
// Open resolves a catalog URI to a Source:
//
//	/data/ingredients.csv, file:///data/ingredients.csv   local CSV file
//	https://example.com/ingredients.csv                   CSV over HTTP(S)
//	s3://bucket/path/ingredients.csv                      CSV object in S3
//	cm://namespace/name                                   CSV in a ConfigMap key
//	postgres://user@host/db?table=ingredients             Postgres table
//	sqlite:///var/lib/optimizer/catalog.db?table=ingredients  SQLite table
//
// # Caching
//
// Cache wraps any Loader with a TTL snapshot cache keyed by URI. Snapshots
// are shared read-only between concurrent requests; callers must not
// mutate returned slices.
package catalog
