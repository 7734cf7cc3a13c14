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

// Package cli implements optctl, the command-line front end of the recipe
// optimizer.
//
// # Commands
//
// optimize - Compute the cheapest substitute recipe:
//
//	optctl optimize --catalog ingredients.csv --country China \
//	  --min-melting-point 200 --component 6489=0.1 --component 231=0.2 --component 54=0.7
//
// Without component flags the reference recipe above is used. A complete
// request document can be supplied with --request instead.
//
// catalog - Print the (optionally filtered) catalog:
//
//	optctl catalog --catalog ingredients.csv --country Japan --format table
//
// availability - Parse an availability statement:
//
//	optctl availability "ALL except China, Japan" --country Germany
//
// # Global Flags
//
//	--log-level        debug, info, warn, error (default: info, env LOG_LEVEL)
//	--kubeconfig, -k   kubeconfig for cm:// URIs (env KUBECONFIG)
//
// # Command Flags
//
//	--catalog, -c      catalog location (env CATALOG_URI)
//	--output, -o       output file path or cm://namespace/name (default: stdout)
//	--format, -t       output format: yaml, json, table (default: yaml)
//
// # Catalog Locations
//
//	ingredients.csv                       local file
//	https://host/ingredients.csv          HTTP(S)
//	s3://bucket/ingredients.csv           S3 (CATALOG_S3_REGION, CATALOG_S3_ENDPOINT, CATALOG_S3_PATH_STYLE)
//	cm://namespace/name?key=catalog.csv   Kubernetes ConfigMap
//	postgres://user@host/db?table=t       PostgreSQL
//	sqlite:///path/catalog.db?table=t     SQLite
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
package cli
