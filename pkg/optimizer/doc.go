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

// Package optimizer selects the cheapest available ingredient substitute
// for every similarity class of a recipe.
//
// The pipeline is load, filter, select:
//
//   - Filter keeps catalog records whose melting point reaches the
//     requested minimum and whose availability rule admits the country.
//   - Select picks, per target component and in target order, the lowest
//     priced record of the component's similarity class. Equal prices
//     resolve to the record that appears first in the catalog.
//   - TotalCost sums price times fraction over the selection.
//
// Optimize runs the three steps over a catalog.Loader. The Optimizer type
// adds request validation, an optional country allowlist, metrics, and
// the HTTP handler served by the API:
//
//	opt := optimizer.New(catalog.NewCache(catalog.NewSourceLoader(), 0),
//	    optimizer.WithCatalogURI("s3://recipes/catalog.csv"))
//	res, err := opt.Optimize(ctx, &optimizer.Request{
//	    Components: []optimizer.Target{
//	        {SimilarityClass: "54", Fraction: decimal.RequireFromString("0.7")},
//	        {SimilarityClass: "231", Fraction: decimal.RequireFromString("0.3")},
//	    },
//	    MinMeltingPoint: decimal.NewFromInt(200),
//	    Country:         "China",
//	})
//
// A class with no surviving candidate fails the whole request with
// NO_ALTERNATIVE; no partial recipe is returned.
package optimizer
