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

package optimizer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/NVIDIA/recipe-optimizer/pkg/availability"
	"github.com/NVIDIA/recipe-optimizer/pkg/catalog"
	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

// Filter returns, in catalog order, the records whose melting point is at
// least minMeltingPoint and that are available in country. Records without
// a parsed rule have their availability text parsed here; any parse
// failure aborts the filter. The input slice is not modified.
func Filter(items []catalog.Ingredient, minMeltingPoint decimal.Decimal, country string) ([]catalog.Ingredient, error) {
	out := make([]catalog.Ingredient, 0, len(items))
	for i, it := range items {
		rule := it.Rule
		if rule == nil {
			parsed, err := availability.Parse(it.Availability)
			if err != nil {
				return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeParse,
					fmt.Sprintf("invalid availability for ingredient %s", it.ID), err,
					map[string]any{
						"row":          i + 1,
						"ingredientId": it.ID,
						"text":         it.Availability,
					})
			}
			rule = parsed
		}

		if it.MeltingPoint.LessThan(minMeltingPoint) {
			continue
		}
		if !availability.IsAvailable(rule, country) {
			continue
		}

		it.Rule = rule
		out = append(out, it)
	}
	return out, nil
}
