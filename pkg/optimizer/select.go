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

	"github.com/NVIDIA/recipe-optimizer/pkg/catalog"
	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

// Select picks the cheapest record of each target's similarity class, in
// target order. Ties go to the record seen first. A class without any
// candidate fails with NO_ALTERNATIVE and no recipe.
func Select(filtered []catalog.Ingredient, targets []Target) (*Recipe, error) {
	subs := make([]Substitute, 0, len(targets))
	for _, t := range targets {
		best, ok := cheapest(filtered, t.SimilarityClass)
		if !ok {
			return nil, NoAlternative(t.SimilarityClass)
		}
		subs = append(subs, Substitute{
			IngredientID:    best.ID,
			SimilarityClass: best.SimilarityClass,
			Fraction:        t.Fraction,
			UnitPrice:       best.Price,
			Cost:            best.Price.Mul(t.Fraction),
		})
	}
	return &Recipe{Substitutes: subs, TotalCost: TotalCost(subs)}, nil
}

// TotalCost sums the cost of every substitute. An empty selection costs zero.
func TotalCost(subs []Substitute) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subs {
		total = total.Add(s.Cost)
	}
	return total
}

// NoAlternative builds the NO_ALTERNATIVE error for class.
func NoAlternative(class string) error {
	return cnserrors.NewWithContext(cnserrors.ErrCodeNoAlternative,
		fmt.Sprintf("no alternative ingredients found for similarity index %s", class),
		map[string]any{"similarityClass": class})
}

func cheapest(items []catalog.Ingredient, class string) (catalog.Ingredient, bool) {
	var (
		best  catalog.Ingredient
		found bool
	)
	for _, it := range items {
		if it.SimilarityClass != class {
			continue
		}
		// strict comparison keeps the first of equal prices
		if !found || it.Price.LessThan(best.Price) {
			best, found = it, true
		}
	}
	return best, found
}
