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

package catalog

import (
	"time"

	"github.com/NVIDIA/recipe-optimizer/pkg/header"
)

// Document identity of catalog listings.
const (
	ListingKind       = string(header.KindIngredientCatalog)
	ListingAPIVersion = header.APIVersion
)

// Listing is a printable view of a loaded catalog.
type Listing struct {
	Kind        string       `json:"kind" yaml:"kind"`
	APIVersion  string       `json:"apiVersion" yaml:"apiVersion"`
	Source      string       `json:"source" yaml:"source"`
	Count       int          `json:"count" yaml:"count"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	LoadedAt    time.Time    `json:"loadedAt" yaml:"loadedAt"`
}

// NewListing wraps items loaded from source.
func NewListing(source string, items []Ingredient) *Listing {
	return &Listing{
		Kind:        ListingKind,
		APIVersion:  ListingAPIVersion,
		Source:      source,
		Count:       len(items),
		Ingredients: items,
		LoadedAt:    time.Now().UTC(),
	}
}

// DocumentKind implements serializer.Describer.
func (l *Listing) DocumentKind() string { return l.Kind }

// DocumentVersion implements serializer.Describer.
func (l *Listing) DocumentVersion() string { return l.APIVersion }

// TableHeader implements serializer.Tabular.
func (l *Listing) TableHeader() []string {
	return []string{"RAW MATERIAL ID", "SIMILARITY INDEX", "PRICE", "MELTING POINT", "AVAILABILITY"}
}

// TableRows implements serializer.Tabular.
func (l *Listing) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Ingredients))
	for _, it := range l.Ingredients {
		rows = append(rows, []string{
			it.ID,
			it.SimilarityClass,
			it.Price.StringFixed(2),
			it.MeltingPoint.String(),
			it.Availability,
		})
	}
	return rows
}
