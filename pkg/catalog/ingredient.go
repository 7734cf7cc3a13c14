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
	"github.com/shopspring/decimal"

	"github.com/NVIDIA/recipe-optimizer/pkg/availability"
)

// Catalog column names as they appear in the CSV header.
const (
	ColumnID              = "Raw Material ID"
	ColumnSimilarityClass = "Similarity Index"
	ColumnPrice           = "Price"
	ColumnMeltingPoint    = "Melting Point"
	ColumnAvailability    = "Availability in Country"
)

// RequiredColumns lists the columns every catalog must provide.
func RequiredColumns() []string {
	return []string{
		ColumnID,
		ColumnSimilarityClass,
		ColumnPrice,
		ColumnMeltingPoint,
		ColumnAvailability,
	}
}

// Ingredient is a single catalog entry. Values are immutable once loaded.
type Ingredient struct {
	ID              string          `json:"id" yaml:"id"`
	SimilarityClass string          `json:"similarityClass" yaml:"similarityClass"`
	Price           decimal.Decimal `json:"price" yaml:"price"`
	MeltingPoint    decimal.Decimal `json:"meltingPoint" yaml:"meltingPoint"`

	// Availability is the raw availability text.
	Availability string `json:"availability" yaml:"availability"`

	// Rule is the parsed form of Availability. It is nil only for records
	// built outside this package; consumers parse Availability on demand.
	Rule availability.Rule `json:"-" yaml:"-"`
}

// Row is one unparsed catalog record, independent of the backing format.
type Row struct {
	ID              string
	SimilarityClass string
	Price           string
	MeltingPoint    string
	Availability    string
}
