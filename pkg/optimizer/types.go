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
	"time"

	"github.com/shopspring/decimal"

	"github.com/NVIDIA/recipe-optimizer/pkg/header"
)

// Document identity of results and requests.
const (
	ResultKind  = string(header.KindOptimizeResult)
	RequestKind = string(header.KindOptimizeRequest)
	APIVersion  = header.APIVersion
)

// Target is one component of the requested mixture.
type Target struct {
	SimilarityClass string          `json:"similarityClass" yaml:"similarityClass"`
	Fraction        decimal.Decimal `json:"fraction" yaml:"fraction"`
}

// Substitute is the ingredient chosen for one target.
type Substitute struct {
	IngredientID    string          `json:"ingredientId" yaml:"ingredientId"`
	SimilarityClass string          `json:"similarityClass" yaml:"similarityClass"`
	Fraction        decimal.Decimal `json:"fraction" yaml:"fraction"`
	UnitPrice       decimal.Decimal `json:"unitPrice" yaml:"unitPrice"`
	Cost            decimal.Decimal `json:"cost" yaml:"cost"`
}

// Recipe is the optimized selection in target order.
type Recipe struct {
	Substitutes []Substitute    `json:"substitutes" yaml:"substitutes"`
	TotalCost   decimal.Decimal `json:"totalCost" yaml:"totalCost"`
}

// Request describes one optimization.
type Request struct {
	Kind            string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion      string          `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Components      []Target        `json:"components" yaml:"components"`
	MinMeltingPoint decimal.Decimal `json:"minMeltingPoint" yaml:"minMeltingPoint"`
	Country         string          `json:"country" yaml:"country"`
}

// Result is the response envelope returned by the API and the CLI.
type Result struct {
	Kind            string          `json:"kind" yaml:"kind"`
	APIVersion      string          `json:"apiVersion" yaml:"apiVersion"`
	Recipe          `json:",inline" yaml:",inline"`
	Country         string          `json:"country" yaml:"country"`
	MinMeltingPoint decimal.Decimal `json:"minMeltingPoint" yaml:"minMeltingPoint"`
	Catalog         string          `json:"catalog" yaml:"catalog"`
	Candidates      int             `json:"candidates" yaml:"candidates"`
	GeneratedAt     time.Time       `json:"generatedAt" yaml:"generatedAt"`
}

// DocumentKind implements serializer.Describer.
func (r *Result) DocumentKind() string { return r.Kind }

// DocumentVersion implements serializer.Describer.
func (r *Result) DocumentVersion() string { return r.APIVersion }

// TableHeader implements serializer.Tabular.
func (r *Result) TableHeader() []string {
	return []string{"RAW MATERIAL ID", "SIMILARITY INDEX", "AMOUNT", "PRICE", "COST"}
}

// TableRows implements serializer.Tabular. Amounts print as whole
// percentages, money with two decimals, and a closing TOTAL row.
func (r *Result) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Substitutes)+1)
	for _, s := range r.Substitutes {
		rows = append(rows, []string{
			s.IngredientID,
			s.SimilarityClass,
			Percent(s.Fraction),
			s.UnitPrice.StringFixed(2),
			s.Cost.StringFixed(2),
		})
	}
	rows = append(rows, []string{"TOTAL", "", "", "", r.TotalCost.StringFixed(2)})
	return rows
}

// Percent renders a fraction as a whole percentage, e.g. 0.7 as "70%".
func Percent(f decimal.Decimal) string {
	return f.Shift(2).StringFixed(0) + "%"
}
