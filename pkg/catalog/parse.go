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
	"bufio"
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/NVIDIA/recipe-optimizer/pkg/availability"
	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads a CSV catalog with a header row.
// A leading UTF-8 byte order mark is ignored.
func ParseCSV(r io.Reader) ([]Ingredient, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to read catalog", err)
		}
	}

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, cnserrors.New(cnserrors.ErrCodeInvalidFormat, "catalog is empty: missing header row")
		}
		return nil, csvError(err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var items []Ingredient
	for n := 1; ; n++ {
		record, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}

		item, err := ParseRow(n, Row{
			ID:              record[index[ColumnID]],
			SimilarityClass: record[index[ColumnSimilarityClass]],
			Price:           record[index[ColumnPrice]],
			MeltingPoint:    record[index[ColumnMeltingPoint]],
			Availability:    record[index[ColumnAvailability]],
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// ParseRow converts one raw record into an Ingredient. n is the 1-based
// data row number reported in errors.
func ParseRow(n int, row Row) (Ingredient, error) {
	price, err := ParsePrice(row.Price)
	if err != nil {
		return Ingredient{}, rowError(n, ColumnPrice, row.Price, err)
	}
	if !price.IsPositive() {
		return Ingredient{}, rowError(n, ColumnPrice, row.Price, fmt.Errorf("price must be positive"))
	}

	mp, err := ParseMeltingPoint(row.MeltingPoint)
	if err != nil {
		return Ingredient{}, rowError(n, ColumnMeltingPoint, row.MeltingPoint, err)
	}

	rule, err := availability.Parse(row.Availability)
	if err != nil {
		return Ingredient{}, cnserrors.WrapWithContext(cnserrors.ErrCodeParse,
			fmt.Sprintf("invalid availability in row %d", n), err,
			map[string]any{
				"row":    n,
				"column": ColumnAvailability,
				"value":  row.Availability,
			})
	}

	return Ingredient{
		ID:              strings.TrimSpace(row.ID),
		SimilarityClass: strings.TrimSpace(row.SimilarityClass),
		Price:           price,
		MeltingPoint:    mp,
		Availability:    strings.TrimSpace(row.Availability),
		Rule:            rule,
	}, nil
}

// ParsePrice parses a price field, stripping surrounding whitespace and a
// single leading currency symbol.
func ParsePrice(s string) (decimal.Decimal, error) {
	t := strings.TrimSpace(s)
	if r, size := utf8.DecodeRuneInString(t); size > 0 && unicode.Is(unicode.Sc, r) {
		t = strings.TrimSpace(t[size:])
	}
	return decimal.NewFromString(t)
}

// ParseMeltingPoint parses a melting point field in degrees Celsius.
func ParseMeltingPoint(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, c := range RequiredColumns() {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidFormat,
			fmt.Sprintf("catalog is missing required columns: %s", strings.Join(missing, ", ")),
			map[string]any{"missing": missing, "header": header})
	}
	return index, nil
}

func rowError(n int, column, value string, cause error) error {
	return cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidFormat,
		fmt.Sprintf("invalid %s %q in row %d", strings.ToLower(column), value, n), cause,
		map[string]any{
			"row":    n,
			"column": column,
			"value":  value,
		})
}

func csvError(err error) error {
	ctx := map[string]any{}
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		ctx["line"] = pe.Line
		ctx["column"] = pe.Column
	}
	return cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidFormat, "malformed catalog CSV", err, ctx)
}
