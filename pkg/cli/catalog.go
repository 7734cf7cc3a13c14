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

package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipe-optimizer/pkg/catalog"
	"github.com/NVIDIA/recipe-optimizer/pkg/defaults"
	"github.com/NVIDIA/recipe-optimizer/pkg/optimizer"
)

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:                  "catalog",
		EnableShellCompletion: true,
		Usage:                 "Print the ingredient catalog",
		Description: `Load and print the catalog, optionally narrowed to the ingredients that
melt at or above --min-melting-point and are available in --country.

Examples
  optctl catalog --catalog ingredients.csv --format table
  optctl catalog -c sqlite:///var/lib/catalog.db --country Japan --min-melting-point 200`,
		Flags: []cli.Flag{
			catalogFlag(),
			&cli.StringFlag{
				Name:  "country",
				Usage: "Only list ingredients available in this country",
			},
			&cli.StringFlag{
				Name:  "min-melting-point",
				Value: "0",
				Usage: "Only list ingredients melting at or above this point",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			uri, err := requireCatalog(cmd)
			if err != nil {
				return err
			}

			mp, err := parseMeltingPoint(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CatalogLoadTimeout)
			defer cancel()

			items, err := newLoader(cmd).Load(ctx, uri)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			if country := cmd.String("country"); country != "" {
				items, err = optimizer.Filter(items, mp, country)
				if err != nil {
					return fmt.Errorf("failed to filter catalog: %w", err)
				}
			} else if cmd.IsSet("min-melting-point") {
				items = aboveMeltingPoint(items, mp)
			}

			return writeOutput(ctx, cmd, outFormat, catalog.NewListing(uri, items))
		},
	}
}

func aboveMeltingPoint(items []catalog.Ingredient, mp decimal.Decimal) []catalog.Ingredient {
	out := make([]catalog.Ingredient, 0, len(items))
	for _, it := range items {
		if !it.MeltingPoint.LessThan(mp) {
			out = append(out, it)
		}
	}
	return out
}
