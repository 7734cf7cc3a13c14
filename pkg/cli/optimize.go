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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipe-optimizer/pkg/defaults"
	"github.com/NVIDIA/recipe-optimizer/pkg/optimizer"
	"github.com/NVIDIA/recipe-optimizer/pkg/serializer"
)

// Defaults reproduce the reference recipe: three components, 200 degrees,
// delivered to China.
var (
	defaultComponents      = []string{"6489=0.1", "231=0.2", "54=0.7"}
	defaultMinMeltingPoint = "200"
	defaultCountry         = "China"
)

func optimizeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "optimize",
		EnableShellCompletion: true,
		Usage:                 "Compute the cheapest substitute recipe",
		Description: `For every component, choose the cheapest catalog ingredient of the same
similarity index whose melting point is at least --min-melting-point and
that is available in --country. Fractions must sum to 1.

Examples

Optimize the default recipe against a local catalog:
  optctl optimize --catalog ingredients.csv --format table

Custom components:
  optctl optimize -c s3://bucket/ingredients.csv --country Japan \
    --min-melting-point 180 --component 54=0.5 --component 231=0.5

Read the request from a file or ConfigMap and store the result in a ConfigMap:
  optctl optimize -c cm://default/catalog --request request.yaml -o cm://default/result`,
		Flags: []cli.Flag{
			catalogFlag(),
			&cli.StringFlag{
				Name:  "country",
				Value: defaultCountry,
				Usage: "Country the recipe is delivered to (matched exactly)",
			},
			&cli.StringFlag{
				Name:  "min-melting-point",
				Value: defaultMinMeltingPoint,
				Usage: "Minimum melting point every substitute must reach",
			},
			&cli.StringSliceFlag{
				Name:  "component",
				Value: defaultComponents,
				Usage: "Recipe component as SIMILARITY_INDEX=FRACTION, repeatable",
			},
			&cli.StringFlag{
				Name:    "request",
				Aliases: []string{"r"},
				Usage: `Path/URI to an OptimizeRequest document (JSON or YAML).
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).
	If provided, --country, --min-melting-point and --component are ignored.`,
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

			req, err := buildRequestFromCmd(cmd)
			if err != nil {
				return fmt.Errorf("error parsing optimize input: %w", err)
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIOptimizeTimeout)
			defer cancel()

			slog.Info("optimizing recipe",
				"catalog", uri,
				"country", req.Country,
				"minMeltingPoint", req.MinMeltingPoint.String(),
				"components", len(req.Components))

			result, err := optimizer.New(newLoader(cmd), optimizer.WithCatalogURI(uri)).Optimize(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to optimize recipe: %w", err)
			}

			return writeOutput(ctx, cmd, outFormat, result)
		},
	}
}

// buildRequestFromCmd loads --request when given, otherwise assembles a
// request from the individual flags.
func buildRequestFromCmd(cmd *cli.Command) (*optimizer.Request, error) {
	if path := cmd.String("request"); path != "" {
		req, err := serializer.FromFileWithKubeconfig[optimizer.Request](path, cmd.String("kubeconfig"))
		if err != nil {
			return nil, fmt.Errorf("failed to load request from %q: %w", path, err)
		}
		return req, nil
	}

	mp, err := parseMeltingPoint(cmd)
	if err != nil {
		return nil, err
	}

	req := &optimizer.Request{
		Country:         cmd.String("country"),
		MinMeltingPoint: mp,
	}
	for _, c := range cmd.StringSlice("component") {
		t, err := optimizer.ParseTarget(c)
		if err != nil {
			return nil, err
		}
		req.Components = append(req.Components, t)
	}
	return req, nil
}
