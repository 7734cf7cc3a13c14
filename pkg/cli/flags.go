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
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipe-optimizer/pkg/catalog"
	"github.com/NVIDIA/recipe-optimizer/pkg/k8s/client"
	"github.com/NVIDIA/recipe-optimizer/pkg/serializer"
)

// EnvCatalogURI provides the --catalog default.
const EnvCatalogURI = "CATALOG_URI"

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination (default: stdout).
	Supports: file paths or ConfigMap URIs (cm://namespace/name).`,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig used for cm:// URIs (default: $KUBECONFIG, ~/.kube/config, or in-cluster)",
		Sources: cli.EnvVars(client.EnvKubeconfig),
	}
}

func catalogFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "catalog",
		Aliases: []string{"c"},
		Usage: fmt.Sprintf(`Ingredient catalog location.
	Supports: file paths or URIs with scheme %s.`, strings.Join(catalog.SupportedSchemes(), ", ")),
		Sources: cli.EnvVars(EnvCatalogURI),
	}
}

// parseOutputFormat returns the --format value, rejecting unknown formats.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// parseMeltingPoint reads a decimal flag value.
func parseMeltingPoint(cmd *cli.Command) (decimal.Decimal, error) {
	v := strings.TrimSpace(cmd.String("min-melting-point"))
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid min-melting-point %q: %w", v, err)
	}
	return d, nil
}

func requireCatalog(cmd *cli.Command) (string, error) {
	uri := strings.TrimSpace(cmd.String("catalog"))
	if uri == "" {
		return "", fmt.Errorf("a catalog is required: set --catalog or %s", EnvCatalogURI)
	}
	return uri, nil
}

// newLoader returns a catalog loader honoring --kubeconfig.
func newLoader(cmd *cli.Command) catalog.Loader {
	return catalog.NewSourceLoader(catalog.WithKubeconfig(cmd.String("kubeconfig")))
}

// writeOutput serializes v to --output in format. ConfigMap outputs use
// --kubeconfig when it is set.
func writeOutput(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	ser, err := newOutputWriter(format, cmd.String("output"), cmd.String("kubeconfig"))
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, v)
}

func newOutputWriter(format serializer.Format, output, kubeconfig string) (serializer.Serializer, error) {
	output = strings.TrimSpace(output)
	if kubeconfig == "" || !strings.HasPrefix(output, serializer.ConfigMapURIScheme) {
		return serializer.NewFileWriterOrStdout(format, output), nil
	}

	namespace, cmName, err := serializer.ParseConfigMapURI(output)
	if err != nil {
		return nil, err
	}
	c, _, err := client.GetKubeClientWithConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	return serializer.NewConfigMapWriter(namespace, cmName, format).WithClient(c), nil
}
